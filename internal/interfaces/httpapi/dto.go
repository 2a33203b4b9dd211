package httpapi

import (
	"time"

	"github.com/riskibarqy/football-hub/internal/domain/club"
	"github.com/riskibarqy/football-hub/internal/domain/match"
	"github.com/riskibarqy/football-hub/internal/domain/news"
	"github.com/riskibarqy/football-hub/internal/domain/player"
	"github.com/riskibarqy/football-hub/internal/domain/standing"
	"github.com/riskibarqy/football-hub/internal/domain/statistic"
	"github.com/riskibarqy/football-hub/internal/usecase"
)

type pageDTO[T any] struct {
	Items   []T `json:"items"`
	Total   int `json:"total"`
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

func toPageDTO[S, T any](page usecase.Page[S], convert func(S) T) pageDTO[T] {
	return pageDTO[T]{
		Items:   mapSlice(page.Items, convert),
		Total:   page.Total,
		Page:    page.Page,
		PerPage: page.PerPage,
	}
}

func mapSlice[S, T any](items []S, convert func(S) T) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		out = append(out, convert(item))
	}
	return out
}

type clubDTO struct {
	ID              int64  `json:"id"`
	SourceID        string `json:"source_id"`
	Competition     string `json:"competition"`
	Season          string `json:"season"`
	Name            string `json:"name"`
	ShortName       string `json:"short_name,omitempty"`
	Country         string `json:"country,omitempty"`
	BadgeURL        string `json:"badge_url,omitempty"`
	Stadium         string `json:"stadium,omitempty"`
	StadiumCity     string `json:"stadium_city,omitempty"`
	StadiumCapacity int    `json:"stadium_capacity,omitempty"`
	Manager         string `json:"manager,omitempty"`
	Founded         int    `json:"founded,omitempty"`
	PrimaryColor    string `json:"primary_color,omitempty"`
}

func clubToDTO(c club.Club) clubDTO {
	return clubDTO{
		ID:              c.ID,
		SourceID:        c.SourceID,
		Competition:     c.Competition,
		Season:          c.Season,
		Name:            c.Name,
		ShortName:       c.ShortName,
		Country:         c.Country,
		BadgeURL:        c.BadgeURL,
		Stadium:         c.Stadium,
		StadiumCity:     c.StadiumCity,
		StadiumCapacity: c.StadiumCapacity,
		Manager:         c.Manager,
		Founded:         c.Founded,
		PrimaryColor:    c.PrimaryColor,
	}
}

type clubDetailDTO struct {
	clubDTO
	Players []playerDTO `json:"players,omitempty"`
}

type standingDTO struct {
	Position       int       `json:"position"`
	ClubID         *int64    `json:"club_id,omitempty"`
	ClubSourceID   string    `json:"club_source_id"`
	Group          string    `json:"group,omitempty"`
	TeamName       string    `json:"team_name"`
	TeamShort      string    `json:"team_short,omitempty"`
	TeamBadge      string    `json:"team_badge,omitempty"`
	Played         int       `json:"played"`
	Won            int       `json:"won"`
	Drawn          int       `json:"drawn"`
	Lost           int       `json:"lost"`
	GoalsFor       int       `json:"goals_for"`
	GoalsAgainst   int       `json:"goals_against"`
	GoalDifference int       `json:"goal_difference"`
	Points         int       `json:"points"`
	Deduction      int       `json:"deduction,omitempty"`
	Zone           string    `json:"zone"`
	ZoneLabel      string    `json:"zone_label,omitempty"`
	Form           string    `json:"form,omitempty"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func standingToDTO(row standing.Row) standingDTO {
	return standingDTO{
		Position:       row.Position,
		ClubID:         row.ClubID,
		ClubSourceID:   row.ClubSourceID,
		Group:          row.Group,
		TeamName:       row.TeamName,
		TeamShort:      row.TeamShort,
		TeamBadge:      row.TeamBadge,
		Played:         row.Played,
		Won:            row.Won,
		Drawn:          row.Drawn,
		Lost:           row.Lost,
		GoalsFor:       row.GoalsFor,
		GoalsAgainst:   row.GoalsAgainst,
		GoalDifference: row.GoalDifference,
		Points:         row.Points,
		Deduction:      row.Deduction,
		Zone:           string(row.Zone),
		ZoneLabel:      row.ZoneLabel,
		Form:           row.Form,
		UpdatedAt:      row.UpdatedAt,
	}
}

type standingsTableDTO struct {
	Competition string        `json:"competition"`
	Season      string        `json:"season"`
	Group       string        `json:"group,omitempty"`
	Rows        []standingDTO `json:"rows"`
}

type scoreDTO struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

type matchDTO struct {
	ID           int64     `json:"id"`
	SourceID     string    `json:"source_id"`
	Competition  string    `json:"competition"`
	Season       string    `json:"season"`
	Matchweek    int       `json:"matchweek,omitempty"`
	Round        string    `json:"round,omitempty"`
	Group        string    `json:"group,omitempty"`
	HomeClubID   *int64    `json:"home_club_id,omitempty"`
	AwayClubID   *int64    `json:"away_club_id,omitempty"`
	HomeTeamName string    `json:"home_team_name"`
	AwayTeamName string    `json:"away_team_name"`
	HomeBadge    string    `json:"home_badge,omitempty"`
	AwayBadge    string    `json:"away_badge,omitempty"`
	KickoffAt    time.Time `json:"kickoff_at"`
	Status       string    `json:"status"`
	Minute       int       `json:"minute,omitempty"`
	Score        scoreDTO  `json:"score"`
	HalfTime     *scoreDTO `json:"half_time,omitempty"`
	Penalties    *scoreDTO `json:"penalties,omitempty"`
	Aggregate    *scoreDTO `json:"aggregate,omitempty"`
	Venue        string    `json:"venue,omitempty"`
	VenueCity    string    `json:"venue_city,omitempty"`
	IsKnockout   bool      `json:"is_knockout"`
	Leg          int       `json:"leg,omitempty"`
	EndedAET     bool      `json:"ended_aet,omitempty"`
	EndedPen     bool      `json:"ended_pen,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func optionalScore(home, away *int) *scoreDTO {
	if home == nil && away == nil {
		return nil
	}
	return &scoreDTO{Home: home, Away: away}
}

func matchToDTO(m match.Match) matchDTO {
	return matchDTO{
		ID:           m.ID,
		SourceID:     m.SourceID,
		Competition:  m.Competition,
		Season:       m.Season,
		Matchweek:    m.Matchweek,
		Round:        m.Round,
		Group:        m.Group,
		HomeClubID:   m.HomeClubID,
		AwayClubID:   m.AwayClubID,
		HomeTeamName: m.HomeTeamName,
		AwayTeamName: m.AwayTeamName,
		HomeBadge:    m.HomeBadge,
		AwayBadge:    m.AwayBadge,
		KickoffAt:    m.KickoffAt,
		Status:       string(m.Status),
		Minute:       m.Minute,
		Score:        scoreDTO{Home: m.HomeScore, Away: m.AwayScore},
		HalfTime:     optionalScore(m.HomeScoreHT, m.AwayScoreHT),
		Penalties:    optionalScore(m.HomeScorePen, m.AwayScorePen),
		Aggregate:    optionalScore(m.AggHome, m.AggAway),
		Venue:        m.Venue,
		VenueCity:    m.VenueCity,
		IsKnockout:   m.IsKnockout,
		Leg:          m.Leg,
		EndedAET:     m.EndedAET,
		EndedPen:     m.EndedPen,
		UpdatedAt:    m.UpdatedAt,
	}
}

type matchEventDTO struct {
	Type      string `json:"type"`
	Minute    int    `json:"minute"`
	AddedTime int    `json:"added_time,omitempty"`
	Side      string `json:"side"`
	Player    string `json:"player,omitempty"`
	Assist    string `json:"assist,omitempty"`
}

// matchDetailDTO is the single-match view. Events is always a list.
type matchDetailDTO struct {
	matchDTO
	Events []matchEventDTO `json:"events"`
}

func matchToDetailDTO(m match.Match) matchDetailDTO {
	events := make([]matchEventDTO, 0, len(m.Events))
	for _, ev := range m.Events {
		events = append(events, matchEventDTO{
			Type:      string(ev.Type),
			Minute:    ev.Minute,
			AddedTime: ev.AddedTime,
			Side:      string(ev.Side),
			Player:    ev.Player,
			Assist:    ev.Assist,
		})
	}
	return matchDetailDTO{matchDTO: matchToDTO(m), Events: events}
}

type tieDTO struct {
	Round   string     `json:"round"`
	TeamA   string     `json:"team_a"`
	TeamB   string     `json:"team_b"`
	GoalsA  int        `json:"goals_a"`
	GoalsB  int        `json:"goals_b"`
	Winner  string     `json:"winner,omitempty"`
	Decided bool       `json:"decided"`
	Legs    []matchDTO `json:"legs"`
}

func tieToDTO(t match.Tie) tieDTO {
	return tieDTO{
		Round:   t.Round,
		TeamA:   t.TeamA,
		TeamB:   t.TeamB,
		GoalsA:  t.GoalsA,
		GoalsB:  t.GoalsB,
		Winner:  t.Winner,
		Decided: t.Decided,
		Legs:    mapSlice(t.Legs, matchToDTO),
	}
}

type playerDTO struct {
	ID             int64      `json:"id"`
	SourceID       string     `json:"source_id"`
	Competition    string     `json:"competition"`
	Season         string     `json:"season"`
	Name           string     `json:"name"`
	Position       string     `json:"position"`
	PositionDetail string     `json:"position_detail,omitempty"`
	ClubID         *int64     `json:"club_id,omitempty"`
	ClubName       string     `json:"club_name,omitempty"`
	Nationality    string     `json:"nationality,omitempty"`
	ShirtNumber    int        `json:"shirt_number,omitempty"`
	DateOfBirth    *time.Time `json:"date_of_birth,omitempty"`
	HeightCM       int        `json:"height_cm,omitempty"`
	PhotoURL       string     `json:"photo_url,omitempty"`
}

func playerToDTO(p player.Player) playerDTO {
	return playerDTO{
		ID:             p.ID,
		SourceID:       p.SourceID,
		Competition:    p.Competition,
		Season:         p.Season,
		Name:           p.Name,
		Position:       string(p.Position),
		PositionDetail: p.PositionDetail,
		ClubID:         p.ClubID,
		ClubName:       p.ClubName,
		Nationality:    p.Nationality,
		ShirtNumber:    p.ShirtNumber,
		DateOfBirth:    p.DateOfBirth,
		HeightCM:       p.HeightCM,
		PhotoURL:       p.PhotoURL,
	}
}

type statisticDTO struct {
	PlayerID       *int64  `json:"player_id,omitempty"`
	PlayerSourceID string  `json:"player_source_id"`
	PlayerName     string  `json:"player_name"`
	ClubName       string  `json:"club_name,omitempty"`
	Position       string  `json:"position,omitempty"`
	Appearances    int     `json:"appearances"`
	Minutes        int     `json:"minutes_played"`
	Goals          int     `json:"goals"`
	Assists        int     `json:"assists"`
	YellowCards    int     `json:"yellow_cards"`
	RedCards       int     `json:"red_cards"`
	Saves          *int    `json:"saves,omitempty"`
	CleanSheets    *int    `json:"clean_sheets,omitempty"`
	ExpectedGoals  float64 `json:"expected_goals"`
	Rating         float64 `json:"average_rating"`
}

func statisticToDTO(s statistic.Statistic) statisticDTO {
	return statisticDTO{
		PlayerID:       s.PlayerID,
		PlayerSourceID: s.PlayerSourceID,
		PlayerName:     s.PlayerName,
		ClubName:       s.ClubName,
		Position:       string(s.Position),
		Appearances:    s.Appearances,
		Minutes:        s.Minutes,
		Goals:          s.Goals,
		Assists:        s.Assists,
		YellowCards:    s.YellowCards,
		RedCards:       s.RedCards,
		Saves:          s.Saves,
		CleanSheets:    s.CleanSheets,
		ExpectedGoals:  s.ExpectedGoals,
		Rating:         s.Rating,
	}
}

type newsDTO struct {
	ID           int64     `json:"id"`
	Competition  string    `json:"competition"`
	Title        string    `json:"title"`
	Excerpt      string    `json:"excerpt,omitempty"`
	Content      string    `json:"content,omitempty"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	SourceURL    string    `json:"source_url"`
	SourceName   string    `json:"source_name,omitempty"`
	Category     string    `json:"category"`
	Tags         []string  `json:"tags,omitempty"`
	Round        string    `json:"round,omitempty"`
	PublishedAt  time.Time `json:"published_at"`
}

func newsToDTO(item news.Item) newsDTO {
	return newsDTO{
		ID:           item.ID,
		Competition:  item.Competition,
		Title:        item.Title,
		Excerpt:      item.Excerpt,
		Content:      item.Content,
		ThumbnailURL: item.ThumbnailURL,
		SourceURL:    item.SourceURL,
		SourceName:   item.SourceName,
		Category:     item.Category,
		Tags:         item.Tags,
		Round:        item.Round,
		PublishedAt:  item.PublishedAt,
	}
}

// newsSummaryToDTO drops the body for list views.
func newsSummaryToDTO(item news.Item) newsDTO {
	dto := newsToDTO(item)
	dto.Content = ""
	return dto
}

type chatMessageRequest struct {
	Message string         `json:"message" validate:"required,max=1000"`
	League  string         `json:"league" validate:"omitempty,max=8"`
	History []chatTurnBody `json:"history" validate:"omitempty,max=50,dive"`
}

type chatTurnBody struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required,max=4000"`
}

type jobTriggerDTO struct {
	Job    usecase.JobStatus `json:"job"`
	Status string            `json:"status"`
}
