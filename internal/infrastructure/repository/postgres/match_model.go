package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/bytedance/sonic"

	"github.com/riskibarqy/football-hub/internal/domain/match"
)

type matchTableModel struct {
	ID           int64         `db:"id,readonly"`
	SourceID     string        `db:"source_id"`
	Competition  string        `db:"competition"`
	Season       string        `db:"season"`
	Matchweek    int           `db:"matchweek"`
	Round        string        `db:"round"`
	GroupName    string        `db:"group_name"`
	HomeClubID   sql.NullInt64 `db:"home_club_id"`
	AwayClubID   sql.NullInt64 `db:"away_club_id"`
	HomeSourceID string        `db:"home_source_id"`
	AwaySourceID string        `db:"away_source_id"`
	HomeTeamName string        `db:"home_team_name"`
	AwayTeamName string        `db:"away_team_name"`
	HomeBadge    string        `db:"home_badge"`
	AwayBadge    string        `db:"away_badge"`
	KickoffAt    sql.NullTime  `db:"kickoff_at"`
	Status       string        `db:"status"`
	Minute       int           `db:"minute"`
	HomeScore    sql.NullInt64 `db:"home_score"`
	AwayScore    sql.NullInt64 `db:"away_score"`
	HomeScoreHT  sql.NullInt64 `db:"home_score_ht"`
	AwayScoreHT  sql.NullInt64 `db:"away_score_ht"`
	HomeScorePen sql.NullInt64 `db:"home_score_pen"`
	AwayScorePen sql.NullInt64 `db:"away_score_pen"`
	Venue        string        `db:"venue"`
	VenueCity    string        `db:"venue_city"`
	IsKnockout   bool          `db:"is_knockout"`
	Leg          int           `db:"leg"`
	AggHome      sql.NullInt64 `db:"agg_home"`
	AggAway      sql.NullInt64 `db:"agg_away"`
	EndedAET     bool          `db:"ended_aet"`
	EndedPen     bool          `db:"ended_pen"`
	Events       string        `db:"events"`
	CreatedAt    time.Time     `db:"created_at,readonly"`
	UpdatedAt    time.Time     `db:"updated_at,readonly"`
}

func matchToModel(m match.Match) (matchTableModel, error) {
	var kickoff sql.NullTime
	if !m.KickoffAt.IsZero() {
		kickoff = sql.NullTime{Time: m.KickoffAt.UTC(), Valid: true}
	}
	events, err := marshalEvents(m.Events)
	if err != nil {
		return matchTableModel{}, fmt.Errorf("marshal events of match %s: %w", m.Key(), err)
	}
	return matchTableModel{
		ID:           m.ID,
		SourceID:     m.SourceID,
		Competition:  m.Competition,
		Season:       m.Season,
		Matchweek:    m.Matchweek,
		Round:        m.Round,
		GroupName:    m.Group,
		HomeClubID:   nullableID(m.HomeClubID),
		AwayClubID:   nullableID(m.AwayClubID),
		HomeSourceID: m.HomeSourceID,
		AwaySourceID: m.AwaySourceID,
		HomeTeamName: m.HomeTeamName,
		AwayTeamName: m.AwayTeamName,
		HomeBadge:    m.HomeBadge,
		AwayBadge:    m.AwayBadge,
		KickoffAt:    kickoff,
		Status:       string(m.Status),
		Minute:       m.Minute,
		HomeScore:    nullableInt(m.HomeScore),
		AwayScore:    nullableInt(m.AwayScore),
		HomeScoreHT:  nullableInt(m.HomeScoreHT),
		AwayScoreHT:  nullableInt(m.AwayScoreHT),
		HomeScorePen: nullableInt(m.HomeScorePen),
		AwayScorePen: nullableInt(m.AwayScorePen),
		Venue:        m.Venue,
		VenueCity:    m.VenueCity,
		IsKnockout:   m.IsKnockout,
		Leg:          m.Leg,
		AggHome:      nullableInt(m.AggHome),
		AggAway:      nullableInt(m.AggAway),
		EndedAET:     m.EndedAET,
		EndedPen:     m.EndedPen,
		Events:       events,
	}, nil
}

func (m matchTableModel) toDomain() (match.Match, error) {
	var kickoff time.Time
	if m.KickoffAt.Valid {
		kickoff = m.KickoffAt.Time.UTC()
	}
	events, err := unmarshalEvents(m.Events)
	if err != nil {
		return match.Match{}, fmt.Errorf("decode events of match id=%d: %w", m.ID, err)
	}
	return match.Match{
		ID:           m.ID,
		SourceID:     m.SourceID,
		Competition:  m.Competition,
		Season:       m.Season,
		Matchweek:    m.Matchweek,
		Round:        m.Round,
		Group:        m.GroupName,
		HomeClubID:   nullIDToPtr(m.HomeClubID),
		AwayClubID:   nullIDToPtr(m.AwayClubID),
		HomeSourceID: m.HomeSourceID,
		AwaySourceID: m.AwaySourceID,
		HomeTeamName: m.HomeTeamName,
		AwayTeamName: m.AwayTeamName,
		HomeBadge:    m.HomeBadge,
		AwayBadge:    m.AwayBadge,
		KickoffAt:    kickoff,
		Status:       match.Status(m.Status),
		Minute:       m.Minute,
		HomeScore:    nullIntToPtr(m.HomeScore),
		AwayScore:    nullIntToPtr(m.AwayScore),
		HomeScoreHT:  nullIntToPtr(m.HomeScoreHT),
		AwayScoreHT:  nullIntToPtr(m.AwayScoreHT),
		HomeScorePen: nullIntToPtr(m.HomeScorePen),
		AwayScorePen: nullIntToPtr(m.AwayScorePen),
		Venue:        m.Venue,
		VenueCity:    m.VenueCity,
		IsKnockout:   m.IsKnockout,
		Leg:          m.Leg,
		AggHome:      nullIntToPtr(m.AggHome),
		AggAway:      nullIntToPtr(m.AggAway),
		EndedAET:     m.EndedAET,
		EndedPen:     m.EndedPen,
		Events:       events,
		UpdatedAt:    m.UpdatedAt.UTC(),
	}, nil
}

// Events are stored as a JSONB array; no events is "[]", never NULL.
func marshalEvents(events []match.Event) (string, error) {
	if len(events) == 0 {
		return "[]", nil
	}
	raw, err := sonic.Marshal(events)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func unmarshalEvents(raw string) ([]match.Event, error) {
	if raw == "" || raw == "[]" || raw == "null" {
		return nil, nil
	}
	var out []match.Event
	if err := sonic.UnmarshalString(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
