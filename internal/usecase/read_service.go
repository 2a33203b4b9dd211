package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/football-hub/internal/canonical"
	"github.com/riskibarqy/football-hub/internal/domain/club"
	"github.com/riskibarqy/football-hub/internal/domain/competition"
	"github.com/riskibarqy/football-hub/internal/domain/match"
	"github.com/riskibarqy/football-hub/internal/domain/news"
	"github.com/riskibarqy/football-hub/internal/domain/player"
	"github.com/riskibarqy/football-hub/internal/domain/standing"
	"github.com/riskibarqy/football-hub/internal/domain/statistic"
)

const (
	defaultPerPage = 20
	maxClubPlayers = 200
)

type ReadRepositories struct {
	Clubs      club.Repository
	Standings  standing.Repository
	Matches    match.Repository
	Players    player.Repository
	Statistics statistic.Repository
	News       news.Repository
}

// Page is one slice of a paged listing.
type Page[T any] struct {
	Items   []T `json:"items"`
	Total   int `json:"total"`
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

type MatchQuery struct {
	Status    string `validate:"omitempty,oneof=SCHEDULED LIVE HALFTIME FINISHED POSTPONED CANCELLED"`
	Matchweek int    `validate:"gte=0"`
	Page      int    `validate:"gte=0"`
	PerPage   int    `validate:"gte=0,lte=100"`
}

type PlayerQuery struct {
	Position string `validate:"omitempty,oneof=GK DEF MID FWD"`
	ClubID   int64  `validate:"gte=0"`
	Page     int    `validate:"gte=0"`
	PerPage  int    `validate:"gte=0,lte=200"`
}

type StatisticQuery struct {
	Sort     string
	Position string `validate:"omitempty,oneof=GK DEF MID FWD"`
	Page     int    `validate:"gte=0"`
	PerPage  int    `validate:"gte=0,lte=100"`
}

type NewsQuery struct {
	Category string
	Query    string
	Page     int `validate:"gte=0"`
	PerPage  int `validate:"gte=0,lte=50"`
}

type RoundView struct {
	Matchweek int    `json:"matchweek"`
	Round     string `json:"round"`
	Label     string `json:"label"`
}

type ClubDetail struct {
	Club    club.Club       `json:"club"`
	Players []player.Player `json:"players,omitempty"`
}

// ReadService serves the public read endpoints.
type ReadService struct {
	registry  *competition.Registry
	repos     ReadRepositories
	validator *validator.Validate
	now       func() time.Time
}

func NewReadService(registry *competition.Registry, repos ReadRepositories) *ReadService {
	return &ReadService{
		registry:  registry,
		repos:     repos,
		validator: validator.New(),
		now:       time.Now,
	}
}

// ResolveCompetition maps the league and season query values onto a
// competition. An empty league means PL; an empty season keeps the
// configured one.
func (s *ReadService) ResolveCompetition(league, season string) (competition.Competition, error) {
	code := strings.ToUpper(strings.TrimSpace(league))
	if code == "" {
		code = string(competition.PL)
	}
	comp, ok := s.registry.Lookup(code)
	if !ok {
		return competition.Competition{}, fmt.Errorf("%w: unknown league %q", ErrInvalidInput, league)
	}
	if season = strings.TrimSpace(season); season != "" {
		if len(season) != 4 || strings.Trim(season, "0123456789") != "" {
			return competition.Competition{}, fmt.Errorf("%w: season must be a year, got %q", ErrInvalidInput, season)
		}
		comp.Season = season
	}
	return comp, nil
}

func (s *ReadService) Standings(ctx context.Context, comp competition.Competition, group string) ([]standing.Row, error) {
	ctx, span := spans.Start(ctx, "usecase.ReadService.Standings")
	defer span.End()

	rows, err := s.repos.Standings.List(ctx, string(comp.Code), comp.Season, strings.TrimSpace(group))
	if err != nil {
		return nil, fmt.Errorf("list standings competition=%s: %w", comp.Code, err)
	}
	return rows, nil
}

func (s *ReadService) StandingGroups(ctx context.Context, comp competition.Competition) ([]string, error) {
	groups, err := s.repos.Standings.Groups(ctx, string(comp.Code), comp.Season)
	if err != nil {
		return nil, fmt.Errorf("list standing groups competition=%s: %w", comp.Code, err)
	}
	return groups, nil
}

func (s *ReadService) Matches(ctx context.Context, comp competition.Competition, q MatchQuery) (Page[match.Match], error) {
	ctx, span := spans.Start(ctx, "usecase.ReadService.Matches")
	defer span.End()

	q.Status = strings.ToUpper(strings.TrimSpace(q.Status))
	if err := s.validate(ctx, q); err != nil {
		return Page[match.Match]{}, err
	}
	filter := match.Filter{
		Competition: string(comp.Code),
		Season:      comp.Season,
		Matchweek:   q.Matchweek,
		Page:        pageOrDefault(q.Page),
		PerPage:     perPageOrDefault(q.PerPage),
	}
	if q.Status != "" {
		filter.Statuses = []match.Status{match.Status(q.Status)}
	}
	items, total, err := s.repos.Matches.List(ctx, filter)
	if err != nil {
		return Page[match.Match]{}, fmt.Errorf("list matches competition=%s: %w", comp.Code, err)
	}
	return Page[match.Match]{Items: items, Total: total, Page: filter.Page, PerPage: filter.PerPage}, nil
}

func (s *ReadService) LiveMatches(ctx context.Context, comp competition.Competition) ([]match.Match, error) {
	items, err := s.repos.Matches.ListLive(ctx, string(comp.Code))
	if err != nil {
		return nil, fmt.Errorf("list live matches competition=%s: %w", comp.Code, err)
	}
	return items, nil
}

func (s *ReadService) UpcomingMatches(ctx context.Context, comp competition.Competition, limit int) ([]match.Match, error) {
	limit, err := boundedLimit(limit, 10, 20)
	if err != nil {
		return nil, err
	}
	items, err := s.repos.Matches.Upcoming(ctx, string(comp.Code), s.now().UTC(), limit)
	if err != nil {
		return nil, fmt.Errorf("list upcoming matches competition=%s: %w", comp.Code, err)
	}
	return items, nil
}

func (s *ReadService) Results(ctx context.Context, comp competition.Competition, matchweek, limit int) ([]match.Match, error) {
	limit, err := boundedLimit(limit, 10, 50)
	if err != nil {
		return nil, err
	}
	if matchweek < 0 {
		return nil, fmt.Errorf("%w: matchweek must not be negative", ErrInvalidInput)
	}
	items, err := s.repos.Matches.Results(ctx, string(comp.Code), matchweek, limit)
	if err != nil {
		return nil, fmt.Errorf("list results competition=%s: %w", comp.Code, err)
	}
	return items, nil
}

func (s *ReadService) Rounds(ctx context.Context, comp competition.Competition) ([]RoundView, error) {
	rounds, err := s.repos.Matches.Rounds(ctx, string(comp.Code), comp.Season)
	if err != nil {
		return nil, fmt.Errorf("list rounds competition=%s: %w", comp.Code, err)
	}
	out := make([]RoundView, 0, len(rounds))
	for _, r := range rounds {
		label := r.Round
		if label == "" {
			label = canonical.RoundListLabel(comp, r.Matchweek)
		}
		out = append(out, RoundView{Matchweek: r.Matchweek, Round: r.Round, Label: label})
	}
	return out, nil
}

// Bracket pairs the knockout legs into ties with aggregate and winner.
func (s *ReadService) Bracket(ctx context.Context, comp competition.Competition) ([]match.Tie, error) {
	if !comp.HasKnockout {
		return []match.Tie{}, nil
	}
	items, err := s.repos.Matches.ListKnockout(ctx, string(comp.Code), comp.Season)
	if err != nil {
		return nil, fmt.Errorf("list knockout matches competition=%s: %w", comp.Code, err)
	}
	return match.PairTies(items), nil
}

func (s *ReadService) Match(ctx context.Context, id int64) (match.Match, error) {
	item, ok, err := s.repos.Matches.GetByID(ctx, id)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match id=%d: %w", id, err)
	}
	if !ok {
		return match.Match{}, fmt.Errorf("%w: match id=%d", ErrNotFound, id)
	}
	return item, nil
}

func (s *ReadService) Clubs(ctx context.Context, comp competition.Competition) ([]club.Club, error) {
	items, err := s.repos.Clubs.ListByCompetition(ctx, string(comp.Code), comp.Season)
	if err != nil {
		return nil, fmt.Errorf("list clubs competition=%s: %w", comp.Code, err)
	}
	return items, nil
}

func (s *ReadService) SearchClubs(ctx context.Context, comp competition.Competition, query string, limit int) ([]club.Club, error) {
	query, err := searchQuery(query)
	if err != nil {
		return nil, err
	}
	if limit, err = boundedLimit(limit, 20, 50); err != nil {
		return nil, err
	}
	items, err := s.repos.Clubs.Search(ctx, query, string(comp.Code), limit)
	if err != nil {
		return nil, fmt.Errorf("search clubs: %w", err)
	}
	return items, nil
}

func (s *ReadService) Club(ctx context.Context, id int64, withPlayers bool) (ClubDetail, error) {
	item, ok, err := s.repos.Clubs.GetByID(ctx, id)
	if err != nil {
		return ClubDetail{}, fmt.Errorf("get club id=%d: %w", id, err)
	}
	if !ok {
		return ClubDetail{}, fmt.Errorf("%w: club id=%d", ErrNotFound, id)
	}
	out := ClubDetail{Club: item}
	if !withPlayers {
		return out, nil
	}
	players, _, err := s.repos.Players.List(ctx, player.Filter{
		Competition: item.Competition,
		Season:      item.Season,
		ClubID:      item.ID,
		PerPage:     maxClubPlayers,
	})
	if err != nil {
		return ClubDetail{}, fmt.Errorf("list club players id=%d: %w", id, err)
	}
	out.Players = players
	return out, nil
}

func (s *ReadService) Players(ctx context.Context, comp competition.Competition, q PlayerQuery) (Page[player.Player], error) {
	ctx, span := spans.Start(ctx, "usecase.ReadService.Players")
	defer span.End()

	q.Position = strings.ToUpper(strings.TrimSpace(q.Position))
	if err := s.validate(ctx, q); err != nil {
		return Page[player.Player]{}, err
	}
	filter := player.Filter{
		Competition: string(comp.Code),
		Season:      comp.Season,
		Position:    player.Position(q.Position),
		ClubID:      q.ClubID,
		Page:        pageOrDefault(q.Page),
		PerPage:     perPageOrDefault(q.PerPage),
	}
	items, total, err := s.repos.Players.List(ctx, filter)
	if err != nil {
		return Page[player.Player]{}, fmt.Errorf("list players competition=%s: %w", comp.Code, err)
	}
	return Page[player.Player]{Items: items, Total: total, Page: filter.Page, PerPage: filter.PerPage}, nil
}

func (s *ReadService) SearchPlayers(ctx context.Context, comp competition.Competition, query string, limit int) ([]player.Player, error) {
	query, err := searchQuery(query)
	if err != nil {
		return nil, err
	}
	if limit, err = boundedLimit(limit, 20, 50); err != nil {
		return nil, err
	}
	items, err := s.repos.Players.Search(ctx, query, string(comp.Code), limit)
	if err != nil {
		return nil, fmt.Errorf("search players: %w", err)
	}
	return items, nil
}

func (s *ReadService) Player(ctx context.Context, id int64) (player.Player, error) {
	item, ok, err := s.repos.Players.GetByID(ctx, id)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player id=%d: %w", id, err)
	}
	if !ok {
		return player.Player{}, fmt.Errorf("%w: player id=%d", ErrNotFound, id)
	}
	return item, nil
}

// TopStatistics lists the leaderboard for one of the whitelisted sort
// fields; an empty sort means goals.
func (s *ReadService) TopStatistics(ctx context.Context, comp competition.Competition, q StatisticQuery) (Page[statistic.Statistic], error) {
	ctx, span := spans.Start(ctx, "usecase.ReadService.TopStatistics")
	defer span.End()

	q.Position = strings.ToUpper(strings.TrimSpace(q.Position))
	if err := s.validate(ctx, q); err != nil {
		return Page[statistic.Statistic]{}, err
	}
	sortField := statistic.SortGoals
	if strings.TrimSpace(q.Sort) != "" {
		parsed, ok := statistic.ParseSort(q.Sort)
		if !ok {
			return Page[statistic.Statistic]{}, fmt.Errorf("%w: sort must be one of %v", ErrInvalidInput, statistic.SortFields())
		}
		sortField = parsed
	}
	filter := statistic.Filter{
		Competition: string(comp.Code),
		Season:      comp.Season,
		Sort:        sortField,
		Position:    player.Position(q.Position),
		Page:        pageOrDefault(q.Page),
		PerPage:     perPageOrDefault(q.PerPage),
	}
	items, total, err := s.repos.Statistics.Top(ctx, filter)
	if err != nil {
		return Page[statistic.Statistic]{}, fmt.Errorf("list statistics competition=%s: %w", comp.Code, err)
	}
	return Page[statistic.Statistic]{Items: items, Total: total, Page: filter.Page, PerPage: filter.PerPage}, nil
}

func (s *ReadService) News(ctx context.Context, comp competition.Competition, q NewsQuery) (Page[news.Item], error) {
	if err := s.validate(ctx, q); err != nil {
		return Page[news.Item]{}, err
	}
	filter := news.Filter{
		Competition: string(comp.Code),
		Category:    strings.TrimSpace(q.Category),
		Query:       strings.TrimSpace(q.Query),
		Page:        pageOrDefault(q.Page),
		PerPage:     perPageOrDefault(q.PerPage),
	}
	items, total, err := s.repos.News.List(ctx, filter)
	if err != nil {
		return Page[news.Item]{}, fmt.Errorf("list news competition=%s: %w", comp.Code, err)
	}
	return Page[news.Item]{Items: items, Total: total, Page: filter.Page, PerPage: filter.PerPage}, nil
}

func (s *ReadService) LatestNews(ctx context.Context, comp competition.Competition, limit int) ([]news.Item, error) {
	limit, err := boundedLimit(limit, 10, 20)
	if err != nil {
		return nil, err
	}
	items, err := s.repos.News.Latest(ctx, string(comp.Code), limit)
	if err != nil {
		return nil, fmt.Errorf("latest news competition=%s: %w", comp.Code, err)
	}
	return items, nil
}

func (s *ReadService) SearchNews(ctx context.Context, comp competition.Competition, query string, limit int) ([]news.Item, error) {
	query, err := searchQuery(query)
	if err != nil {
		return nil, err
	}
	if limit, err = boundedLimit(limit, 20, 50); err != nil {
		return nil, err
	}
	items, err := s.repos.News.Search(ctx, query, string(comp.Code), limit)
	if err != nil {
		return nil, fmt.Errorf("search news: %w", err)
	}
	return items, nil
}

func (s *ReadService) NewsItem(ctx context.Context, id int64) (news.Item, error) {
	item, ok, err := s.repos.News.GetByID(ctx, id)
	if err != nil {
		return news.Item{}, fmt.Errorf("get news id=%d: %w", id, err)
	}
	if !ok {
		return news.Item{}, fmt.Errorf("%w: news id=%d", ErrNotFound, id)
	}
	return item, nil
}

func (s *ReadService) validate(ctx context.Context, query any) error {
	if err := s.validator.StructCtx(ctx, query); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

func boundedLimit(limit, fallback, maxLimit int) (int, error) {
	if limit == 0 {
		return fallback, nil
	}
	if limit < 0 || limit > maxLimit {
		return 0, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidInput, maxLimit)
	}
	return limit, nil
}

func searchQuery(raw string) (string, error) {
	q := strings.TrimSpace(raw)
	if len([]rune(q)) < 2 {
		return "", fmt.Errorf("%w: q must have at least 2 characters", ErrInvalidInput)
	}
	return q, nil
}

func pageOrDefault(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func perPageOrDefault(perPage int) int {
	if perPage <= 0 {
		return defaultPerPage
	}
	return perPage
}
