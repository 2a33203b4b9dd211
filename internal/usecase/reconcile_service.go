package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/football-hub/internal/canonical"
	"github.com/riskibarqy/football-hub/internal/domain/club"
	"github.com/riskibarqy/football-hub/internal/domain/competition"
	"github.com/riskibarqy/football-hub/internal/domain/match"
	"github.com/riskibarqy/football-hub/internal/domain/news"
	"github.com/riskibarqy/football-hub/internal/domain/player"
	"github.com/riskibarqy/football-hub/internal/domain/reconcile"
	"github.com/riskibarqy/football-hub/internal/domain/standing"
	"github.com/riskibarqy/football-hub/internal/domain/statistic"
	"github.com/riskibarqy/football-hub/internal/metrics"
	"github.com/riskibarqy/football-hub/internal/platform/logging"
)

type ReconcileRepositories struct {
	Clubs      club.Repository
	Standings  standing.Repository
	Matches    match.Repository
	Players    player.Repository
	Statistics statistic.Repository
	News       news.Repository
}

// PlayerReconcileResult reports the two writes of one player batch.
type PlayerReconcileResult struct {
	Players    reconcile.BatchResult
	Statistics reconcile.BatchResult
}

// ReconcileService maps canonical records onto stored rows by natural key.
// Invalid records and records whose write fails are counted as skipped; the
// rest of the batch still lands.
type ReconcileService struct {
	repos     ReconcileRepositories
	validator *validator.Validate
	logger    *logging.Logger
}

func NewReconcileService(repos ReconcileRepositories, logger *logging.Logger) *ReconcileService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ReconcileService{
		repos:     repos,
		validator: validator.New(),
		logger:    logger,
	}
}

func (s *ReconcileService) ReconcileClubs(ctx context.Context, comp competition.Competition, items []club.Club) (reconcile.BatchResult, error) {
	ctx, span := spans.Start(ctx, "usecase.ReconcileService.ReconcileClubs")
	defer span.End()

	var res reconcile.BatchResult
	valid := make([]club.Club, 0, len(items))
	for _, item := range items {
		item.SourceID = strings.TrimSpace(item.SourceID)
		item.Name = strings.TrimSpace(item.Name)
		item.Competition, item.Season = scope(comp, item.Competition, item.Season)
		if err := s.validate(ctx, item); err != nil {
			res.Fail(item.Key().String(), err)
			continue
		}
		valid = append(valid, item)
	}

	written, err := s.repos.Clubs.UpsertClubs(ctx, valid)
	res.Merge(written)
	s.report(ctx, "club", comp, res)
	if err != nil {
		return res, fmt.Errorf("upsert clubs competition=%s: %w", comp.Code, err)
	}

	if err := s.backfillClubRefs(ctx, comp); err != nil {
		return res, err
	}
	return res, nil
}

// backfillClubRefs links rows stored before their club existed.
func (s *ReconcileService) backfillClubRefs(ctx context.Context, comp competition.Competition) error {
	ids, err := s.repos.Clubs.IDsBySourceID(ctx, string(comp.Code), comp.Season)
	if err != nil {
		return fmt.Errorf("load club ids competition=%s: %w", comp.Code, err)
	}
	if len(ids) == 0 {
		return nil
	}

	code := string(comp.Code)
	standings, err := s.repos.Standings.BackfillClubRefs(ctx, code, comp.Season, ids)
	if err != nil {
		return fmt.Errorf("backfill standing club refs competition=%s: %w", comp.Code, err)
	}
	matches, err := s.repos.Matches.BackfillClubRefs(ctx, code, comp.Season, ids)
	if err != nil {
		return fmt.Errorf("backfill match club refs competition=%s: %w", comp.Code, err)
	}
	players, err := s.repos.Players.BackfillClubRefs(ctx, code, comp.Season, ids)
	if err != nil {
		return fmt.Errorf("backfill player club refs competition=%s: %w", comp.Code, err)
	}
	if standings+matches+players > 0 {
		s.logger.DebugContext(ctx, "club refs backfilled",
			"competition", code,
			"standings", standings,
			"matches", matches,
			"players", players,
		)
	}
	return nil
}

// ReconcileStandings creates a minimal club for every row whose club is not
// stored yet, then rewrites the table for the competition season.
func (s *ReconcileService) ReconcileStandings(ctx context.Context, comp competition.Competition, rows []standing.Row) (reconcile.BatchResult, error) {
	ctx, span := spans.Start(ctx, "usecase.ReconcileService.ReconcileStandings")
	defer span.End()

	var res reconcile.BatchResult
	valid := make([]standing.Row, 0, len(rows))
	for _, row := range rows {
		row.ClubSourceID = strings.TrimSpace(row.ClubSourceID)
		row.Competition, row.Season = scope(comp, row.Competition, row.Season)
		if err := s.validate(ctx, row); err != nil {
			res.Fail(row.Key().String(), err)
			continue
		}
		valid = append(valid, row)
	}
	if len(valid) == 0 {
		s.report(ctx, "standing", comp, res)
		return res, nil
	}

	ids, err := s.ensureClubs(ctx, comp, clubsFromStandings(comp, valid))
	if err != nil {
		return res, err
	}
	for i := range valid {
		if id, ok := ids[valid[i].ClubSourceID]; ok {
			valid[i].ClubID = &id
		}
	}

	if !standing.IsDense(valid) {
		valid = rerankWithZones(comp, valid)
	}
	written, err := s.repos.Standings.ReplaceStandings(ctx, string(comp.Code), comp.Season, valid)
	res.Merge(written)
	s.report(ctx, "standing", comp, res)
	if err != nil {
		return res, fmt.Errorf("replace standings competition=%s: %w", comp.Code, err)
	}
	return res, nil
}

// rerankWithZones makes positions dense. A row that moved is re-zoned from
// the competition bands only when its zone was the band of its old position;
// a zone taken from the upstream colour stays.
func rerankWithZones(comp competition.Competition, rows []standing.Row) []standing.Row {
	before := make(map[standing.Key]int, len(rows))
	sizes := make(map[string]int)
	for _, row := range rows {
		before[row.Key()] = row.Position
		sizes[row.Group]++
	}
	out := standing.Rerank(rows)
	for i := range out {
		row := &out[i]
		old := before[row.Key()]
		if old == row.Position {
			continue
		}
		size := sizes[row.Group]
		if row.Zone != canonical.QualificationZone(comp, "", old, size) {
			continue
		}
		row.Zone = canonical.QualificationZone(comp, "", row.Position, size)
		row.ZoneLabel = canonical.ZoneLabel(comp, row.Zone)
	}
	return out
}

func clubsFromStandings(comp competition.Competition, rows []standing.Row) []club.Club {
	out := make([]club.Club, 0, len(rows))
	for _, row := range rows {
		out = append(out, club.Club{
			SourceID:    row.ClubSourceID,
			Competition: string(comp.Code),
			Season:      comp.Season,
			Name:        row.TeamName,
			ShortName:   row.TeamShort,
			BadgeURL:    row.TeamBadge,
		})
	}
	return out
}

// ensureClubs inserts the clubs that are missing and returns the id map of
// the competition season. Stored clubs are left as they are.
func (s *ReconcileService) ensureClubs(ctx context.Context, comp competition.Competition, candidates []club.Club) (map[string]int64, error) {
	ids, err := s.repos.Clubs.IDsBySourceID(ctx, string(comp.Code), comp.Season)
	if err != nil {
		return nil, fmt.Errorf("load club ids competition=%s: %w", comp.Code, err)
	}

	missing := make([]club.Club, 0)
	seen := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		if _, ok := ids[c.SourceID]; ok || c.SourceID == "" || strings.TrimSpace(c.Name) == "" {
			continue
		}
		if _, ok := seen[c.SourceID]; ok {
			continue
		}
		seen[c.SourceID] = struct{}{}
		missing = append(missing, c)
	}
	if len(missing) == 0 {
		return ids, nil
	}

	if _, err := s.ReconcileClubs(ctx, comp, missing); err != nil {
		return nil, err
	}
	ids, err = s.repos.Clubs.IDsBySourceID(ctx, string(comp.Code), comp.Season)
	if err != nil {
		return nil, fmt.Errorf("reload club ids competition=%s: %w", comp.Code, err)
	}
	return ids, nil
}

// ReconcileMatches links both teams to stored clubs when they exist; the
// names and badges stay on the match as the fallback.
func (s *ReconcileService) ReconcileMatches(ctx context.Context, comp competition.Competition, items []match.Match) (reconcile.BatchResult, error) {
	ctx, span := spans.Start(ctx, "usecase.ReconcileService.ReconcileMatches")
	defer span.End()

	var res reconcile.BatchResult
	ids, err := s.repos.Clubs.IDsBySourceID(ctx, string(comp.Code), comp.Season)
	if err != nil {
		return res, fmt.Errorf("load club ids competition=%s: %w", comp.Code, err)
	}

	valid := make([]match.Match, 0, len(items))
	for _, item := range items {
		item.SourceID = strings.TrimSpace(item.SourceID)
		item.Competition, item.Season = scope(comp, item.Competition, item.Season)
		if err := s.validate(ctx, item); err != nil {
			res.Fail(item.Key().String(), err)
			continue
		}
		if id, ok := ids[item.HomeSourceID]; ok {
			item.HomeClubID = &id
		}
		if id, ok := ids[item.AwaySourceID]; ok {
			item.AwayClubID = &id
		}
		valid = append(valid, item)
	}

	written, err := s.repos.Matches.UpsertMatches(ctx, valid)
	res.Merge(written)
	s.report(ctx, "match", comp, res)
	if err != nil {
		return res, fmt.Errorf("upsert matches competition=%s: %w", comp.Code, err)
	}
	return res, nil
}

// ReconcilePlayers writes players first and then their statistics, so each
// statistic row can reference its player.
func (s *ReconcileService) ReconcilePlayers(ctx context.Context, comp competition.Competition, records []PlayerRecord) (PlayerReconcileResult, error) {
	ctx, span := spans.Start(ctx, "usecase.ReconcileService.ReconcilePlayers")
	defer span.End()

	var out PlayerReconcileResult
	clubIDs, err := s.repos.Clubs.IDsBySourceID(ctx, string(comp.Code), comp.Season)
	if err != nil {
		return out, fmt.Errorf("load club ids competition=%s: %w", comp.Code, err)
	}

	players := make([]player.Player, 0, len(records))
	stats := make([]statistic.Statistic, 0, len(records))
	for _, rec := range records {
		p := rec.Player
		p.SourceID = strings.TrimSpace(p.SourceID)
		p.Competition, p.Season = scope(comp, p.Competition, p.Season)
		if err := s.validate(ctx, p); err != nil {
			out.Players.Fail(p.Key().String(), err)
			continue
		}
		if id, ok := clubIDs[p.ClubSourceID]; ok {
			p.ClubID = &id
		}
		players = append(players, p)

		st := rec.Statistic
		if st.PlayerSourceID == "" {
			st.PlayerSourceID = p.SourceID
		}
		st.Competition, st.Season = scope(comp, st.Competition, st.Season)
		if st.PlayerName == "" {
			st.PlayerName = p.Name
		}
		if st.ClubName == "" {
			st.ClubName = p.ClubName
		}
		st.Position = p.Position
		stats = append(stats, st)
	}

	written, err := s.repos.Players.UpsertPlayers(ctx, players)
	out.Players.Merge(written)
	s.report(ctx, "player", comp, out.Players)
	if err != nil {
		return out, fmt.Errorf("upsert players competition=%s: %w", comp.Code, err)
	}

	playerIDs, err := s.repos.Players.IDsBySourceID(ctx, string(comp.Code), comp.Season)
	if err != nil {
		return out, fmt.Errorf("load player ids competition=%s: %w", comp.Code, err)
	}
	validStats := make([]statistic.Statistic, 0, len(stats))
	for _, st := range stats {
		if err := s.validate(ctx, st); err != nil {
			out.Statistics.Fail(st.Key().String(), err)
			continue
		}
		if id, ok := playerIDs[st.PlayerSourceID]; ok {
			st.PlayerID = &id
		}
		validStats = append(validStats, st)
	}

	writtenStats, err := s.repos.Statistics.UpsertStatistics(ctx, validStats)
	out.Statistics.Merge(writtenStats)
	s.report(ctx, "statistic", comp, out.Statistics)
	if err != nil {
		return out, fmt.Errorf("upsert statistics competition=%s: %w", comp.Code, err)
	}
	return out, nil
}

// ReconcileNews inserts items whose source id is new. Items are created once
// and never rewritten.
func (s *ReconcileService) ReconcileNews(ctx context.Context, comp competition.Competition, items []news.Item) (reconcile.BatchResult, error) {
	ctx, span := spans.Start(ctx, "usecase.ReconcileService.ReconcileNews")
	defer span.End()

	var res reconcile.BatchResult
	valid := make([]news.Item, 0, len(items))
	for _, item := range items {
		item.SourceID = strings.TrimSpace(item.SourceID)
		if item.Competition == "" {
			item.Competition = string(comp.Code)
		}
		if item.Category == "" {
			item.Category = news.CategoryNews
		}
		if err := s.validate(ctx, item); err != nil {
			res.Fail("news:"+item.SourceID, err)
			continue
		}
		valid = append(valid, item)
	}

	written, err := s.repos.News.InsertNews(ctx, valid)
	res.Merge(written)
	s.report(ctx, "news", comp, res)
	if err != nil {
		return res, fmt.Errorf("insert news competition=%s: %w", comp.Code, err)
	}
	return res, nil
}

func (s *ReconcileService) validate(ctx context.Context, record any) error {
	if err := s.validator.StructCtx(ctx, record); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

func (s *ReconcileService) report(ctx context.Context, entity string, comp competition.Competition, res reconcile.BatchResult) {
	metrics.ObserveReconcile(entity, string(comp.Code), res.Inserted, res.Updated, res.Unchanged, res.Skipped)
	if len(res.Errors) > 0 {
		s.logger.WarnContext(ctx, "reconcile skipped records",
			"entity", entity,
			"competition", comp.Code,
			"skipped", res.Skipped,
			"error", res.Err(),
		)
	}
	s.logger.InfoContext(ctx, "reconcile batch done",
		"entity", entity,
		"competition", comp.Code,
		"inserted", res.Inserted,
		"updated", res.Updated,
		"unchanged", res.Unchanged,
		"skipped", res.Skipped,
	)
}

func scope(comp competition.Competition, code, season string) (string, string) {
	if strings.TrimSpace(code) == "" {
		code = string(comp.Code)
	}
	if strings.TrimSpace(season) == "" {
		season = comp.Season
	}
	return code, season
}
