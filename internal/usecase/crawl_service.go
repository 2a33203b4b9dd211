package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/football-hub/internal/domain/club"
	"github.com/riskibarqy/football-hub/internal/domain/competition"
	"github.com/riskibarqy/football-hub/internal/domain/match"
	"github.com/riskibarqy/football-hub/internal/metrics"
	"github.com/riskibarqy/football-hub/internal/platform/logging"
)

const (
	JobLiveMatches      = "live_matches"
	JobMatchEndDetector = "match_end_detector"
	JobStandings        = "standings"
	JobNews             = "news"
	JobPlayers          = "players"
	JobFixtures         = "fixtures"
	JobClubs            = "clubs"
)

// initialCrawlOrder is the order RunAll walks when no subset is given.
var initialCrawlOrder = []string{JobClubs, JobStandings, JobFixtures, JobPlayers, JobNews}

type CrawlConfig struct {
	LiveLookback           time.Duration
	LiveLookahead          time.Duration
	MatchDurationAllowance time.Duration
}

// CrawlService runs the job bodies: fetch through the source adapters, then
// reconcile into the store.
type CrawlService struct {
	competitions []competition.Competition
	source       FootballSource
	newsSources  []NewsSource
	reconciler   *ReconcileService
	matchRepo    match.Repository
	cfg          CrawlConfig
	logger       *logging.Logger
	now          func() time.Time
}

func NewCrawlService(
	competitions []competition.Competition,
	source FootballSource,
	newsSources []NewsSource,
	reconciler *ReconcileService,
	matchRepo match.Repository,
	cfg CrawlConfig,
	logger *logging.Logger,
) *CrawlService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.LiveLookback <= 0 {
		cfg.LiveLookback = 3 * time.Hour
	}
	if cfg.LiveLookahead <= 0 {
		cfg.LiveLookahead = 10 * time.Minute
	}
	if cfg.MatchDurationAllowance <= 0 {
		cfg.MatchDurationAllowance = 95 * time.Minute
	}
	return &CrawlService{
		competitions: competitions,
		source:       source,
		newsSources:  newsSources,
		reconciler:   reconciler,
		matchRepo:    matchRepo,
		cfg:          cfg,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *CrawlService) Competitions() []competition.Competition {
	return append([]competition.Competition(nil), s.competitions...)
}

// RunStandings reconciles every table. Missing clubs are created from the
// rows by the reconciler.
func (s *CrawlService) RunStandings(ctx context.Context) error {
	ctx, span := spans.Start(ctx, "usecase.CrawlService.RunStandings")
	defer span.End()

	return s.eachCompetition(ctx, JobStandings, func(ctx context.Context, comp competition.Competition) error {
		rows, err := s.source.FetchStandings(ctx, comp)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			s.logger.WarnContext(ctx, "no standings fetched", "competition", comp.Code)
			return nil
		}
		_, err = s.reconciler.ReconcileStandings(ctx, comp, rows)
		return err
	})
}

// RunFixtures stores the full fixture list, creating minimal clubs for any
// team not seen before.
func (s *CrawlService) RunFixtures(ctx context.Context) error {
	ctx, span := spans.Start(ctx, "usecase.CrawlService.RunFixtures")
	defer span.End()

	return s.eachCompetition(ctx, JobFixtures, func(ctx context.Context, comp competition.Competition) error {
		items, err := s.source.FetchMatches(ctx, comp)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			s.logger.WarnContext(ctx, "no fixtures fetched", "competition", comp.Code)
			return nil
		}
		if _, err := s.reconciler.ensureClubs(ctx, comp, clubsFromMatches(comp, items)); err != nil {
			return err
		}
		_, err = s.reconciler.ReconcileMatches(ctx, comp, items)
		return err
	})
}

// RunLive refreshes in-play matches. Without a live match or a kickoff inside
// the activity window it does no network work at all.
func (s *CrawlService) RunLive(ctx context.Context) error {
	ctx, span := spans.Start(ctx, "usecase.CrawlService.RunLive")
	defer span.End()

	now := s.now().UTC()
	from, to := now.Add(-s.cfg.LiveLookback), now.Add(s.cfg.LiveLookahead)
	active, err := s.matchRepo.HasActivity(ctx, from, to)
	if err != nil {
		return fmt.Errorf("check match activity: %w", err)
	}
	if !active {
		metrics.ObserveJobSkip(JobLiveMatches, "idle")
		s.logger.DebugContext(ctx, "live poll idle", "window_from", from, "window_to", to)
		return nil
	}

	return s.eachCompetition(ctx, JobLiveMatches, func(ctx context.Context, comp competition.Competition) error {
		items, err := s.source.FetchMatches(ctx, comp)
		if err != nil {
			return err
		}
		relevant := make([]match.Match, 0, len(items))
		for _, item := range items {
			if inLiveScope(item, from, to) {
				relevant = append(relevant, item)
			}
		}
		if len(relevant) == 0 {
			return nil
		}
		_, err = s.reconciler.ReconcileMatches(ctx, comp, relevant)
		return err
	})
}

func inLiveScope(item match.Match, from, to time.Time) bool {
	if item.Status.IsLive() || item.Status.IsFinished() {
		return true
	}
	return !item.KickoffAt.IsZero() && !item.KickoffAt.Before(from) && !item.KickoffAt.After(to)
}

// RunEndDetector refetches matches that are still live past the expected
// full-time mark and reports how many of them are now finished.
func (s *CrawlService) RunEndDetector(ctx context.Context) (int, error) {
	ctx, span := spans.Start(ctx, "usecase.CrawlService.RunEndDetector")
	defer span.End()

	overdue, err := s.matchRepo.ListOverdueLive(ctx, s.now().UTC().Add(-s.cfg.MatchDurationAllowance))
	if err != nil {
		return 0, fmt.Errorf("list overdue live matches: %w", err)
	}
	if len(overdue) == 0 {
		return 0, nil
	}

	byCompetition := make(map[string][]string)
	for _, item := range overdue {
		byCompetition[item.Competition] = append(byCompetition[item.Competition], item.SourceID)
	}

	finished := 0
	err = s.eachCompetition(ctx, JobMatchEndDetector, func(ctx context.Context, comp competition.Competition) error {
		ids := byCompetition[string(comp.Code)]
		if len(ids) == 0 {
			return nil
		}
		details, err := s.source.FetchMatchDetails(ctx, comp, ids)
		if err != nil {
			return err
		}
		if len(details) == 0 {
			return nil
		}
		if _, err := s.reconciler.ReconcileMatches(ctx, comp, details); err != nil {
			return err
		}
		for _, item := range details {
			if item.Status.IsFinished() {
				finished++
			}
		}
		return nil
	})
	if finished > 0 {
		s.logger.InfoContext(ctx, "matches finished", "count", finished)
	}
	return finished, err
}

// RunPlayers refreshes clubs first so players can reference them.
func (s *CrawlService) RunPlayers(ctx context.Context) error {
	ctx, span := spans.Start(ctx, "usecase.CrawlService.RunPlayers")
	defer span.End()

	return s.eachCompetition(ctx, JobPlayers, func(ctx context.Context, comp competition.Competition) error {
		if err := s.syncClubs(ctx, comp); err != nil {
			return err
		}
		records, err := s.source.FetchPlayers(ctx, comp)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			s.logger.WarnContext(ctx, "no players fetched", "competition", comp.Code)
			return nil
		}
		_, err = s.reconciler.ReconcilePlayers(ctx, comp, records)
		return err
	})
}

func (s *CrawlService) RunNews(ctx context.Context) error {
	ctx, span := spans.Start(ctx, "usecase.CrawlService.RunNews")
	defer span.End()

	return s.eachCompetition(ctx, JobNews, func(ctx context.Context, comp competition.Competition) error {
		for _, src := range s.newsSources {
			items, err := src.FetchNews(ctx, comp)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				continue
			}
			if _, err := s.reconciler.ReconcileNews(ctx, comp, items); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *CrawlService) RunClubs(ctx context.Context) error {
	ctx, span := spans.Start(ctx, "usecase.CrawlService.RunClubs")
	defer span.End()

	return s.eachCompetition(ctx, JobClubs, s.syncClubs)
}

func (s *CrawlService) syncClubs(ctx context.Context, comp competition.Competition) error {
	items, err := s.source.FetchClubs(ctx, comp)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		s.logger.WarnContext(ctx, "no clubs fetched", "competition", comp.Code)
		return nil
	}
	_, err = s.reconciler.ReconcileClubs(ctx, comp, items)
	return err
}

// RunAll runs the named crawl jobs in dependency order. An empty list runs
// clubs, standings, fixtures, players and news.
func (s *CrawlService) RunAll(ctx context.Context, only []string) error {
	names := initialCrawlOrder
	if len(only) > 0 {
		wanted := make(map[string]struct{}, len(only))
		for _, raw := range only {
			name, ok := ResolveJobName(raw)
			if !ok {
				return fmt.Errorf("%w: job=%s", ErrNotFound, raw)
			}
			wanted[name] = struct{}{}
		}
		names = make([]string, 0, len(wanted))
		for _, name := range append(append([]string(nil), initialCrawlOrder...), JobLiveMatches, JobMatchEndDetector) {
			if _, ok := wanted[name]; ok {
				names = append(names, name)
			}
		}
	}

	var errs []error
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}
		started := time.Now()
		err := s.runNamed(ctx, name)
		s.logger.InfoContext(ctx, "crawl step done",
			"job", name,
			"duration_ms", time.Since(started).Milliseconds(),
			"error", err,
		)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

func (s *CrawlService) runNamed(ctx context.Context, name string) error {
	switch name {
	case JobClubs:
		return s.RunClubs(ctx)
	case JobStandings:
		return s.RunStandings(ctx)
	case JobFixtures:
		return s.RunFixtures(ctx)
	case JobPlayers:
		return s.RunPlayers(ctx)
	case JobNews:
		return s.RunNews(ctx)
	case JobLiveMatches:
		return s.RunLive(ctx)
	case JobMatchEndDetector:
		_, err := s.RunEndDetector(ctx)
		return err
	default:
		return fmt.Errorf("%w: job=%s", ErrNotFound, name)
	}
}

// eachCompetition keeps going after a competition fails; only a cancelled
// context stops the loop early.
func (s *CrawlService) eachCompetition(ctx context.Context, job string, fn func(context.Context, competition.Competition) error) error {
	var errs []error
	for _, comp := range s.competitions {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(ctx, comp); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			s.logger.WarnContext(ctx, "crawl competition failed",
				"job", job,
				"competition", comp.Code,
				"error", err,
			)
			errs = append(errs, fmt.Errorf("competition=%s: %w", comp.Code, err))
		}
	}
	return errors.Join(errs...)
}

func clubsFromMatches(comp competition.Competition, items []match.Match) []club.Club {
	out := make([]club.Club, 0, len(items)*2)
	for _, item := range items {
		out = append(out,
			club.Club{SourceID: item.HomeSourceID, Competition: string(comp.Code), Season: comp.Season, Name: item.HomeTeamName, BadgeURL: item.HomeBadge},
			club.Club{SourceID: item.AwaySourceID, Competition: string(comp.Code), Season: comp.Season, Name: item.AwayTeamName, BadgeURL: item.AwayBadge},
		)
	}
	return out
}

var jobAliases = map[string]string{
	"live":         JobLiveMatches,
	"end_detector": JobMatchEndDetector,
	"standings":    JobStandings,
	"news":         JobNews,
	"players":      JobPlayers,
	"fixtures":     JobFixtures,
	"clubs":        JobClubs,
}

// ResolveJobName accepts a job id or one of its short aliases.
func ResolveJobName(raw string) (string, bool) {
	name := strings.ToLower(strings.TrimSpace(raw))
	name = strings.ReplaceAll(name, "-", "_")
	switch name {
	case JobLiveMatches, JobMatchEndDetector, JobStandings, JobNews, JobPlayers, JobFixtures, JobClubs:
		return name, true
	}
	id, ok := jobAliases[name]
	return id, ok
}
