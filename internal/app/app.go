package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/football-hub/external/fotmob"
	"github.com/riskibarqy/football-hub/external/gemini"
	"github.com/riskibarqy/football-hub/external/rss"
	"github.com/riskibarqy/football-hub/internal/config"
	"github.com/riskibarqy/football-hub/internal/domain/competition"
	"github.com/riskibarqy/football-hub/internal/interfaces/httpapi"
	"github.com/riskibarqy/football-hub/internal/metrics"
	"github.com/riskibarqy/football-hub/internal/platform/logging"
	"github.com/riskibarqy/football-hub/internal/platform/resilience"
	"github.com/riskibarqy/football-hub/internal/usecase"
)

type Options struct {
	// Memory forces the in-process store regardless of STORE_DRIVER.
	Memory bool
	// Competitions narrows the crawl to these codes. Empty uses COMPETITIONS.
	Competitions []string
	// Scheduler builds the cron scheduler. It is started by the caller.
	Scheduler bool
}

// App holds the wired services of one process.
type App struct {
	Config       config.Config
	Logger       *logging.Logger
	Registry     *competition.Registry
	Competitions []competition.Competition
	Store        *Store
	Reconciler   *usecase.ReconcileService
	Crawler      *usecase.CrawlService
	Reader       *usecase.ReadService
	Chat         *usecase.ChatService
	Scheduler    *usecase.Scheduler
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger, opts Options) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	metrics.Init()

	registry := competition.NewRegistry(cfg.CompetitionSeason, cfg.CompetitionSeasonLabel)
	codes := opts.Competitions
	if len(codes) == 0 {
		codes = cfg.CompetitionCodes
	}
	competitions := registry.Filter(codes)
	if len(competitions) == 0 {
		return nil, fmt.Errorf("%w: no known competition in %v", usecase.ErrInvalidInput, codes)
	}

	store, err := OpenStore(ctx, cfg, opts.Memory)
	if err != nil {
		return nil, err
	}
	repos := store
	if cfg.CacheEnabled {
		repos = store.Cached(cfg.CacheTTL)
	}

	reconciler := usecase.NewReconcileService(usecase.ReconcileRepositories{
		Clubs:      repos.Clubs,
		Standings:  repos.Standings,
		Matches:    repos.Matches,
		Players:    repos.Players,
		Statistics: repos.Statistics,
		News:       repos.News,
	}, logger.Named("reconcile"))

	source := fotmob.NewClient(fotmob.ClientConfig{
		BaseURL:        cfg.FotMobBaseURL,
		StatsBaseURL:   cfg.FotMobStatsBaseURL,
		Timeout:        cfg.FotMobTimeout,
		MaxRetries:     cfg.FotMobMaxRetries + 1,
		RetryDelay:     cfg.FotMobRetryDelay,
		RequestsPerSec: cfg.FotMobRPS,
		Concurrency:    cfg.FotMobConcurrency,
		Logger:         logger.Named("fotmob"),
		CircuitBreaker: resilience.BreakerConfig{
			Enabled:          cfg.FotMobCircuitEnabled,
			FailureThreshold: cfg.FotMobCircuitFailureCount,
			OpenTimeout:      cfg.FotMobCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FotMobCircuitHalfOpenMaxReq,
		},
	})
	feeds := rss.NewReader(rss.Config{
		UserAgent: cfg.RSSUserAgent,
		Timeout:   cfg.RSSTimeout,
		Logger:    logger.Named("rss"),
	})

	crawler := usecase.NewCrawlService(
		competitions,
		source,
		[]usecase.NewsSource{source, feeds},
		reconciler,
		repos.Matches,
		usecase.CrawlConfig{
			LiveLookback:           cfg.LiveLookback,
			LiveLookahead:          cfg.LiveLookahead,
			MatchDurationAllowance: cfg.MatchDurationAllowance,
		},
		logger.Named("crawl"),
	)

	reader := usecase.NewReadService(registry, usecase.ReadRepositories{
		Clubs:      repos.Clubs,
		Standings:  repos.Standings,
		Matches:    repos.Matches,
		Players:    repos.Players,
		Statistics: repos.Statistics,
		News:       repos.News,
	})

	var llm usecase.LLMClient
	if cfg.ChatLLMEnabled() {
		llm = gemini.NewClient(gemini.ClientConfig{
			APIKey:  cfg.GeminiAPIKey,
			BaseURL: cfg.GeminiBaseURL,
			Models:  cfg.GeminiModels,
			Timeout: cfg.GeminiTimeout,
			Logger:  logger.Named("gemini"),
			CircuitBreaker: resilience.BreakerConfig{
				Enabled:          true,
				FailureThreshold: 3,
				OpenTimeout:      time.Minute,
				HalfOpenMaxReq:   1,
			},
		})
	} else {
		logger.Info("chat llm disabled", "reason", "GEMINI_API_KEY empty")
	}
	chat := usecase.NewChatService(registry.All(), usecase.ChatRepositories{
		Clubs:      repos.Clubs,
		Standings:  repos.Standings,
		Matches:    repos.Matches,
		Statistics: repos.Statistics,
		News:       repos.News,
	}, llm, logger.Named("chat"))

	a := &App{
		Config:       cfg,
		Logger:       logger,
		Registry:     registry,
		Competitions: competitions,
		Store:        store,
		Reconciler:   reconciler,
		Crawler:      crawler,
		Reader:       reader,
		Chat:         chat,
	}

	if opts.Scheduler {
		scheduler, err := usecase.NewScheduler(crawler.JobSpecs(jobSchedules(cfg)), usecase.SchedulerConfig{
			Workers:      cfg.SchedulerWorkers,
			Location:     cfg.SchedulerTimezone,
			InitialCrawl: cfg.SchedulerInitialCrawl,
			InitialJobs:  usecase.DefaultInitialJobs(),
		}, store.JobRuns, logger)
		if err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("build scheduler: %w", err)
		}
		a.Scheduler = scheduler
	}

	return a, nil
}

func jobSchedules(cfg config.Config) usecase.JobSchedules {
	return usecase.JobSchedules{
		Live:        cfg.JobLiveSchedule,
		EndDetector: cfg.JobEndDetectorSchedule,
		Standings:   cfg.JobStandingsSchedule,
		News:        cfg.JobNewsSchedule,
		Players:     cfg.JobPlayersSchedule,
		Fixtures:    cfg.JobFixturesSchedule,
		Clubs:       cfg.JobClubsSchedule,
	}
}

// HTTPServer builds the read API server around the wired services.
func (a *App) HTTPServer() (*http.Server, error) {
	if a.Config.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	var jobs httpapi.JobRunner
	if a.Scheduler != nil {
		jobs = a.Scheduler
	}
	var db httpapi.Pinger
	if sqlDB := a.Store.DB(); sqlDB != nil {
		db = sqlDB
	}

	handler := httpapi.NewHandler(
		a.Reader,
		a.Chat,
		jobs,
		db,
		httpapi.NewClientRateLimiter(a.Config.ChatRatePerMinute, a.Config.ChatRateBurst),
		a.Logger.Named("http"),
	)
	router := httpapi.NewRouter(handler, httpapi.RouterConfig{
		Logger:           a.Logger.Named("http"),
		SwaggerEnabled:   a.Config.SwaggerEnabled,
		CORSOrigins:      a.Config.CORSAllowedOrigins,
		InternalJobToken: a.Config.InternalJobToken,
	})

	return &http.Server{
		Addr:              a.Config.HTTPAddr,
		Handler:           router,
		ReadTimeout:       a.Config.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      a.Config.WriteTimeout,
	}, nil
}

// RunJob runs one named job in-process, outside any scheduler.
func (a *App) RunJob(ctx context.Context, raw string) (int, error) {
	name, ok := usecase.ResolveJobName(raw)
	if !ok {
		return 0, fmt.Errorf("%w: unknown job %q", usecase.ErrNotFound, raw)
	}
	for _, spec := range a.Crawler.JobSpecs(jobSchedules(a.Config)) {
		if spec.ID == name {
			return spec.Run(ctx)
		}
	}
	return 0, fmt.Errorf("%w: unknown job %q", usecase.ErrNotFound, raw)
}

func (a *App) Close() error {
	return a.Store.Close()
}
