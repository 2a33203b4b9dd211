package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/robfig/cron/v3"
	"github.com/sourcegraph/conc/panics"
	"go.opentelemetry.io/otel/trace"

	"github.com/riskibarqy/football-hub/internal/domain/jobrun"
	"github.com/riskibarqy/football-hub/internal/metrics"
	"github.com/riskibarqy/football-hub/internal/platform/id"
	"github.com/riskibarqy/football-hub/internal/platform/logging"
)

const (
	triggerCron    = "cron"
	triggerManual  = "manual"
	triggerCascade = "cascade"
	triggerInitial = "initial"
)

// JobFunc runs one job and returns how many records it affected. A positive
// count fires the job's cascade.
type JobFunc func(ctx context.Context) (int, error)

type JobSpec struct {
	ID       string
	Name     string
	Schedule string
	Run      JobFunc
	Cascade  []string
}

type SchedulerConfig struct {
	Workers      int
	Location     *time.Location
	InitialCrawl bool
	InitialJobs  []string
	IDs          id.Generator
}

type JobStatus struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Schedule  string     `json:"schedule"`
	NextRun   *time.Time `json:"next_run,omitempty"`
	LastRun   *time.Time `json:"last_run,omitempty"`
	LastError string     `json:"last_error,omitempty"`
	Running   bool       `json:"running"`
}

type SchedulerStatus struct {
	Running bool        `json:"running"`
	Jobs    []JobStatus `json:"jobs"`
}

type scheduledJob struct {
	spec    JobSpec
	entryID cron.EntryID
	running atomic.Bool

	mu        sync.Mutex
	lastRun   *time.Time
	lastError string
}

// Scheduler owns the periodic jobs. Runs go through one bounded worker pool
// and a job never overlaps itself: a tick that finds it busy is dropped.
type Scheduler struct {
	jobs   map[string]*scheduledJob
	cron   *cron.Cron
	pool   *ants.Pool
	runs   jobrun.Repository
	ids    id.Generator
	cfg    SchedulerConfig
	logger *logging.Logger
	now    func() time.Time

	mu       sync.Mutex
	started  bool
	baseCtx  context.Context
	cancel   context.CancelFunc
	inflight sync.WaitGroup
}

func NewScheduler(jobs []JobSpec, cfg SchedulerConfig, runs jobrun.Repository, logger *logging.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.IDs == nil {
		cfg.IDs = id.NewUUIDGenerator("run")
	}

	pool, err := ants.NewPool(cfg.Workers)
	if err != nil {
		return nil, fmt.Errorf("create scheduler worker pool: %w", err)
	}

	s := &Scheduler{
		jobs:    make(map[string]*scheduledJob, len(jobs)),
		cron:    cron.New(cron.WithLocation(cfg.Location)),
		pool:    pool,
		runs:    runs,
		ids:     cfg.IDs,
		cfg:     cfg,
		logger:  logger.Named("scheduler"),
		now:     time.Now,
		baseCtx: context.Background(),
	}

	for _, spec := range jobs {
		spec.ID = strings.TrimSpace(spec.ID)
		if spec.ID == "" || spec.Run == nil {
			pool.Release()
			return nil, fmt.Errorf("%w: job id and run func are required", ErrInvalidInput)
		}
		if _, dup := s.jobs[spec.ID]; dup {
			pool.Release()
			return nil, fmt.Errorf("%w: duplicate job %s", ErrInvalidInput, spec.ID)
		}
		job := &scheduledJob{spec: spec}
		if strings.TrimSpace(spec.Schedule) != "" {
			entryID, err := s.cron.AddFunc(spec.Schedule, func() { s.submit(job, triggerCron) })
			if err != nil {
				pool.Release()
				return nil, fmt.Errorf("parse schedule job=%s schedule=%q: %w", spec.ID, spec.Schedule, err)
			}
			job.entryID = entryID
		}
		s.jobs[spec.ID] = job
	}
	return s, nil
}

// Start begins ticking and, when configured, submits the initial crawl
// without waiting for it.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.baseCtx, s.cancel = context.WithCancel(context.WithoutCancel(ctx))
	s.mu.Unlock()

	s.cron.Start()
	s.logger.InfoContext(ctx, "scheduler started", "jobs", len(s.jobs), "workers", s.cfg.Workers)

	if !s.cfg.InitialCrawl {
		return
	}
	for _, name := range s.cfg.InitialJobs {
		job, ok := s.lookup(name)
		if !ok {
			s.logger.WarnContext(ctx, "unknown initial job", "job", name)
			continue
		}
		s.submit(job, triggerInitial)
	}
}

// Stop halts the ticks and waits for in-flight runs until ctx is done, then
// cancels whatever is still running.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = false
	cancel := s.cancel
	s.mu.Unlock()

	<-s.cron.Stop().Done()

	done := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(done)
	}()

	var err error
	select {
	case <-done:
	case <-ctx.Done():
		err = fmt.Errorf("wait for running jobs: %w", ctx.Err())
	}
	if cancel != nil {
		cancel()
	}
	s.pool.Release()
	s.logger.InfoContext(ctx, "scheduler stopped")
	return err
}

// Trigger runs a job in the caller's goroutine.
func (s *Scheduler) Trigger(ctx context.Context, name string) error {
	job, ok := s.lookup(name)
	if !ok {
		return fmt.Errorf("%w: job=%s", ErrNotFound, name)
	}
	if !job.running.CompareAndSwap(false, true) {
		metrics.ObserveJobSkip(job.spec.ID, "running")
		return fmt.Errorf("%w: job=%s", ErrJobRunning, job.spec.ID)
	}
	s.inflight.Add(1)
	defer s.inflight.Done()
	defer job.running.Store(false)

	_, err := s.execute(ctx, job, triggerManual)
	return err
}

// Enqueue submits a job after delay through the shared pool. A job that is
// already running at that moment is skipped, not queued.
func (s *Scheduler) Enqueue(ctx context.Context, name string, delay time.Duration) error {
	job, ok := s.lookup(name)
	if !ok {
		return fmt.Errorf("%w: job=%s", ErrNotFound, name)
	}
	if delay <= 0 {
		s.submit(job, triggerCascade)
		return nil
	}
	time.AfterFunc(delay, func() { s.submit(job, triggerCascade) })
	s.logger.DebugContext(ctx, "job enqueued", "job", job.spec.ID, "delay", delay)
	return nil
}

func (s *Scheduler) Status() SchedulerStatus {
	s.mu.Lock()
	running := s.started
	s.mu.Unlock()

	out := SchedulerStatus{Running: running, Jobs: make([]JobStatus, 0, len(s.jobs))}
	for _, job := range s.jobs {
		st := JobStatus{
			ID:       job.spec.ID,
			Name:     job.spec.Name,
			Schedule: job.spec.Schedule,
			Running:  job.running.Load(),
		}
		if job.entryID != 0 {
			if next := s.cron.Entry(job.entryID).Next; !next.IsZero() {
				st.NextRun = &next
			}
		}
		job.mu.Lock()
		if job.lastRun != nil {
			last := *job.lastRun
			st.LastRun = &last
		}
		st.LastError = job.lastError
		job.mu.Unlock()
		out.Jobs = append(out.Jobs, st)
	}
	sort.Slice(out.Jobs, func(i, j int) bool { return out.Jobs[i].ID < out.Jobs[j].ID })
	return out
}

func (s *Scheduler) lookup(name string) (*scheduledJob, bool) {
	if job, ok := s.jobs[strings.TrimSpace(name)]; ok {
		return job, true
	}
	resolved, ok := ResolveJobName(name)
	if !ok {
		return nil, false
	}
	job, ok := s.jobs[resolved]
	return job, ok
}

func (s *Scheduler) submit(job *scheduledJob, trigger string) {
	if !job.running.CompareAndSwap(false, true) {
		metrics.ObserveJobSkip(job.spec.ID, "running")
		s.logger.Debug("job still running, tick skipped", "job", job.spec.ID, "trigger", trigger)
		return
	}

	s.mu.Lock()
	ctx := s.baseCtx
	s.mu.Unlock()

	s.inflight.Add(1)
	if err := s.pool.Submit(func() {
		defer s.inflight.Done()
		defer job.running.Store(false)
		_, _ = s.execute(ctx, job, trigger)
	}); err != nil {
		s.inflight.Done()
		job.running.Store(false)
		s.logger.Warn("submit job to worker pool failed", "job", job.spec.ID, "error", err)
	}
}

// execute wraps one run with panic recovery, the run record and metrics.
func (s *Scheduler) execute(ctx context.Context, job *scheduledJob, trigger string) (int, error) {
	ctx, span := spans.Start(ctx, "usecase.Scheduler."+job.spec.ID)
	defer span.End()

	runID := s.ids.NewID()
	started := s.now().UTC()
	s.recordRun(ctx, jobrun.Run{
		RunID:      runID,
		Job:        job.spec.ID,
		Trigger:    trigger,
		Status:     jobrun.StatusStarted,
		OccurredAt: started,
	})

	var (
		affected int
		runErr   error
		catcher  panics.Catcher
	)
	catcher.Try(func() {
		affected, runErr = job.spec.Run(ctx)
	})
	if recovered := catcher.Recovered(); recovered != nil {
		runErr = fmt.Errorf("job %s panicked: %w", job.spec.ID, recovered.AsError())
	}

	finished := s.now().UTC()
	duration := finished.Sub(started)
	event := jobrun.Run{
		RunID:      runID,
		Job:        job.spec.ID,
		Trigger:    trigger,
		Status:     jobrun.StatusCompleted,
		Payload:    map[string]any{"affected": affected},
		OccurredAt: finished,
		DurationMS: duration.Milliseconds(),
	}
	outcome := "success"
	if runErr != nil {
		outcome = "failure"
		event.Status = jobrun.StatusFailed
		event.Error = runErr.Error()
		s.logger.ErrorContext(ctx, "job run failed",
			"job", job.spec.ID,
			"trigger", trigger,
			"run_id", runID,
			"duration_ms", duration.Milliseconds(),
			"error", runErr,
		)
	} else {
		s.logger.InfoContext(ctx, "job run completed",
			"job", job.spec.ID,
			"trigger", trigger,
			"run_id", runID,
			"affected", affected,
			"duration_ms", duration.Milliseconds(),
		)
	}
	s.recordRun(ctx, event)
	metrics.ObserveJobRun(job.spec.ID, outcome, duration)

	job.mu.Lock()
	job.lastRun = &finished
	job.lastError = ""
	if runErr != nil {
		job.lastError = runErr.Error()
	}
	job.mu.Unlock()

	if runErr == nil && affected > 0 {
		for _, next := range job.spec.Cascade {
			if err := s.Enqueue(ctx, next, 0); err != nil {
				s.logger.WarnContext(ctx, "cascade job failed", "job", job.spec.ID, "next", next, "error", err)
			}
		}
	}
	return affected, runErr
}

func (s *Scheduler) recordRun(ctx context.Context, event jobrun.Run) {
	if s.runs == nil {
		return
	}
	event.TraceID, event.SpanID = spanMetaFromContext(ctx)
	if err := s.runs.Record(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "record job run failed",
			"run_id", event.RunID,
			"status", event.Status,
			"error", err,
		)
	}
}

func spanMetaFromContext(ctx context.Context) (string, string) {
	spanContext := trace.SpanFromContext(ctx).SpanContext()
	if !spanContext.IsValid() {
		return "", ""
	}
	return spanContext.TraceID().String(), spanContext.SpanID().String()
}

type JobSchedules struct {
	Live        string
	EndDetector string
	Standings   string
	News        string
	Players     string
	Fixtures    string
	Clubs       string
}

func DefaultJobSchedules() JobSchedules {
	return JobSchedules{
		Live:        "@every 1m",
		EndDetector: "@every 90s",
		Standings:   "@every 1h",
		News:        "@every 30m",
		Players:     "0 3 * * *",
		Fixtures:    "@every 6h",
		Clubs:       "0 4 * * 1",
	}
}

// DefaultInitialJobs are submitted when the scheduler starts.
func DefaultInitialJobs() []string {
	return []string{JobStandings, JobFixtures, JobNews}
}

// JobSpecs binds the crawl bodies to their schedules. The end detector
// cascades into a standings refresh when a match finished.
func (s *CrawlService) JobSpecs(schedules JobSchedules) []JobSpec {
	defaults := DefaultJobSchedules()
	pick := func(value, fallback string) string {
		if strings.TrimSpace(value) == "" {
			return fallback
		}
		return value
	}
	noCount := func(fn func(context.Context) error) JobFunc {
		return func(ctx context.Context) (int, error) { return 0, fn(ctx) }
	}

	return []JobSpec{
		{ID: JobLiveMatches, Name: "Live matches", Schedule: pick(schedules.Live, defaults.Live), Run: noCount(s.RunLive)},
		{ID: JobMatchEndDetector, Name: "Match end detector", Schedule: pick(schedules.EndDetector, defaults.EndDetector), Run: s.RunEndDetector, Cascade: []string{JobStandings}},
		{ID: JobStandings, Name: "Standings", Schedule: pick(schedules.Standings, defaults.Standings), Run: noCount(s.RunStandings)},
		{ID: JobNews, Name: "News", Schedule: pick(schedules.News, defaults.News), Run: noCount(s.RunNews)},
		{ID: JobPlayers, Name: "Players and statistics", Schedule: pick(schedules.Players, defaults.Players), Run: noCount(s.RunPlayers)},
		{ID: JobFixtures, Name: "Fixtures", Schedule: pick(schedules.Fixtures, defaults.Fixtures), Run: noCount(s.RunFixtures)},
		{ID: JobClubs, Name: "Club enrichment", Schedule: pick(schedules.Clubs, defaults.Clubs), Run: noCount(s.RunClubs)},
	}
}
