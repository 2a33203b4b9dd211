package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/football-hub/internal/domain/jobrun"
	"github.com/riskibarqy/football-hub/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/football-hub/internal/platform/id"
	"github.com/riskibarqy/football-hub/internal/platform/logging"
)

func newTestScheduler(t *testing.T, jobs []JobSpec, runs jobrun.Repository) *Scheduler {
	t.Helper()
	s, err := NewScheduler(jobs, SchedulerConfig{Workers: 2, IDs: &id.Sequence{Prefix: "run"}}, runs, logging.NewNop())
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = s.Stop(ctx)
		s.pool.Release()
	})
	return s
}

func TestScheduler_TriggerUnknownJob(t *testing.T) {
	t.Parallel()

	s := newTestScheduler(t, []JobSpec{{ID: JobNews, Run: func(context.Context) (int, error) { return 0, nil }}}, nil)
	if err := s.Trigger(context.Background(), "transfers"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestScheduler_TriggerResolvesAliases(t *testing.T) {
	t.Parallel()

	var liveRuns, endRuns int
	s := newTestScheduler(t, []JobSpec{
		{ID: JobLiveMatches, Run: func(context.Context) (int, error) { liveRuns++; return 0, nil }},
		{ID: JobMatchEndDetector, Run: func(context.Context) (int, error) { endRuns++; return 0, nil }},
	}, nil)

	for _, alias := range []string{"end_detector", "live", "End-Detector"} {
		if err := s.Trigger(context.Background(), alias); err != nil {
			t.Fatalf("trigger %q: %v", alias, err)
		}
	}
	if liveRuns != 1 || endRuns != 2 {
		t.Fatalf("runs live=%d end=%d, want 1 and 2", liveRuns, endRuns)
	}
}

func TestScheduler_TriggerWhileRunning(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	release := make(chan struct{})
	s := newTestScheduler(t, []JobSpec{{
		ID: JobStandings,
		Run: func(context.Context) (int, error) {
			close(started)
			<-release
			return 0, nil
		},
	}}, nil)

	done := make(chan error, 1)
	go func() { done <- s.Trigger(context.Background(), "standings") }()
	<-started

	if err := s.Trigger(context.Background(), JobStandings); !errors.Is(err, ErrJobRunning) {
		t.Fatalf("expected ErrJobRunning, got %v", err)
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first trigger failed: %v", err)
	}
	if err := s.Trigger(context.Background(), JobStandings); err != nil {
		t.Fatalf("trigger after finish: %v", err)
	}
}

func TestScheduler_RecoversPanicsAndRecordsFailure(t *testing.T) {
	t.Parallel()

	runs := memory.NewJobRunRepository()
	s := newTestScheduler(t, []JobSpec{{
		ID:  JobPlayers,
		Run: func(context.Context) (int, error) { panic("boom") },
	}}, runs)

	err := s.Trigger(context.Background(), JobPlayers)
	if err == nil {
		t.Fatalf("expected panic to surface as error")
	}

	recent, err := runs.Recent(context.Background(), JobPlayers, 10)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(recent) != 1 || recent[0].Status != jobrun.StatusFailed || recent[0].Trigger != triggerManual {
		t.Fatalf("unexpected run records: %+v", recent)
	}

	status := s.Status()
	if len(status.Jobs) != 1 || status.Jobs[0].LastError == "" || status.Jobs[0].LastRun == nil {
		t.Fatalf("unexpected status: %+v", status)
	}
}

func TestScheduler_EndDetectorCascadesIntoStandings(t *testing.T) {
	t.Parallel()

	standingsRan := make(chan struct{}, 1)
	s := newTestScheduler(t, []JobSpec{
		{ID: JobMatchEndDetector, Run: func(context.Context) (int, error) { return 1, nil }, Cascade: []string{JobStandings}},
		{ID: JobStandings, Run: func(context.Context) (int, error) {
			standingsRan <- struct{}{}
			return 0, nil
		}},
	}, nil)

	if err := s.Trigger(context.Background(), "end_detector"); err != nil {
		t.Fatalf("trigger: %v", err)
	}
	select {
	case <-standingsRan:
	case <-time.After(2 * time.Second):
		t.Fatalf("standings refresh was not cascaded")
	}
}

func TestScheduler_NoCascadeWithoutFinishedMatches(t *testing.T) {
	t.Parallel()

	standingsRan := make(chan struct{}, 1)
	s := newTestScheduler(t, []JobSpec{
		{ID: JobMatchEndDetector, Run: func(context.Context) (int, error) { return 0, nil }, Cascade: []string{JobStandings}},
		{ID: JobStandings, Run: func(context.Context) (int, error) {
			standingsRan <- struct{}{}
			return 0, nil
		}},
	}, nil)

	if err := s.Trigger(context.Background(), JobMatchEndDetector); err != nil {
		t.Fatalf("trigger: %v", err)
	}
	select {
	case <-standingsRan:
		t.Fatalf("standings must not run when nothing finished")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestScheduler_StatusSortedAndRejectsBadSchedule(t *testing.T) {
	t.Parallel()

	noop := func(context.Context) (int, error) { return 0, nil }
	s := newTestScheduler(t, []JobSpec{
		{ID: JobStandings, Schedule: "@every 1h", Run: noop},
		{ID: JobClubs, Schedule: "0 4 * * 1", Run: noop},
		{ID: JobNews, Schedule: "@every 30m", Run: noop},
	}, nil)

	status := s.Status()
	if status.Running {
		t.Fatalf("scheduler must not report running before Start")
	}
	want := []string{JobClubs, JobNews, JobStandings}
	for i, job := range status.Jobs {
		if job.ID != want[i] {
			t.Fatalf("unexpected order: %+v", status.Jobs)
		}
	}

	if _, err := NewScheduler([]JobSpec{{ID: JobNews, Schedule: "every so often", Run: noop}}, SchedulerConfig{}, nil, logging.NewNop()); err == nil {
		t.Fatalf("expected invalid schedule to be rejected")
	}
}

func TestCrawlService_JobSpecsUseDefaults(t *testing.T) {
	t.Parallel()

	svc := newTestCrawler(t, newMemoryStore(), &fakeSource{}, time.Now())
	specs := svc.JobSpecs(JobSchedules{Live: "@every 30s"})
	if len(specs) != 7 {
		t.Fatalf("expected 7 jobs, got %d", len(specs))
	}
	for _, spec := range specs {
		switch spec.ID {
		case JobLiveMatches:
			if spec.Schedule != "@every 30s" {
				t.Fatalf("override ignored: %q", spec.Schedule)
			}
		case JobPlayers:
			if spec.Schedule != "0 3 * * *" {
				t.Fatalf("unexpected players schedule: %q", spec.Schedule)
			}
		case JobMatchEndDetector:
			if len(spec.Cascade) != 1 || spec.Cascade[0] != JobStandings {
				t.Fatalf("end detector must cascade into standings: %+v", spec.Cascade)
			}
		}
	}
}
