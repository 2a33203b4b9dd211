package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/football-hub/internal/domain/jobrun"
	jobrunmock "github.com/riskibarqy/football-hub/internal/mocks/domain/jobrun"
	"github.com/riskibarqy/football-hub/internal/platform/logging"
)

func TestScheduler_TriggerRecordsRunUsingMockery(t *testing.T) {
	t.Parallel()

	repo := jobrunmock.NewRepository(t)
	repo.
		On("Record", mock.Anything, mock.MatchedBy(func(e jobrun.Run) bool {
			return e.Job == JobStandings && e.Status == jobrun.StatusStarted && e.Trigger == triggerManual
		})).
		Return(nil).
		Once()
	repo.
		On("Record", mock.Anything, mock.MatchedBy(func(e jobrun.Run) bool {
			return e.Job == JobStandings && e.Status == jobrun.StatusCompleted && e.Payload["affected"] == 3
		})).
		Return(nil).
		Once()

	s, err := NewScheduler([]JobSpec{{
		ID:  JobStandings,
		Run: func(context.Context) (int, error) { return 3, nil },
	}}, SchedulerConfig{Workers: 1}, repo, logging.NewNop())
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}

	if err := s.Trigger(context.Background(), JobStandings); err != nil {
		t.Fatalf("trigger: %v", err)
	}
}

func TestScheduler_TriggerRecordsFailureUsingMockery(t *testing.T) {
	t.Parallel()

	repo := jobrunmock.NewRepository(t)
	repo.
		On("Record", mock.Anything, mock.MatchedBy(func(e jobrun.Run) bool {
			return e.Status == jobrun.StatusStarted
		})).
		Return(nil).
		Once()
	repo.
		On("Record", mock.Anything, mock.MatchedBy(func(e jobrun.Run) bool {
			return e.Status == jobrun.StatusFailed && e.Error == "upstream down"
		})).
		Return(errors.New("db unavailable")).
		Once()

	s, err := NewScheduler([]JobSpec{{
		ID:  JobNews,
		Run: func(context.Context) (int, error) { return 0, errors.New("upstream down") },
	}}, SchedulerConfig{Workers: 1}, repo, logging.NewNop())
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}

	if err := s.Trigger(context.Background(), JobNews); err == nil || err.Error() != "upstream down" {
		t.Fatalf("expected the job error, got %v", err)
	}
	status := s.Status()
	if len(status.Jobs) != 1 || status.Jobs[0].LastError != "upstream down" {
		t.Fatalf("unexpected status: %+v", status)
	}
}
