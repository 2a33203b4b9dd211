package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/football-hub/internal/domain/competition"
	"github.com/riskibarqy/football-hub/internal/domain/match"
	matchmock "github.com/riskibarqy/football-hub/internal/mocks/domain/match"
	"github.com/riskibarqy/football-hub/internal/platform/logging"
)

func TestCrawlService_RunEndDetectorUsesAllowanceUsingMockery(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 12, 20, 17, 0, 0, 0, time.UTC)
	matchRepo := matchmock.NewRepository(t)
	matchRepo.
		On("ListOverdueLive", mock.Anything, now.Add(-95*time.Minute)).
		Return([]match.Match(nil), nil).
		Once()

	src := &fakeSource{}
	svc := NewCrawlService(
		[]competition.Competition{mustCompetition(t, "PL")},
		src,
		nil,
		newTestReconciler(newMemoryStore()),
		matchRepo,
		CrawlConfig{},
		logging.NewNop(),
	)
	svc.now = func() time.Time { return now }

	finished, err := svc.RunEndDetector(context.Background())
	if err != nil {
		t.Fatalf("run end detector: %v", err)
	}
	if finished != 0 {
		t.Fatalf("expected no finished matches, got %d", finished)
	}
	if src.count("details") != 0 {
		t.Fatalf("no overdue match should mean no detail fetch")
	}
}

func TestCrawlService_RunEndDetectorRepositoryErrorUsingMockery(t *testing.T) {
	t.Parallel()

	matchRepo := matchmock.NewRepository(t)
	matchRepo.
		On("ListOverdueLive", mock.Anything, mock.AnythingOfType("time.Time")).
		Return(nil, errors.New("connection reset")).
		Once()

	svc := NewCrawlService(
		[]competition.Competition{mustCompetition(t, "PL")},
		&fakeSource{},
		nil,
		newTestReconciler(newMemoryStore()),
		matchRepo,
		CrawlConfig{},
		logging.NewNop(),
	)

	if _, err := svc.RunEndDetector(context.Background()); err == nil {
		t.Fatalf("expected repository error to surface")
	}
}
