package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/football-hub/internal/domain/club"
	"github.com/riskibarqy/football-hub/internal/domain/competition"
	"github.com/riskibarqy/football-hub/internal/domain/match"
	"github.com/riskibarqy/football-hub/internal/domain/news"
	"github.com/riskibarqy/football-hub/internal/domain/standing"
	"github.com/riskibarqy/football-hub/internal/platform/logging"
)

type fakeSource struct {
	mu        sync.Mutex
	calls     map[string]int
	clubs     []club.Club
	standings []standing.Row
	matches   []match.Match
	details   []match.Match
	players   []PlayerRecord
	news      []news.Item
	detailIDs []string
}

func (f *fakeSource) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[name]++
}

func (f *fakeSource) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeSource) FetchClubs(_ context.Context, _ competition.Competition) ([]club.Club, error) {
	f.record("clubs")
	return f.clubs, nil
}

func (f *fakeSource) FetchStandings(_ context.Context, _ competition.Competition) ([]standing.Row, error) {
	f.record("standings")
	return f.standings, nil
}

func (f *fakeSource) FetchMatches(_ context.Context, _ competition.Competition) ([]match.Match, error) {
	f.record("matches")
	return f.matches, nil
}

func (f *fakeSource) FetchMatchDetails(_ context.Context, _ competition.Competition, ids []string) ([]match.Match, error) {
	f.record("details")
	f.mu.Lock()
	f.detailIDs = append(f.detailIDs, ids...)
	f.mu.Unlock()
	return f.details, nil
}

func (f *fakeSource) FetchPlayers(_ context.Context, _ competition.Competition) ([]PlayerRecord, error) {
	f.record("players")
	return f.players, nil
}

func (f *fakeSource) FetchNews(_ context.Context, _ competition.Competition) ([]news.Item, error) {
	f.record("news")
	return f.news, nil
}

func newTestCrawler(t *testing.T, store memoryStore, src *fakeSource, now time.Time) *CrawlService {
	t.Helper()
	svc := NewCrawlService(
		[]competition.Competition{mustCompetition(t, "PL")},
		src,
		[]NewsSource{src},
		newTestReconciler(store),
		store.matches,
		CrawlConfig{},
		logging.NewNop(),
	)
	svc.now = func() time.Time { return now }
	return svc
}

func TestCrawlService_RunLiveSkipsWhenIdle(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	src := &fakeSource{}
	svc := newTestCrawler(t, store, src, time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC))

	if err := svc.RunLive(context.Background()); err != nil {
		t.Fatalf("run live: %v", err)
	}
	if got := src.count("matches"); got != 0 {
		t.Fatalf("expected no upstream call while idle, got %d", got)
	}
}

func TestCrawlService_RunLiveUpsertsOnlyActiveMatches(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2026, 1, 10, 15, 30, 0, 0, time.UTC)
	store := newMemoryStore()
	seed := newTestReconciler(store)
	pl := mustCompetition(t, "PL")
	if _, err := seed.ReconcileMatches(ctx, pl, []match.Match{
		{SourceID: "live-1", HomeTeamName: "Arsenal", AwayTeamName: "Chelsea", Status: match.StatusLive, KickoffAt: now.Add(-30 * time.Minute)},
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	src := &fakeSource{matches: []match.Match{
		{SourceID: "live-1", HomeTeamName: "Arsenal", AwayTeamName: "Chelsea", Status: match.StatusLive, Minute: 31, HomeScore: match.IntPtr(1), AwayScore: match.IntPtr(0), KickoffAt: now.Add(-30 * time.Minute)},
		{SourceID: "later", HomeTeamName: "Everton", AwayTeamName: "Fulham", Status: match.StatusScheduled, KickoffAt: now.Add(72 * time.Hour)},
	}}
	svc := newTestCrawler(t, store, src, now)

	if err := svc.RunLive(ctx); err != nil {
		t.Fatalf("run live: %v", err)
	}

	got, err := store.matches.GetBySourceIDs(ctx, "PL", []string{"live-1", "later"})
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if len(got) != 1 || got[0].Minute != 31 || got[0].HomeScore == nil || *got[0].HomeScore != 1 {
		t.Fatalf("unexpected stored matches: %+v", got)
	}
}

func TestCrawlService_RunEndDetectorCountsFinished(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2026, 1, 10, 18, 0, 0, 0, time.UTC)
	store := newMemoryStore()
	seed := newTestReconciler(store)
	pl := mustCompetition(t, "PL")
	if _, err := seed.ReconcileMatches(ctx, pl, []match.Match{
		{SourceID: "overdue", HomeTeamName: "Arsenal", AwayTeamName: "Chelsea", Status: match.StatusLive, KickoffAt: now.Add(-2 * time.Hour)},
		{SourceID: "running", HomeTeamName: "Everton", AwayTeamName: "Fulham", Status: match.StatusLive, KickoffAt: now.Add(-20 * time.Minute)},
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	src := &fakeSource{details: []match.Match{
		{SourceID: "overdue", HomeTeamName: "Arsenal", AwayTeamName: "Chelsea", Status: match.StatusFinished, HomeScore: match.IntPtr(2), AwayScore: match.IntPtr(2)},
	}}
	svc := newTestCrawler(t, store, src, now)

	finished, err := svc.RunEndDetector(ctx)
	if err != nil {
		t.Fatalf("run end detector: %v", err)
	}
	if finished != 1 {
		t.Fatalf("expected 1 finished match, got %d", finished)
	}
	if len(src.detailIDs) != 1 || src.detailIDs[0] != "overdue" {
		t.Fatalf("unexpected detail ids: %v", src.detailIDs)
	}

	got, _ := store.matches.GetBySourceIDs(ctx, "PL", []string{"overdue"})
	if len(got) != 1 || got[0].Status != match.StatusFinished {
		t.Fatalf("overdue match not finished: %+v", got)
	}
}

func TestCrawlService_RunFixturesCreatesClubs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newMemoryStore()
	src := &fakeSource{matches: []match.Match{
		{SourceID: "1", HomeSourceID: "9825", AwaySourceID: "8455", HomeTeamName: "Arsenal", AwayTeamName: "Chelsea", Status: match.StatusScheduled},
	}}
	svc := newTestCrawler(t, store, src, time.Now())

	if err := svc.RunFixtures(ctx); err != nil {
		t.Fatalf("run fixtures: %v", err)
	}

	clubs, err := store.clubs.ListByCompetition(ctx, "PL", "2025")
	if err != nil || len(clubs) != 2 {
		t.Fatalf("expected two clubs, got %d (%v)", len(clubs), err)
	}
	got, _ := store.matches.GetBySourceIDs(ctx, "PL", []string{"1"})
	if len(got) != 1 || got[0].HomeClubID == nil || got[0].AwayClubID == nil {
		t.Fatalf("fixture not linked to clubs: %+v", got)
	}
}

func TestCrawlService_RunAll(t *testing.T) {
	t.Parallel()

	t.Run("unknown job", func(t *testing.T) {
		t.Parallel()
		svc := newTestCrawler(t, newMemoryStore(), &fakeSource{}, time.Now())
		if err := svc.RunAll(context.Background(), []string{"transfers"}); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("subset by alias", func(t *testing.T) {
		t.Parallel()
		src := &fakeSource{}
		svc := newTestCrawler(t, newMemoryStore(), src, time.Now())
		if err := svc.RunAll(context.Background(), []string{"news", "standings"}); err != nil {
			t.Fatalf("run all: %v", err)
		}
		if src.count("news") != 1 || src.count("standings") != 1 || src.count("clubs") != 0 {
			t.Fatalf("unexpected calls: %v", src.calls)
		}
	})
}

func TestResolveJobName(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"live":               JobLiveMatches,
		"end-detector":       JobMatchEndDetector,
		"MATCH_END_DETECTOR": JobMatchEndDetector,
		" players ":          JobPlayers,
	}
	for raw, want := range cases {
		got, ok := ResolveJobName(raw)
		if !ok || got != want {
			t.Fatalf("ResolveJobName(%q) = %q, %v; want %q", raw, got, ok, want)
		}
	}
	if _, ok := ResolveJobName("transfers"); ok {
		t.Fatalf("expected unknown job to be rejected")
	}
}
