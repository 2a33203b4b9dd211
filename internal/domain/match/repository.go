package match

import (
	"context"
	"time"

	"github.com/riskibarqy/football-hub/internal/domain/reconcile"
)

type Filter struct {
	Competition string
	Season      string
	Statuses    []Status
	Matchweek   int
	Page        int
	PerPage     int
}

// Round is one distinct (matchweek, round) pair present in the store.
type Round struct {
	Matchweek int
	Round     string
}

type Repository interface {
	// UpsertMatches applies Merge semantics per record, so a stored FINISHED
	// match is never downgraded by a stale poll.
	UpsertMatches(ctx context.Context, items []Match) (reconcile.BatchResult, error)
	GetByID(ctx context.Context, id int64) (Match, bool, error)
	GetBySourceIDs(ctx context.Context, competition string, sourceIDs []string) ([]Match, error)
	List(ctx context.Context, filter Filter) ([]Match, int, error)
	ListLive(ctx context.Context, competition string) ([]Match, error)
	Upcoming(ctx context.Context, competition string, now time.Time, limit int) ([]Match, error)
	Results(ctx context.Context, competition string, matchweek, limit int) ([]Match, error)
	Rounds(ctx context.Context, competition, season string) ([]Round, error)
	ListKnockout(ctx context.Context, competition, season string) ([]Match, error)
	// HasActivity reports a live match, or a scheduled one kicking off in [from, to].
	HasActivity(ctx context.Context, from, to time.Time) (bool, error)
	// ListOverdueLive returns live matches that kicked off at or before kickoffBefore.
	ListOverdueLive(ctx context.Context, kickoffBefore time.Time) ([]Match, error)
	BackfillClubRefs(ctx context.Context, competition, season string, ids map[string]int64) (int, error)
}
