package standing

import (
	"context"

	"github.com/riskibarqy/football-hub/internal/domain/reconcile"
)

type Repository interface {
	// ReplaceStandings upserts rows and marks rows of the same competition
	// season that were not part of the refresh as stale. Nothing is deleted.
	ReplaceStandings(ctx context.Context, competition, season string, rows []Row) (reconcile.BatchResult, error)
	List(ctx context.Context, competition, season, group string) ([]Row, error)
	Groups(ctx context.Context, competition, season string) ([]string, error)
	BackfillClubRefs(ctx context.Context, competition, season string, ids map[string]int64) (int, error)
}
