package club

import (
	"context"

	"github.com/riskibarqy/football-hub/internal/domain/reconcile"
)

type Repository interface {
	UpsertClubs(ctx context.Context, items []Club) (reconcile.BatchResult, error)
	GetByID(ctx context.Context, id int64) (Club, bool, error)
	GetBySourceID(ctx context.Context, competition, season, sourceID string) (Club, bool, error)
	ListByCompetition(ctx context.Context, competition, season string) ([]Club, error)
	Search(ctx context.Context, query, competition string, limit int) ([]Club, error)
	// IDsBySourceID maps source ids to stored ids within one competition season.
	IDsBySourceID(ctx context.Context, competition, season string) (map[string]int64, error)
}
