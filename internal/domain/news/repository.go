package news

import (
	"context"

	"github.com/riskibarqy/football-hub/internal/domain/reconcile"
)

type Repository interface {
	// InsertNews stores items whose SourceID is new; known ids count as unchanged.
	InsertNews(ctx context.Context, items []Item) (reconcile.BatchResult, error)
	GetByID(ctx context.Context, id int64) (Item, bool, error)
	List(ctx context.Context, filter Filter) ([]Item, int, error)
	Latest(ctx context.Context, competition string, limit int) ([]Item, error)
	Search(ctx context.Context, query, competition string, limit int) ([]Item, error)
}
