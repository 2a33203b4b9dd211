package statistic

import (
	"context"

	"github.com/riskibarqy/football-hub/internal/domain/player"
	"github.com/riskibarqy/football-hub/internal/domain/reconcile"
)

type Filter struct {
	Competition string
	Season      string
	Sort        SortField
	Position    player.Position
	Page        int
	PerPage     int
}

type Repository interface {
	UpsertStatistics(ctx context.Context, items []Statistic) (reconcile.BatchResult, error)
	// Top orders by the filter sort field descending, ties broken by player name.
	Top(ctx context.Context, filter Filter) ([]Statistic, int, error)
}
