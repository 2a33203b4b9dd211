package player

import (
	"context"

	"github.com/riskibarqy/football-hub/internal/domain/reconcile"
)

type Filter struct {
	Competition string
	Season      string
	Position    Position
	ClubID      int64
	Page        int
	PerPage     int
}

type Repository interface {
	UpsertPlayers(ctx context.Context, items []Player) (reconcile.BatchResult, error)
	GetByID(ctx context.Context, id int64) (Player, bool, error)
	List(ctx context.Context, filter Filter) ([]Player, int, error)
	Search(ctx context.Context, query, competition string, limit int) ([]Player, error)
	IDsBySourceID(ctx context.Context, competition, season string) (map[string]int64, error)
	BackfillClubRefs(ctx context.Context, competition, season string, ids map[string]int64) (int, error)
}
