package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/football-hub/internal/domain/player"
	"github.com/riskibarqy/football-hub/internal/domain/reconcile"
)

type PlayerRepository struct {
	faults

	mu     sync.RWMutex
	nextID int64
	byKey  map[player.Key]player.Player
	byID   map[int64]player.Key
}

func NewPlayerRepository() *PlayerRepository {
	return &PlayerRepository{
		byKey: make(map[player.Key]player.Player),
		byID:  make(map[int64]player.Key),
	}
}

func (r *PlayerRepository) UpsertPlayers(_ context.Context, items []player.Player) (reconcile.BatchResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var res reconcile.BatchResult
	for _, item := range items {
		key := item.Key()
		if err := r.check(key.String()); err != nil {
			res.Fail(key.String(), err)
			continue
		}

		existing, ok := r.byKey[key]
		if !ok {
			r.nextID++
			item.ID = r.nextID
			item.UpdatedAt = utcNow()
			r.byKey[key] = item
			r.byID[item.ID] = key
			res.Add(reconcile.Inserted)
			continue
		}
		merged := player.Merge(existing, item)
		if player.SameContent(existing, merged) {
			res.Add(reconcile.Unchanged)
			continue
		}
		merged.UpdatedAt = utcNow()
		r.byKey[key] = merged
		res.Add(reconcile.Updated)
	}
	return res, nil
}

func (r *PlayerRepository) GetByID(_ context.Context, id int64) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key, ok := r.byID[id]
	if !ok {
		return player.Player{}, false, nil
	}
	return r.byKey[key], true, nil
}

func (r *PlayerRepository) List(_ context.Context, filter player.Filter) ([]player.Player, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, 64)
	for key, p := range r.byKey {
		if filter.Competition != "" && key.Competition != filter.Competition {
			continue
		}
		if filter.Season != "" && key.Season != filter.Season {
			continue
		}
		if filter.Position != "" && p.Position != filter.Position {
			continue
		}
		if filter.ClubID > 0 && (p.ClubID == nil || *p.ClubID != filter.ClubID) {
			continue
		}
		out = append(out, p)
	}
	sortPlayers(out)
	return paginate(out, filter.Page, filter.PerPage), len(out), nil
}

func (r *PlayerRepository) Search(_ context.Context, query, competition string, limitN int) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, 8)
	for key, p := range r.byKey {
		if competition != "" && key.Competition != competition {
			continue
		}
		if containsFold(p.Name, query) {
			out = append(out, p)
		}
	}
	sortPlayers(out)
	return limit(out, limitN), nil
}

func (r *PlayerRepository) IDsBySourceID(_ context.Context, competition, season string) (map[string]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]int64)
	for key, p := range r.byKey {
		if key.Competition == competition && key.Season == season {
			out[key.SourceID] = p.ID
		}
	}
	return out, nil
}

func (r *PlayerRepository) BackfillClubRefs(_ context.Context, competition, season string, ids map[string]int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	updated := 0
	for key, p := range r.byKey {
		if key.Competition != competition || key.Season != season {
			continue
		}
		id, ok := ids[p.ClubSourceID]
		if !ok || (p.ClubID != nil && *p.ClubID == id) {
			continue
		}
		p.ClubID = &id
		r.byKey[key] = p
		updated++
	}
	return updated, nil
}

func sortPlayers(items []player.Player) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].ID < items[j].ID
	})
}
