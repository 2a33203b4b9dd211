package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/football-hub/internal/domain/club"
	"github.com/riskibarqy/football-hub/internal/domain/reconcile"
)

type ClubRepository struct {
	faults

	mu     sync.RWMutex
	nextID int64
	byKey  map[club.Key]club.Club
	byID   map[int64]club.Key
}

func NewClubRepository() *ClubRepository {
	return &ClubRepository{
		byKey: make(map[club.Key]club.Club),
		byID:  make(map[int64]club.Key),
	}
}

func (r *ClubRepository) UpsertClubs(_ context.Context, items []club.Club) (reconcile.BatchResult, error) {
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
			item.CreatedAt = utcNow()
			item.UpdatedAt = item.CreatedAt
			r.byKey[key] = item
			r.byID[item.ID] = key
			res.Add(reconcile.Inserted)
			continue
		}

		merged := club.Merge(existing, item)
		if club.SameContent(existing, merged) {
			res.Add(reconcile.Unchanged)
			continue
		}
		merged.UpdatedAt = utcNow()
		r.byKey[key] = merged
		res.Add(reconcile.Updated)
	}
	return res, nil
}

func (r *ClubRepository) GetByID(_ context.Context, id int64) (club.Club, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key, ok := r.byID[id]
	if !ok {
		return club.Club{}, false, nil
	}
	return r.byKey[key], true, nil
}

func (r *ClubRepository) GetBySourceID(_ context.Context, competition, season, sourceID string) (club.Club, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byKey[club.Key{SourceID: sourceID, Competition: competition, Season: season}]
	return item, ok, nil
}

func (r *ClubRepository) ListByCompetition(_ context.Context, competition, season string) ([]club.Club, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]club.Club, 0, 40)
	for key, item := range r.byKey {
		if key.Competition == competition && (season == "" || key.Season == season) {
			out = append(out, item)
		}
	}
	sortClubs(out)
	return out, nil
}

func (r *ClubRepository) Search(_ context.Context, query, competition string, limitN int) ([]club.Club, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]club.Club, 0, 8)
	for key, item := range r.byKey {
		if competition != "" && key.Competition != competition {
			continue
		}
		if containsFold(item.Name, query) || containsFold(item.ShortName, query) {
			out = append(out, item)
		}
	}
	sortClubs(out)
	return limit(out, limitN), nil
}

func (r *ClubRepository) IDsBySourceID(_ context.Context, competition, season string) (map[string]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]int64)
	for key, item := range r.byKey {
		if key.Competition == competition && key.Season == season {
			out[key.SourceID] = item.ID
		}
	}
	return out, nil
}

func sortClubs(items []club.Club) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].ID < items[j].ID
	})
}
