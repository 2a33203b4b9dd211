package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/football-hub/internal/domain/reconcile"
	"github.com/riskibarqy/football-hub/internal/domain/standing"
)

type StandingRepository struct {
	faults

	mu     sync.RWMutex
	nextID int64
	rows   map[standing.Key]standing.Row
}

func NewStandingRepository() *StandingRepository {
	return &StandingRepository{rows: make(map[standing.Key]standing.Row)}
}

func (r *StandingRepository) ReplaceStandings(_ context.Context, competition, season string, rows []standing.Row) (reconcile.BatchResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var res reconcile.BatchResult
	seen := make(map[standing.Key]struct{}, len(rows))
	for _, row := range rows {
		key := row.Key()
		seen[key] = struct{}{}
		if err := r.check(key.String()); err != nil {
			res.Fail(key.String(), err)
			continue
		}

		existing, ok := r.rows[key]
		if !ok {
			r.nextID++
			row.ID = r.nextID
			row.Stale = false
			row.UpdatedAt = utcNow()
			r.rows[key] = row
			res.Add(reconcile.Inserted)
			continue
		}
		merged := standing.Merge(existing, row)
		if standing.SameContent(existing, merged) {
			res.Add(reconcile.Unchanged)
			continue
		}
		merged.UpdatedAt = utcNow()
		r.rows[key] = merged
		res.Add(reconcile.Updated)
	}

	for key, row := range r.rows {
		if key.Competition != competition || key.Season != season || row.Stale {
			continue
		}
		if _, ok := seen[key]; !ok {
			row.Stale = true
			r.rows[key] = row
		}
	}
	return res, nil
}

func (r *StandingRepository) List(_ context.Context, competition, season, group string) ([]standing.Row, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]standing.Row, 0, 36)
	for key, row := range r.rows {
		if key.Competition != competition || key.Season != season || row.Stale {
			continue
		}
		if group != "" && key.Group != group {
			continue
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Group != out[j].Group {
			return out[i].Group < out[j].Group
		}
		return out[i].Position < out[j].Position
	})
	return out, nil
}

func (r *StandingRepository) Groups(_ context.Context, competition, season string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set := make(map[string]struct{})
	for key, row := range r.rows {
		if key.Competition == competition && key.Season == season && !row.Stale {
			set[key.Group] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for g := range set {
		out = append(out, g)
	}
	sort.Strings(out)
	return out, nil
}

func (r *StandingRepository) BackfillClubRefs(_ context.Context, competition, season string, ids map[string]int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	updated := 0
	for key, row := range r.rows {
		if key.Competition != competition || key.Season != season {
			continue
		}
		id, ok := ids[key.ClubSourceID]
		if !ok || (row.ClubID != nil && *row.ClubID == id) {
			continue
		}
		row.ClubID = &id
		r.rows[key] = row
		updated++
	}
	return updated, nil
}
