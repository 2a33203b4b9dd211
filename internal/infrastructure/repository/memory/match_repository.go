package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/football-hub/internal/domain/match"
	"github.com/riskibarqy/football-hub/internal/domain/reconcile"
)

type MatchRepository struct {
	faults

	mu     sync.RWMutex
	nextID int64
	byKey  map[match.Key]match.Match
	byID   map[int64]match.Key
}

func NewMatchRepository() *MatchRepository {
	return &MatchRepository{
		byKey: make(map[match.Key]match.Match),
		byID:  make(map[int64]match.Key),
	}
}

func (r *MatchRepository) UpsertMatches(_ context.Context, items []match.Match) (reconcile.BatchResult, error) {
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
		merged := match.Merge(existing, item)
		if match.SameContent(existing, merged) {
			res.Add(reconcile.Unchanged)
			continue
		}
		merged.UpdatedAt = utcNow()
		r.byKey[key] = merged
		res.Add(reconcile.Updated)
	}
	return res, nil
}

func (r *MatchRepository) GetByID(_ context.Context, id int64) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key, ok := r.byID[id]
	if !ok {
		return match.Match{}, false, nil
	}
	return r.byKey[key], true, nil
}

func (r *MatchRepository) GetBySourceIDs(_ context.Context, competition string, sourceIDs []string) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0, len(sourceIDs))
	for _, id := range sourceIDs {
		if m, ok := r.byKey[match.Key{SourceID: id, Competition: competition}]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *MatchRepository) List(_ context.Context, filter match.Filter) ([]match.Match, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := r.collect(func(m match.Match) bool {
		if filter.Competition != "" && m.Competition != filter.Competition {
			return false
		}
		if filter.Season != "" && m.Season != filter.Season {
			return false
		}
		if filter.Matchweek > 0 && m.Matchweek != filter.Matchweek {
			return false
		}
		return len(filter.Statuses) == 0 || hasStatus(filter.Statuses, m.Status)
	})
	sortByKickoff(out, false)
	return paginate(out, filter.Page, filter.PerPage), len(out), nil
}

func (r *MatchRepository) ListLive(_ context.Context, competition string) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := r.collect(func(m match.Match) bool {
		return (competition == "" || m.Competition == competition) && m.Status.IsLive()
	})
	sortByKickoff(out, false)
	return out, nil
}

func (r *MatchRepository) Upcoming(_ context.Context, competition string, now time.Time, limitN int) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := r.collect(func(m match.Match) bool {
		return m.Competition == competition && m.Status == match.StatusScheduled && !m.KickoffAt.Before(now)
	})
	sortByKickoff(out, false)
	return limit(out, limitN), nil
}

func (r *MatchRepository) Results(_ context.Context, competition string, matchweek, limitN int) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := r.collect(func(m match.Match) bool {
		return m.Competition == competition && m.Status.IsFinished() && (matchweek <= 0 || m.Matchweek == matchweek)
	})
	sortByKickoff(out, true)
	return limit(out, limitN), nil
}

func (r *MatchRepository) Rounds(_ context.Context, competition, season string) ([]match.Round, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set := make(map[match.Round]struct{})
	for _, m := range r.byKey {
		if m.Competition == competition && (season == "" || m.Season == season) && m.Matchweek > 0 {
			set[match.Round{Matchweek: m.Matchweek, Round: m.Round}] = struct{}{}
		}
	}
	out := make([]match.Round, 0, len(set))
	for rd := range set {
		out = append(out, rd)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Matchweek != out[j].Matchweek {
			return out[i].Matchweek < out[j].Matchweek
		}
		return out[i].Round < out[j].Round
	})
	return out, nil
}

func (r *MatchRepository) ListKnockout(_ context.Context, competition, season string) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := r.collect(func(m match.Match) bool {
		return m.Competition == competition && (season == "" || m.Season == season) && m.IsKnockout
	})
	sortByKickoff(out, false)
	return out, nil
}

func (r *MatchRepository) HasActivity(_ context.Context, from, to time.Time) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.byKey {
		if m.Status.IsLive() {
			return true, nil
		}
		if m.Status == match.StatusScheduled && !m.KickoffAt.Before(from) && !m.KickoffAt.After(to) {
			return true, nil
		}
	}
	return false, nil
}

func (r *MatchRepository) ListOverdueLive(_ context.Context, kickoffBefore time.Time) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := r.collect(func(m match.Match) bool {
		return m.Status.IsLive() && !m.KickoffAt.After(kickoffBefore)
	})
	sortByKickoff(out, false)
	return out, nil
}

func (r *MatchRepository) BackfillClubRefs(_ context.Context, competition, season string, ids map[string]int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	updated := 0
	for key, m := range r.byKey {
		if m.Competition != competition || m.Season != season {
			continue
		}
		changed := false
		if id, ok := ids[m.HomeSourceID]; ok && (m.HomeClubID == nil || *m.HomeClubID != id) {
			m.HomeClubID = &id
			changed = true
		}
		if id, ok := ids[m.AwaySourceID]; ok && (m.AwayClubID == nil || *m.AwayClubID != id) {
			m.AwayClubID = &id
			changed = true
		}
		if changed {
			r.byKey[key] = m
			updated++
		}
	}
	return updated, nil
}

func (r *MatchRepository) collect(keep func(match.Match) bool) []match.Match {
	out := make([]match.Match, 0, 32)
	for _, m := range r.byKey {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out
}

func hasStatus(statuses []match.Status, s match.Status) bool {
	for _, item := range statuses {
		if item == s {
			return true
		}
	}
	return false
}

func sortByKickoff(items []match.Match, desc bool) {
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if !a.KickoffAt.Equal(b.KickoffAt) {
			if desc {
				return a.KickoffAt.After(b.KickoffAt)
			}
			return a.KickoffAt.Before(b.KickoffAt)
		}
		return a.ID < b.ID
	})
}
