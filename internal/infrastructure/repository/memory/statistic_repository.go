package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/football-hub/internal/domain/reconcile"
	"github.com/riskibarqy/football-hub/internal/domain/statistic"
)

type StatisticRepository struct {
	faults

	mu     sync.RWMutex
	nextID int64
	byKey  map[statistic.Key]statistic.Statistic
}

func NewStatisticRepository() *StatisticRepository {
	return &StatisticRepository{byKey: make(map[statistic.Key]statistic.Statistic)}
}

func (r *StatisticRepository) UpsertStatistics(_ context.Context, items []statistic.Statistic) (reconcile.BatchResult, error) {
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
			res.Add(reconcile.Inserted)
			continue
		}
		merged := statistic.Merge(existing, item)
		if statistic.SameContent(existing, merged) {
			res.Add(reconcile.Unchanged)
			continue
		}
		merged.UpdatedAt = utcNow()
		r.byKey[key] = merged
		res.Add(reconcile.Updated)
	}
	return res, nil
}

func (r *StatisticRepository) Top(_ context.Context, filter statistic.Filter) ([]statistic.Statistic, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]statistic.Statistic, 0, 64)
	for key, s := range r.byKey {
		if filter.Competition != "" && key.Competition != filter.Competition {
			continue
		}
		if filter.Season != "" && key.Season != filter.Season {
			continue
		}
		if filter.Position != "" && s.Position != filter.Position {
			continue
		}
		out = append(out, s)
	}

	sortField, _ := statistic.ParseSort(string(filter.Sort))
	sort.Slice(out, func(i, j int) bool {
		a, b := sortValue(out[i], sortField), sortValue(out[j], sortField)
		if a != b {
			return a > b
		}
		return out[i].PlayerName < out[j].PlayerName
	})
	return paginate(out, filter.Page, filter.PerPage), len(out), nil
}

func sortValue(s statistic.Statistic, field statistic.SortField) float64 {
	switch field {
	case statistic.SortAssists:
		return float64(s.Assists)
	case statistic.SortAppearances:
		return float64(s.Appearances)
	case statistic.SortMinutes:
		return float64(s.Minutes)
	case statistic.SortCleanSheets:
		return optional(s.CleanSheets)
	case statistic.SortSaves:
		return optional(s.Saves)
	case statistic.SortYellowCards:
		return float64(s.YellowCards)
	case statistic.SortRedCards:
		return float64(s.RedCards)
	case statistic.SortExpectedGoals:
		return s.ExpectedGoals
	case statistic.SortRating:
		return s.Rating
	default:
		return float64(s.Goals)
	}
}

func optional(v *int) float64 {
	if v == nil {
		return -1
	}
	return float64(*v)
}
