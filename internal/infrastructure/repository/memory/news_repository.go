package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/football-hub/internal/domain/news"
	"github.com/riskibarqy/football-hub/internal/domain/reconcile"
)

type NewsRepository struct {
	faults

	mu       sync.RWMutex
	nextID   int64
	bySource map[string]news.Item
	byID     map[int64]string
}

func NewNewsRepository() *NewsRepository {
	return &NewsRepository{
		bySource: make(map[string]news.Item),
		byID:     make(map[int64]string),
	}
}

func (r *NewsRepository) InsertNews(_ context.Context, items []news.Item) (reconcile.BatchResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var res reconcile.BatchResult
	for _, item := range items {
		if err := r.check(item.SourceID); err != nil {
			res.Fail(item.SourceID, err)
			continue
		}
		if _, ok := r.bySource[item.SourceID]; ok {
			res.Add(reconcile.Unchanged)
			continue
		}
		r.nextID++
		item.ID = r.nextID
		item.Tags = append([]string(nil), item.Tags...)
		item.CreatedAt = utcNow()
		r.bySource[item.SourceID] = item
		r.byID[item.ID] = item.SourceID
		res.Add(reconcile.Inserted)
	}
	return res, nil
}

func (r *NewsRepository) GetByID(_ context.Context, id int64) (news.Item, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sourceID, ok := r.byID[id]
	if !ok {
		return news.Item{}, false, nil
	}
	return r.bySource[sourceID], true, nil
}

func (r *NewsRepository) List(_ context.Context, filter news.Filter) ([]news.Item, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := r.collect(filter.Competition, func(item news.Item) bool {
		if filter.Category != "" && item.Category != filter.Category {
			return false
		}
		return filter.Query == "" || containsFold(item.Title, filter.Query) || containsFold(item.Excerpt, filter.Query)
	})
	return paginate(out, filter.Page, filter.PerPage), len(out), nil
}

func (r *NewsRepository) Latest(_ context.Context, competition string, limitN int) ([]news.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return limit(r.collect(competition, nil), limitN), nil
}

func (r *NewsRepository) Search(_ context.Context, query, competition string, limitN int) ([]news.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := r.collect(competition, func(item news.Item) bool {
		return containsFold(item.Title, query) || containsFold(item.Excerpt, query)
	})
	return limit(out, limitN), nil
}

// collect returns matching items newest first.
func (r *NewsRepository) collect(competition string, keep func(news.Item) bool) []news.Item {
	out := make([]news.Item, 0, 32)
	for _, item := range r.bySource {
		if competition != "" && item.Competition != competition {
			continue
		}
		if keep == nil || keep(item) {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PublishedAt.Equal(out[j].PublishedAt) {
			return out[i].PublishedAt.After(out[j].PublishedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}
