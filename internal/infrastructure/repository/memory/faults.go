package memory

import (
	"strings"
	"sync"
	"time"
)

// faults lets tests make single records fail so per-record isolation can be
// exercised without a database.
type faults struct {
	mu   sync.Mutex
	keys map[string]error
}

// FailKey makes every write of the record with this natural key fail.
func (f *faults) FailKey(key string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.keys == nil {
		f.keys = make(map[string]error)
	}
	f.keys[key] = err
}

func (f *faults) check(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.keys[key]
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(strings.TrimSpace(needle)))
}

func paginate[T any](items []T, page, perPage int) []T {
	if perPage <= 0 {
		return items
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * perPage
	if start >= len(items) {
		return []T{}
	}
	end := start + perPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func limit[T any](items []T, n int) []T {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}

func utcNow() time.Time {
	return time.Now().UTC()
}
