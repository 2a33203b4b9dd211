package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/riskibarqy/football-hub/internal/domain/jobrun"
)

// JobRunRepository keeps the latest state of each run.
type JobRunRepository struct {
	mu   sync.RWMutex
	runs map[string]jobrun.Run
}

func NewJobRunRepository() *JobRunRepository {
	return &JobRunRepository{runs: make(map[string]jobrun.Run)}
}

func (r *JobRunRepository) Record(_ context.Context, event jobrun.Run) error {
	id := strings.TrimSpace(event.RunID)
	if id == "" {
		return fmt.Errorf("run id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	prev, ok := r.runs[id]
	if ok && prev.Status != jobrun.StatusStarted && event.Status == jobrun.StatusStarted {
		return nil
	}
	if ok && event.Payload == nil {
		event.Payload = prev.Payload
	}
	r.runs[id] = event
	return nil
}

func (r *JobRunRepository) Recent(_ context.Context, jobName string, limitN int) ([]jobrun.Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]jobrun.Run, 0, len(r.runs))
	for _, ev := range r.runs {
		if jobName == "" || ev.Job == jobName {
			out = append(out, ev)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].OccurredAt.After(out[j].OccurredAt)
	})
	return limit(out, limitN), nil
}
