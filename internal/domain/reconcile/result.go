package reconcile

import (
	"errors"
	"fmt"
)

// Outcome of persisting one canonical record.
type Outcome int

const (
	Inserted Outcome = iota + 1
	Updated
	Unchanged
	Skipped
)

func (o Outcome) String() string {
	switch o {
	case Inserted:
		return "inserted"
	case Updated:
		return "updated"
	case Unchanged:
		return "unchanged"
	case Skipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// BatchResult counts what happened to each record of one batch. Failed
// records are counted as skipped and their error kept.
type BatchResult struct {
	Inserted  int
	Updated   int
	Unchanged int
	Skipped   int
	Errors    []error
}

func (r *BatchResult) Add(outcome Outcome) {
	switch outcome {
	case Inserted:
		r.Inserted++
	case Updated:
		r.Updated++
	case Unchanged:
		r.Unchanged++
	default:
		r.Skipped++
	}
}

func (r *BatchResult) Fail(key string, err error) {
	r.Skipped++
	r.Errors = append(r.Errors, fmt.Errorf("record %s: %w", key, err))
}

func (r *BatchResult) Merge(other BatchResult) {
	r.Inserted += other.Inserted
	r.Updated += other.Updated
	r.Unchanged += other.Unchanged
	r.Skipped += other.Skipped
	r.Errors = append(r.Errors, other.Errors...)
}

func (r BatchResult) Written() int {
	return r.Inserted + r.Updated + r.Unchanged
}

func (r BatchResult) Err() error {
	return errors.Join(r.Errors...)
}
