package jobrun

import "context"

// Repository keeps the run history. Record is an upsert keyed by RunID and a
// late started event never reopens a finished run.
type Repository interface {
	Record(ctx context.Context, run Run) error
	Recent(ctx context.Context, job string, limit int) ([]Run, error)
}
