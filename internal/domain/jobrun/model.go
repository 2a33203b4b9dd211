package jobrun

import "time"

type Status string

const (
	StatusStarted   Status = "started"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

func (s Status) Finished() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Run is one state change of a scheduled or manual job execution. A run is
// recorded as started, then as completed or failed under the same RunID.
type Run struct {
	RunID       string
	Job         string
	Trigger     string
	Competition string
	Status      Status
	Payload     map[string]any
	Error       string
	OccurredAt  time.Time
	DurationMS  int64
	TraceID     string
	SpanID      string
}
