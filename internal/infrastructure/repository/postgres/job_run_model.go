package postgres

import (
	"database/sql"
	"time"
)

type jobRunInsertModel struct {
	RunID            string     `db:"run_id"`
	Job              string     `db:"job_name"`
	Trigger          string     `db:"trigger"`
	Competition      string     `db:"competition"`
	Payload          string     `db:"payload"`
	Status           string     `db:"status"`
	DurationMS       int64      `db:"duration_ms"`
	StartedAt        *time.Time `db:"started_at"`
	CompletedAt      *time.Time `db:"completed_at"`
	FailedAt         *time.Time `db:"failed_at"`
	LastError        *string    `db:"last_error"`
	StartedTraceID   *string    `db:"started_trace_id"`
	StartedSpanID    *string    `db:"started_span_id"`
	CompletedTraceID *string    `db:"completed_trace_id"`
	CompletedSpanID  *string    `db:"completed_span_id"`
	FailedTraceID    *string    `db:"failed_trace_id"`
	FailedSpanID     *string    `db:"failed_span_id"`
}

type jobRunTableModel struct {
	RunID       string         `db:"run_id"`
	Job         string         `db:"job_name"`
	Trigger     string         `db:"trigger"`
	Competition string         `db:"competition"`
	Payload     string         `db:"payload"`
	Status      string         `db:"status"`
	DurationMS  int64          `db:"duration_ms"`
	LastError   sql.NullString `db:"last_error"`
	OccurredAt  time.Time      `db:"occurred_at"`
	TraceID     sql.NullString `db:"trace_id"`
	SpanID      sql.NullString `db:"span_id"`
}
