package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/football-hub/internal/domain/jobrun"
	qb "github.com/riskibarqy/football-hub/internal/platform/querybuilder"
)

type JobRunRepository struct {
	db *sqlx.DB
}

func NewJobRunRepository(db *sqlx.DB) *JobRunRepository {
	return &JobRunRepository{db: db}
}

func (r *JobRunRepository) Record(ctx context.Context, event jobrun.Run) error {
	runID := strings.TrimSpace(event.RunID)
	if runID == "" {
		return fmt.Errorf("run id is required")
	}

	jobName := strings.TrimSpace(event.Job)
	if jobName == "" {
		jobName = "unknown"
	}
	trigger := strings.TrimSpace(event.Trigger)
	if trigger == "" {
		trigger = "schedule"
	}

	occurredAt := event.OccurredAt.UTC()
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	payloadJSON, err := marshalPayload(event.Payload)
	if err != nil {
		return fmt.Errorf("marshal job run payload: %w", err)
	}

	model := jobRunInsertModel{
		RunID:       runID,
		Job:         jobName,
		Trigger:     trigger,
		Competition: strings.TrimSpace(event.Competition),
		Payload:     payloadJSON,
		Status:      string(event.Status),
		DurationMS:  event.DurationMS,
		LastError:   optionalString(event.Error),
	}

	switch event.Status {
	case jobrun.StatusStarted:
		model.StartedAt = &occurredAt
		model.StartedTraceID = optionalString(event.TraceID)
		model.StartedSpanID = optionalString(event.SpanID)
		model.LastError = nil
	case jobrun.StatusCompleted:
		model.CompletedAt = &occurredAt
		model.CompletedTraceID = optionalString(event.TraceID)
		model.CompletedSpanID = optionalString(event.SpanID)
		model.LastError = nil
	case jobrun.StatusFailed:
		model.FailedAt = &occurredAt
		model.FailedTraceID = optionalString(event.TraceID)
		model.FailedSpanID = optionalString(event.SpanID)
	default:
		return fmt.Errorf("unknown job run status %q", event.Status)
	}

	// A late started event never reopens a finished run.
	query, args, err := qb.InsertModel("job_runs", model, `ON CONFLICT (run_id)
DO UPDATE SET
    job_name = EXCLUDED.job_name,
    trigger = EXCLUDED.trigger,
    competition = EXCLUDED.competition,
    payload = CASE
        WHEN EXCLUDED.payload = '{}' THEN job_runs.payload
        ELSE EXCLUDED.payload
    END,
    status = EXCLUDED.status,
    duration_ms = GREATEST(job_runs.duration_ms, EXCLUDED.duration_ms),
    started_at = COALESCE(job_runs.started_at, EXCLUDED.started_at),
    completed_at = CASE
        WHEN EXCLUDED.status = 'completed' THEN EXCLUDED.completed_at
        ELSE job_runs.completed_at
    END,
    failed_at = CASE
        WHEN EXCLUDED.status = 'failed' THEN EXCLUDED.failed_at
        WHEN EXCLUDED.status = 'completed' THEN NULL
        ELSE job_runs.failed_at
    END,
    last_error = CASE
        WHEN EXCLUDED.status = 'failed' THEN EXCLUDED.last_error
        ELSE NULL
    END,
    started_trace_id = COALESCE(job_runs.started_trace_id, EXCLUDED.started_trace_id),
    started_span_id = COALESCE(job_runs.started_span_id, EXCLUDED.started_span_id),
    completed_trace_id = CASE
        WHEN EXCLUDED.status = 'completed' THEN EXCLUDED.completed_trace_id
        ELSE job_runs.completed_trace_id
    END,
    completed_span_id = CASE
        WHEN EXCLUDED.status = 'completed' THEN EXCLUDED.completed_span_id
        ELSE job_runs.completed_span_id
    END,
    failed_trace_id = CASE
        WHEN EXCLUDED.status = 'failed' THEN EXCLUDED.failed_trace_id
        ELSE job_runs.failed_trace_id
    END,
    failed_span_id = CASE
        WHEN EXCLUDED.status = 'failed' THEN EXCLUDED.failed_span_id
        ELSE job_runs.failed_span_id
    END,
    updated_at = NOW()
WHERE job_runs.status = 'started' OR EXCLUDED.status <> 'started'`)
	if err != nil {
		return fmt.Errorf("build upsert job run query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert job run run_id=%s status=%s: %w", runID, event.Status, err)
	}
	return nil
}

func (r *JobRunRepository) Recent(ctx context.Context, jobName string, limit int) ([]jobrun.Run, error) {
	b := qb.Select(
		"run_id", "job_name", "trigger", "competition", "payload", "status", "duration_ms", "last_error",
		"COALESCE(completed_at, failed_at, started_at) AS occurred_at",
		"COALESCE(completed_trace_id, failed_trace_id, started_trace_id) AS trace_id",
		"COALESCE(completed_span_id, failed_span_id, started_span_id) AS span_id",
	).From("job_runs")
	if jobName != "" {
		b.Where(qb.Eq("job_name", jobName))
	}
	query, args, err := b.OrderBy("occurred_at DESC", "run_id").Limit(perPageOrDefault(limit, 20)).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list job runs query: %w", err)
	}

	var rows []jobRunTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select job runs: %w", err)
	}

	out := make([]jobrun.Run, 0, len(rows))
	for _, row := range rows {
		payload, err := unmarshalPayload(row.Payload)
		if err != nil {
			return nil, fmt.Errorf("decode job run payload run_id=%s: %w", row.RunID, err)
		}
		out = append(out, jobrun.Run{
			RunID:       row.RunID,
			Job:         row.Job,
			Trigger:     row.Trigger,
			Competition: row.Competition,
			Status:      jobrun.Status(row.Status),
			Payload:     payload,
			Error:       row.LastError.String,
			OccurredAt:  row.OccurredAt.UTC(),
			DurationMS:  row.DurationMS,
			TraceID:     row.TraceID.String,
			SpanID:      row.SpanID.String,
		})
	}
	return out, nil
}

func marshalPayload(payload map[string]any) (string, error) {
	if len(payload) == 0 {
		return "{}", nil
	}
	raw, err := sonic.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func unmarshalPayload(raw string) (map[string]any, error) {
	if raw == "" || raw == "{}" {
		return nil, nil
	}
	var out map[string]any
	if err := sonic.UnmarshalString(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
