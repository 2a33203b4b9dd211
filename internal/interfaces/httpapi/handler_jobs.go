package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/football-hub/internal/usecase"
)

func (h *Handler) TriggerJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := spans.Start(r.Context(), "httpapi.Handler.TriggerJob")
	defer span.End()

	if h.jobs == nil {
		writeError(ctx, w, fmt.Errorf("%w: scheduler is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	raw := strings.TrimSpace(r.PathValue("name"))
	name, ok := usecase.ResolveJobName(raw)
	if ok {
		_, ok = h.jobStatus(name)
	}
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: unknown job %q", usecase.ErrNotFound, raw))
		return
	}

	// A job that ran and failed still answers 200; its error is in the status.
	outcome := "completed"
	if err := h.jobs.Trigger(ctx, name); err != nil {
		if errors.Is(err, usecase.ErrJobRunning) {
			writeError(ctx, w, err)
			return
		}
		h.logger.WarnContext(ctx, "triggered job failed", "job", name, "error", err)
		outcome = "failed"
	}

	job, _ := h.jobStatus(name)
	writeSuccess(ctx, w, http.StatusOK, jobTriggerDTO{Job: job, Status: outcome})
}

func (h *Handler) ListJobStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := spans.Start(r.Context(), "httpapi.Handler.ListJobStatus")
	defer span.End()

	if h.jobs == nil {
		writeError(ctx, w, fmt.Errorf("%w: scheduler is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, h.jobs.Status())
}

func (h *Handler) jobStatus(name string) (usecase.JobStatus, bool) {
	for _, job := range h.jobs.Status().Jobs {
		if job.ID == name {
			return job, true
		}
	}
	return usecase.JobStatus{}, false
}
