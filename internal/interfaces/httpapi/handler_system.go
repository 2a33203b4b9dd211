package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/football-hub/internal/usecase"
)

const readinessTimeout = 2 * time.Second

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := spans.Start(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz pings the store. The memory store has no pinger and is always ready.
func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, span := spans.Start(r.Context(), "httpapi.Handler.Readyz")
	defer span.End()

	if h.db != nil {
		pingCtx, cancel := context.WithTimeout(ctx, readinessTimeout)
		defer cancel()
		if err := h.db.PingContext(pingCtx); err != nil {
			h.logger.WarnContext(ctx, "readiness ping failed", "error", err)
			writeError(ctx, w, fmt.Errorf("%w: database ping failed", usecase.ErrDependencyUnavailable))
			return
		}
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ready"})
}
