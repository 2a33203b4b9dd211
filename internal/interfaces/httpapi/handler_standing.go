package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) ListStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := spans.Start(r.Context(), "httpapi.Handler.ListStandings")
	defer span.End()

	comp, err := h.competitionFromQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	group := strings.TrimSpace(r.URL.Query().Get("group"))

	rows, err := h.reader.Standings(ctx, comp, group)
	if err != nil {
		h.logger.WarnContext(ctx, "list standings failed", "competition", comp.Code, "group", group, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingsTableDTO{
		Competition: string(comp.Code),
		Season:      comp.Season,
		Group:       group,
		Rows:        mapSlice(rows, standingToDTO),
	})
}

func (h *Handler) ListStandingGroups(w http.ResponseWriter, r *http.Request) {
	ctx, span := spans.Start(r.Context(), "httpapi.Handler.ListStandingGroups")
	defer span.End()

	comp, err := h.competitionFromQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	groups, err := h.reader.StandingGroups(ctx, comp)
	if err != nil {
		h.logger.WarnContext(ctx, "list standing groups failed", "competition", comp.Code, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, groups)
}
