package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/football-hub/internal/usecase"
)

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := spans.Start(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	comp, err := h.competitionFromQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	matchweek, err := queryInt(r, "matchweek")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	paging, err := queryPagination(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	page, err := h.reader.Matches(ctx, comp, usecase.MatchQuery{
		Status:    strings.TrimSpace(r.URL.Query().Get("status")),
		Matchweek: matchweek,
		Page:      paging.page,
		PerPage:   paging.perPage,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "competition", comp.Code, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toPageDTO(page, matchToDTO))
}

func (h *Handler) ListLiveMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := spans.Start(r.Context(), "httpapi.Handler.ListLiveMatches")
	defer span.End()

	comp, err := h.competitionFromQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.reader.LiveMatches(ctx, comp)
	if err != nil {
		h.logger.WarnContext(ctx, "list live matches failed", "competition", comp.Code, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mapSlice(items, matchToDTO))
}

func (h *Handler) ListUpcomingMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := spans.Start(r.Context(), "httpapi.Handler.ListUpcomingMatches")
	defer span.End()

	comp, err := h.competitionFromQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.reader.UpcomingMatches(ctx, comp, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "list upcoming matches failed", "competition", comp.Code, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mapSlice(items, matchToDTO))
}

func (h *Handler) ListResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := spans.Start(r.Context(), "httpapi.Handler.ListResults")
	defer span.End()

	comp, err := h.competitionFromQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	matchweek, err := queryInt(r, "matchweek")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.reader.Results(ctx, comp, matchweek, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "list results failed", "competition", comp.Code, "matchweek", matchweek, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mapSlice(items, matchToDTO))
}

func (h *Handler) ListRounds(w http.ResponseWriter, r *http.Request) {
	ctx, span := spans.Start(r.Context(), "httpapi.Handler.ListRounds")
	defer span.End()

	comp, err := h.competitionFromQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	rounds, err := h.reader.Rounds(ctx, comp)
	if err != nil {
		h.logger.WarnContext(ctx, "list rounds failed", "competition", comp.Code, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rounds)
}

func (h *Handler) GetBracket(w http.ResponseWriter, r *http.Request) {
	ctx, span := spans.Start(r.Context(), "httpapi.Handler.GetBracket")
	defer span.End()

	comp, err := h.competitionFromQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	ties, err := h.reader.Bracket(ctx, comp)
	if err != nil {
		h.logger.WarnContext(ctx, "get bracket failed", "competition", comp.Code, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mapSlice(ties, tieToDTO))
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := spans.Start(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.reader.Match(ctx, id)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDetailDTO(item))
}
