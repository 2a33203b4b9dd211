package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/football-hub/internal/usecase"
)

func (h *Handler) ListNews(w http.ResponseWriter, r *http.Request) {
	ctx, span := spans.Start(r.Context(), "httpapi.Handler.ListNews")
	defer span.End()

	comp, err := h.competitionFromQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	paging, err := queryPagination(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	page, err := h.reader.News(ctx, comp, usecase.NewsQuery{
		Category: strings.TrimSpace(r.URL.Query().Get("category")),
		Page:     paging.page,
		PerPage:  paging.perPage,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list news failed", "competition", comp.Code, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toPageDTO(page, newsSummaryToDTO))
}

func (h *Handler) LatestNews(w http.ResponseWriter, r *http.Request) {
	ctx, span := spans.Start(r.Context(), "httpapi.Handler.LatestNews")
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

	items, err := h.reader.LatestNews(ctx, comp, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "latest news failed", "competition", comp.Code, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mapSlice(items, newsSummaryToDTO))
}

func (h *Handler) SearchNews(w http.ResponseWriter, r *http.Request) {
	ctx, span := spans.Start(r.Context(), "httpapi.Handler.SearchNews")
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

	items, err := h.reader.SearchNews(ctx, comp, r.URL.Query().Get("q"), limit)
	if err != nil {
		h.logger.WarnContext(ctx, "search news failed", "competition", comp.Code, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mapSlice(items, newsSummaryToDTO))
}

func (h *Handler) GetNews(w http.ResponseWriter, r *http.Request) {
	ctx, span := spans.Start(r.Context(), "httpapi.Handler.GetNews")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.reader.NewsItem(ctx, id)
	if err != nil {
		h.logger.WarnContext(ctx, "get news failed", "news_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, newsToDTO(item))
}
