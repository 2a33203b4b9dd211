package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/football-hub/internal/usecase"
)

func (h *Handler) ListClubs(w http.ResponseWriter, r *http.Request) {
	ctx, span := spans.Start(r.Context(), "httpapi.Handler.ListClubs")
	defer span.End()

	comp, err := h.competitionFromQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.reader.Clubs(ctx, comp)
	if err != nil {
		h.logger.WarnContext(ctx, "list clubs failed", "competition", comp.Code, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mapSlice(items, clubToDTO))
}

func (h *Handler) SearchClubs(w http.ResponseWriter, r *http.Request) {
	ctx, span := spans.Start(r.Context(), "httpapi.Handler.SearchClubs")
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

	items, err := h.reader.SearchClubs(ctx, comp, r.URL.Query().Get("q"), limit)
	if err != nil {
		h.logger.WarnContext(ctx, "search clubs failed", "competition", comp.Code, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mapSlice(items, clubToDTO))
}

func (h *Handler) GetClub(w http.ResponseWriter, r *http.Request) {
	ctx, span := spans.Start(r.Context(), "httpapi.Handler.GetClub")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	detail, err := h.reader.Club(ctx, id, queryBool(r, "players"))
	if err != nil {
		h.logger.WarnContext(ctx, "get club failed", "club_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, clubDetailDTO{
		clubDTO: clubToDTO(detail.Club),
		Players: mapSlice(detail.Players, playerToDTO),
	})
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := spans.Start(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	comp, err := h.competitionFromQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	clubID, err := queryInt(r, "club_id")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	paging, err := queryPagination(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	page, err := h.reader.Players(ctx, comp, usecase.PlayerQuery{
		Position: r.URL.Query().Get("position"),
		ClubID:   int64(clubID),
		Page:     paging.page,
		PerPage:  paging.perPage,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list players failed", "competition", comp.Code, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toPageDTO(page, playerToDTO))
}

func (h *Handler) SearchPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := spans.Start(r.Context(), "httpapi.Handler.SearchPlayers")
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

	items, err := h.reader.SearchPlayers(ctx, comp, r.URL.Query().Get("q"), limit)
	if err != nil {
		h.logger.WarnContext(ctx, "search players failed", "competition", comp.Code, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mapSlice(items, playerToDTO))
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := spans.Start(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.reader.Player(ctx, id)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "player_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(item))
}

func (h *Handler) ListPlayerStatistics(w http.ResponseWriter, r *http.Request) {
	ctx, span := spans.Start(r.Context(), "httpapi.Handler.ListPlayerStatistics")
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

	page, err := h.reader.TopStatistics(ctx, comp, usecase.StatisticQuery{
		Sort:     strings.TrimSpace(r.URL.Query().Get("sort")),
		Position: r.URL.Query().Get("position"),
		Page:     paging.page,
		PerPage:  paging.perPage,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list player statistics failed", "competition", comp.Code, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toPageDTO(page, statisticToDTO))
}
