package httpapi

import (
	"net/http"

	"github.com/riskibarqy/football-hub/internal/metrics"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.HandleFunc("GET /readyz", handler.Readyz)
	mux.Handle("GET /metrics", metrics.Handler())
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerReadRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/standings", handler.ListStandings)
	mux.HandleFunc("GET /v1/standings/groups", handler.ListStandingGroups)

	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
	mux.HandleFunc("GET /v1/matches/live", handler.ListLiveMatches)
	mux.HandleFunc("GET /v1/matches/upcoming", handler.ListUpcomingMatches)
	mux.HandleFunc("GET /v1/matches/results", handler.ListResults)
	mux.HandleFunc("GET /v1/matches/rounds", handler.ListRounds)
	mux.HandleFunc("GET /v1/matches/bracket", handler.GetBracket)
	mux.HandleFunc("GET /v1/matches/{id}", handler.GetMatch)

	mux.HandleFunc("GET /v1/clubs", handler.ListClubs)
	mux.HandleFunc("GET /v1/clubs/search", handler.SearchClubs)
	mux.HandleFunc("GET /v1/clubs/{id}", handler.GetClub)

	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/players/search", handler.SearchPlayers)
	mux.HandleFunc("GET /v1/players/{id}", handler.GetPlayer)
	mux.HandleFunc("GET /v1/statistics/players", handler.ListPlayerStatistics)

	mux.HandleFunc("GET /v1/news", handler.ListNews)
	mux.HandleFunc("GET /v1/news/latest", handler.LatestNews)
	mux.HandleFunc("GET /v1/news/search", handler.SearchNews)
	mux.HandleFunc("GET /v1/news/{id}", handler.GetNews)
}

func registerChatRoutes(mux *http.ServeMux, handler *Handler) {
	mux.Handle("POST /v1/chat/message", RateLimit(handler.chatLimiter, http.HandlerFunc(handler.PostChatMessage)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/{name}/trigger", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.TriggerJob)))
	mux.Handle("GET /v1/internal/jobs/status", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.ListJobStatus)))
}
