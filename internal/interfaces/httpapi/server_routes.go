package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerStatsRoutes(mux *http.ServeMux, handler *Handler, internalStatsToken string) {
	mux.HandleFunc("GET /stats/validate", handler.ValidateStats)
	mux.HandleFunc("GET /matches/{matchID}/head-to-head", handler.MatchHeadToHead)
	mux.HandleFunc("GET /matches/{matchID}/events", handler.MatchEvents)
	mux.HandleFunc("GET /seasons/{seasonID}/standings", handler.SeasonStandings)
	mux.HandleFunc("GET /seasons/{seasonID}/teams/{teamID}/stats", handler.TeamSeasonStats)
	mux.HandleFunc("GET /seasons/{seasonID}/players/{playerID}/stats", handler.PlayerSeasonStats)

	mux.Handle("POST /stats/backup", RequireInternalStatsToken(internalStatsToken, http.HandlerFunc(handler.BackupStats)))
	mux.Handle("PUT /stats/backup", RequireInternalStatsToken(internalStatsToken, http.HandlerFunc(handler.RestoreStats)))
	mux.Handle("POST /internal/stats/recompute", RequireInternalStatsToken(internalStatsToken, http.HandlerFunc(handler.RecomputeStats)))
}
