package server

import (
	"encoding/json"
	"net/http"

	"github.com/groblegark/seasonplan/internal/plan"
)

// NewHTTPHandler returns an http.Handler with all routes registered.
// When authToken is non-empty, requests (except GET /v1/health) must include
// a valid Authorization: Bearer <token> header.
func (s *PlanServer) NewHTTPHandler(authToken string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/seasons", s.handleCreateSeason)
	mux.HandleFunc("GET /v1/seasons", s.handleListSeasons)
	mux.HandleFunc("GET /v1/seasons/{id}", s.handleGetSeason)
	mux.HandleFunc("PATCH /v1/seasons/{id}", s.handleUpdateSeasonDetails)
	mux.HandleFunc("PUT /v1/seasons/{id}/status", s.handleUpdateSeasonStatus)
	mux.HandleFunc("POST /v1/seasons/{id}/tasks", s.handleCreateTask)
	mux.HandleFunc("PATCH /v1/seasons/{id}/tasks/{task_id}", s.handleUpdateTask)
	mux.HandleFunc("GET /v1/seasons/{id}/timeline", s.handleGetTimeline)
	mux.HandleFunc("GET /v1/seasons/{id}/actionable", s.handleGetActionable)
	mux.HandleFunc("GET /v1/seasons/{id}/events", s.handleGetEvents)
	mux.HandleFunc("GET /v1/health", s.handleHealth)
	return AuthMiddleware(authToken, RecoveryMiddleware(LoggingMiddleware(mux)))
}

// handleHealth handles GET /v1/health.
func (s *PlanServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeDenied writes a 403 carrying the authorization reason code so clients
// can explain the denial rather than just display "forbidden".
func writeDenied(w http.ResponseWriter, reason plan.Reason) {
	writeJSON(w, http.StatusForbidden, map[string]string{
		"error":  reason.Message(),
		"reason": string(reason),
	})
}
