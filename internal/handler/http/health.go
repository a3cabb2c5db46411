// Package handler wires the gateway's HTTP endpoints: health, summarize and
// rewrite, plus the middleware stack shared by all of them.
package handler

import (
	"net/http"
	"time"

	"newscurator/internal/handler/http/respond"
)

// HealthResponse is the body of GET /api/health. Timestamp is RFC 3339 in
// UTC; AIProvider names the first provider the summarization chain would
// currently try.
type HealthResponse struct {
	Status     string `json:"status"`
	Message    string `json:"message"`
	AIProvider string `json:"aiProvider"`
	Timestamp  string `json:"timestamp"`
}

const healthMessage = "Server with REAL AI is running!"

// PrimaryReporter names the currently preferred summarization provider.
type PrimaryReporter interface {
	Primary() string
}

// HealthHandler serves the gateway liveness endpoint. Clients gate their
// batch summarization on this answer, so it must stay cheap and local: no
// provider is contacted here.
type HealthHandler struct {
	service PrimaryReporter
	now     func() time.Time
}

// NewHealthHandler creates a HealthHandler reporting the given service.
func NewHealthHandler(service PrimaryReporter) *HealthHandler {
	return &HealthHandler{service: service, now: time.Now}
}

// ServeHTTP handles GET /api/health.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		respond.JSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	respond.JSON(w, http.StatusOK, HealthResponse{
		Status:     "OK",
		Message:    healthMessage,
		AIProvider: h.service.Primary(),
		Timestamp:  h.now().UTC().Format(time.RFC3339),
	})
}
