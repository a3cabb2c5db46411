package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"newscurator/internal/domain/entity"
	"newscurator/internal/handler/http/respond"
	"newscurator/internal/observability/logging"
)

// SummarizeRequest is the body of POST /api/summarize.
type SummarizeRequest struct {
	Text string `json:"text"`
}

// SummarizerService produces a summary for any input without failing.
type SummarizerService interface {
	Summarize(ctx context.Context, text string) entity.SummaryResult
}

// SummarizeHandler serves POST /api/summarize. Every well-formed request is
// answered 200 with a SummaryResult body; degradation happens inside the
// service, never at the HTTP status level.
type SummarizeHandler struct {
	service SummarizerService
	logger  *slog.Logger
}

// NewSummarizeHandler creates a SummarizeHandler.
func NewSummarizeHandler(service SummarizerService, logger *slog.Logger) *SummarizeHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SummarizeHandler{service: service, logger: logger}
}

// ServeHTTP handles POST /api/summarize.
func (h *SummarizeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		respond.JSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req SummarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, errors.New("invalid JSON body"))
		return
	}

	logger := logging.WithRequestID(r.Context(), h.logger)
	start := time.Now()

	result := h.service.Summarize(r.Context(), req.Text)

	logger.InfoContext(r.Context(), "summarization request served",
		slog.String("source", result.Source),
		slog.Int("input_length", len(req.Text)),
		slog.Duration("duration", time.Since(start)),
	)
	respond.JSON(w, http.StatusOK, result)
}
