package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"newscurator/internal/handler/http/respond"
)

// RewriteRequest is the body of POST /api/rewrite.
type RewriteRequest struct {
	Text string `json:"text"`
}

// RewriteResponse is the body of POST /api/rewrite.
type RewriteResponse struct {
	Rewrite string `json:"rewrite"`
}

// Rewriter expands article text. Implementations degrade to a fixed
// fallback string instead of failing.
type Rewriter interface {
	Rewrite(ctx context.Context, text string) string
}

// RewriteHandler serves POST /api/rewrite.
type RewriteHandler struct {
	rewriter Rewriter
	logger   *slog.Logger
}

// NewRewriteHandler creates a RewriteHandler.
func NewRewriteHandler(rewriter Rewriter, logger *slog.Logger) *RewriteHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RewriteHandler{rewriter: rewriter, logger: logger}
}

// ServeHTTP handles POST /api/rewrite.
func (h *RewriteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		respond.JSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req RewriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, errors.New("invalid JSON body"))
		return
	}

	respond.JSON(w, http.StatusOK, RewriteResponse{
		Rewrite: h.rewriter.Rewrite(r.Context(), req.Text),
	})
}
