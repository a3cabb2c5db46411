package handler

import (
	"log/slog"
	"net/http"
	"time"

	"newscurator/internal/handler/http/requestid"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig carries the dependencies and limits of the gateway router.
type RouterConfig struct {
	Summarizer     SummarizerService
	Primary        PrimaryReporter
	Rewriter       Rewriter
	Logger         *slog.Logger
	RequestTimeout time.Duration
	MaxBodyBytes   int64
}

// NewRouter assembles the gateway's full HTTP surface with the shared
// middleware stack applied to the API routes. /metrics bypasses the stack
// so scrapes never inherit API timeouts or access logging.
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	api := http.NewServeMux()
	api.Handle("/api/health", NewHealthHandler(cfg.Primary))
	api.Handle("/api/summarize", NewSummarizeHandler(cfg.Summarizer, logger))
	api.Handle("/api/rewrite", NewRewriteHandler(cfg.Rewriter, logger))

	wrapped := Chain(api,
		Recover(logger),
		requestid.Middleware,
		Logging(logger),
		CORS(),
		LimitRequestBody(cfg.MaxBodyBytes),
		Timeout(cfg.RequestTimeout),
	)

	root := http.NewServeMux()
	root.Handle("/api/", wrapped)
	root.Handle("/metrics", promhttp.Handler())
	return root
}
