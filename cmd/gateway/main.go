// The gateway binary serves the summarization API: /api/health,
// /api/summarize and /api/rewrite, plus Prometheus metrics on /metrics.
package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"newscurator/internal/config"
	handler "newscurator/internal/handler/http"
	"newscurator/internal/infra/provider"
	"newscurator/internal/infra/rewriter"
	"newscurator/internal/observability/logging"
	"newscurator/internal/usecase/summarize"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	cfg := config.LoadGatewayConfig()

	providers, err := cfg.Providers(newHTTPClient())
	if err != nil {
		logger.Error("failed to build provider chain", slog.Any("error", err))
		os.Exit(1)
	}
	for _, p := range providers {
		logger.Info("provider configured",
			slog.String("provider", p.Name()),
			slog.Bool("enabled", p.Enabled()))
	}

	chain := provider.NewChain(providers, provider.NewEmergency())
	service := summarize.NewService(chain, logger)
	claudeRewriter := rewriter.NewClaude(cfg.AnthropicKey, logger)

	router := handler.NewRouter(handler.RouterConfig{
		Summarizer:     service,
		Primary:        service,
		Rewriter:       claudeRewriter,
		Logger:         logger,
		RequestTimeout: cfg.RequestTimeout,
		MaxBodyBytes:   cfg.MaxBodyBytes,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Info("gateway listening",
			slog.Int("port", cfg.Port),
			slog.String("primary_provider", service.Primary()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("shutting down gateway")
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		logger.Error("gateway terminated with error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("gateway stopped")
}

func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 60 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
	}
}
