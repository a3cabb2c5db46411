// The curator binary fetches a batch of health news articles, runs the
// sequential summarization driver against the gateway, and repeats on a
// cron schedule. Job metrics are exposed on a separate metrics port.
package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"newscurator/internal/config"
	"newscurator/internal/domain/entity"
	"newscurator/internal/infra/fetcher"
	"newscurator/internal/infra/gatewayclient"
	"newscurator/internal/infra/newsfeed"
	"newscurator/internal/infra/worker"
	"newscurator/internal/observability/logging"
	"newscurator/internal/usecase/curate"
)

// gatewayAdapter narrows the gateway client to the driver's Gateway
// interface.
type gatewayAdapter struct {
	client *gatewayclient.Client
}

func (g gatewayAdapter) Health(ctx context.Context) error {
	_, err := g.client.Health(ctx)
	return err
}

func (g gatewayAdapter) Summarize(ctx context.Context, text string) (entity.SummaryResult, error) {
	return g.client.Summarize(ctx, text)
}

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	cfg := config.LoadCuratorConfig()
	httpClient := newHTTPClient()

	source, err := selectSource(cfg, httpClient, logger)
	if err != nil {
		logger.Error("failed to configure news source", slog.Any("error", err))
		os.Exit(1)
	}

	gateway := gatewayAdapter{client: gatewayclient.New(cfg.GatewayURL, httpClient)}
	expander := fetcher.NewExpander(httpClient, cfg.ExpandThreshold, logger)
	state := curate.NewState()
	driver := curate.NewDriver(gateway, state, logger)
	metrics := worker.NewMetrics()

	driver.OnUpdate = func(u curate.Update) {
		logger.Info("summary state updated",
			slog.Int("article_id", u.ArticleID),
			slog.String("summary", u.Summary))
	}

	job := func(ctx context.Context) {
		runBatch(ctx, logger, metrics, source, expander, driver)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Schedule, func() { job(ctx) }); err != nil {
		logger.Error("invalid cron schedule",
			slog.String("schedule", cfg.Schedule),
			slog.Any("error", err))
		os.Exit(1)
	}

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		server := worker.NewMetricsServer(fmt.Sprintf(":%d", cfg.MetricsPort), logger)
		return server.Start(ctx)
	})
	group.Go(func() error {
		logger.Info("curator started",
			slog.String("source", source.Name()),
			slog.String("gateway", cfg.GatewayURL),
			slog.String("schedule", cfg.Schedule))

		// First batch immediately; cron takes over afterwards.
		job(ctx)

		scheduler.Start()
		<-ctx.Done()
		scheduler.Stop()
		return nil
	})

	if err := group.Wait(); err != nil {
		logger.Error("curator terminated with error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("curator stopped")
}

// runBatch executes one fetch-expand-summarize cycle.
func runBatch(
	ctx context.Context,
	logger *slog.Logger,
	metrics *worker.Metrics,
	source newsfeed.Source,
	expander *fetcher.Expander,
	driver *curate.Driver,
) {
	start := time.Now()
	logger.InfoContext(ctx, "batch started", slog.String("source", source.Name()))

	articles, err := source.Fetch(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "news fetch failed", slog.Any("error", err))
		metrics.RecordRun("failure")
		metrics.RecordDuration(time.Since(start))
		return
	}
	metrics.RecordBatchSize(len(articles))

	for i := range articles {
		articles[i] = expander.Expand(ctx, articles[i])
	}

	driver.Run(ctx, articles)

	metrics.RecordRun("success")
	metrics.RecordDuration(time.Since(start))
	metrics.RecordLastSuccess()
	logger.InfoContext(ctx, "batch finished",
		slog.Int("articles", len(articles)),
		slog.Duration("duration", time.Since(start)))
}

// selectSource builds the configured news source.
func selectSource(cfg config.CuratorConfig, client *http.Client, logger *slog.Logger) (newsfeed.Source, error) {
	switch cfg.ResolveSource() {
	case config.SourceNewsAPI:
		if cfg.NewsAPIKey == "" {
			return nil, fmt.Errorf("NEWS_SOURCE=newsapi requires NEWS_API_KEY")
		}
		return newsfeed.NewNewsAPI(newsfeed.DefaultNewsAPIBaseURL, cfg.NewsAPIKey, client, logger), nil
	case config.SourceFile:
		return newsfeed.NewFile(cfg.MockNewsPath), nil
	case config.SourceRSS:
		if cfg.RSSFeedURL == "" {
			return nil, fmt.Errorf("NEWS_SOURCE=rss requires RSS_FEED_URL")
		}
		return newsfeed.NewRSS(cfg.RSSFeedURL, client, logger), nil
	default:
		return nil, fmt.Errorf("unknown NEWS_SOURCE %q", cfg.NewsSource)
	}
}

func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 30 * time.Second,
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
