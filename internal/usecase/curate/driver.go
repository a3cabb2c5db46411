package curate

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"newscurator/internal/domain/entity"
)

// requestInterval is the minimum spacing between consecutive summarize
// calls, so a batch never hammers the gateway.
const requestInterval = 500 * time.Millisecond

// Gateway is the driver's view of the summarization gateway.
type Gateway interface {
	// Health reports whether the gateway is reachable and healthy.
	Health(ctx context.Context) error

	// Summarize requests a summary for text.
	Summarize(ctx context.Context, text string) (entity.SummaryResult, error)
}

// Driver walks a batch of articles sequentially, publishing every summary
// state transition to the State store and the optional OnUpdate callback.
// It never returns an error for summarization failures: each failure is
// isolated to its article's slot.
type Driver struct {
	gateway Gateway
	state   *State
	limiter *rate.Limiter
	logger  *slog.Logger

	// OnUpdate, when set, observes every applied state transition in order.
	// Stale-generation writes are dropped before reaching it.
	OnUpdate func(Update)
}

// NewDriver creates a batch driver over the given gateway and state store.
func NewDriver(gateway Gateway, state *State, logger *slog.Logger) *Driver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Driver{
		gateway: gateway,
		state:   state,
		limiter: rate.NewLimiter(rate.Every(requestInterval), 1),
		logger:  logger,
	}
}

// Run summarizes one batch of articles in input order. An empty batch is a
// no-op. A failed health check marks every slot backend-down and makes no
// summarize call. Run returns early only when ctx is cancelled.
func (d *Driver) Run(ctx context.Context, articles []entity.Article) {
	if len(articles) == 0 {
		return
	}

	generation := d.state.NextGeneration()
	logger := d.logger.With(slog.Int("generation", generation), slog.Int("batch_size", len(articles)))

	if err := d.gateway.Health(ctx); err != nil {
		logger.WarnContext(ctx, "gateway health check failed, marking batch unavailable",
			slog.String("error", err.Error()))
		for _, article := range articles {
			d.publish(generation, article.ID, entity.StatusBackendDown)
		}
		return
	}

	for _, article := range articles {
		d.publish(generation, article.ID, entity.StatusPending)
	}

	for i, article := range articles {
		text := article.SummarizableText()
		if text == "" {
			d.publish(generation, article.ID, entity.StatusNoContent)
			continue
		}

		if err := d.limiter.Wait(ctx); err != nil {
			logger.InfoContext(ctx, "batch cancelled", slog.Int("position", i))
			return
		}

		result, err := d.gateway.Summarize(ctx, text)
		if err != nil {
			logger.WarnContext(ctx, "article summarization failed",
				slog.Int("article_id", article.ID),
				slog.String("error", err.Error()))
			d.publish(generation, article.ID, entity.StatusFailed)
			continue
		}

		logger.InfoContext(ctx, "article summarized",
			slog.Int("article_id", article.ID),
			slog.String("source", result.Source))
		d.publish(generation, article.ID, result.Summary)
	}

	logger.InfoContext(ctx, "batch completed")
}

func (d *Driver) publish(generation, articleID int, summary string) {
	if !d.state.Set(generation, articleID, summary) {
		return
	}
	if d.OnUpdate != nil {
		d.OnUpdate(Update{ArticleID: articleID, Summary: summary})
	}
}
