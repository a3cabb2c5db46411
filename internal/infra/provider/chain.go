package provider

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"newscurator/internal/domain/entity"
	"newscurator/internal/resilience/circuitbreaker"
)

// Chain is the ordered fallback chain over summarization providers. It tries
// each provider strictly in order, moving to the next on any failure, and
// degrades to the local emergency generator when every provider has been
// exhausted. Summarize therefore never returns an error.
//
// Each provider gets its own circuit breaker; an open breaker counts as a
// failed attempt and the chain moves on without waiting for the provider's
// timeout. The chain never retries a provider — the ordering itself is the
// retry policy.
type Chain struct {
	providers []Provider
	breakers  []*circuitbreaker.CircuitBreaker
	emergency *Emergency
	metrics   ChainMetricsRecorder
}

// NewChain builds a chain over the given providers in priority order.
func NewChain(providers []Provider, emergency *Emergency) *Chain {
	return NewChainWithMetrics(providers, emergency, NewPrometheusChainMetrics())
}

// NewChainWithMetrics builds a chain with an injected metrics recorder.
func NewChainWithMetrics(providers []Provider, emergency *Emergency, metrics ChainMetricsRecorder) *Chain {
	breakers := make([]*circuitbreaker.CircuitBreaker, len(providers))
	for i, p := range providers {
		breakers[i] = circuitbreaker.New(circuitbreaker.ProviderConfig(p.Name()))
	}
	return &Chain{
		providers: providers,
		breakers:  breakers,
		emergency: emergency,
		metrics:   metrics,
	}
}

// Primary returns the name of the highest-priority enabled provider, or the
// emergency source when no provider is enabled. Used by the health endpoint
// to report the active AI backend.
func (c *Chain) Primary() string {
	for _, p := range c.providers {
		if p.Enabled() {
			return p.Name()
		}
	}
	return EmergencySource
}

// Summarize runs the fallback chain for the given text. The input is assumed
// to have passed the gateway's length gate; the chain itself imposes no
// minimum.
func (c *Chain) Summarize(ctx context.Context, text string) entity.SummaryResult {
	for i, p := range c.providers {
		if !p.Enabled() {
			slog.InfoContext(ctx, "provider skipped, no credential configured",
				slog.String("provider", p.Name()))
			c.metrics.RecordAttempt(p.Name(), OutcomeSkipped)
			continue
		}

		start := time.Now()
		cbResult, err := c.breakers[i].Execute(func() (interface{}, error) {
			return p.Summarize(ctx, text)
		})
		duration := time.Since(start)

		if err != nil {
			outcome := OutcomeFailure
			if errors.Is(err, gobreaker.ErrOpenState) {
				outcome = OutcomeRejected
				slog.WarnContext(ctx, "provider circuit breaker open, attempt rejected",
					slog.String("provider", p.Name()),
					slog.String("state", c.breakers[i].State().String()))
			} else {
				slog.WarnContext(ctx, "provider attempt failed, degrading to next",
					slog.String("provider", p.Name()),
					slog.Duration("duration", duration),
					slog.Any("error", err))
			}
			c.metrics.RecordAttempt(p.Name(), outcome)
			c.metrics.RecordDuration(p.Name(), duration)
			continue
		}

		result := cbResult.(entity.SummaryResult)
		slog.InfoContext(ctx, "summary generated",
			slog.String("provider", p.Name()),
			slog.Duration("duration", duration),
			slog.Int("summary_length", len(result.Summary)))
		c.metrics.RecordAttempt(p.Name(), OutcomeSuccess)
		c.metrics.RecordDuration(p.Name(), duration)
		return result
	}

	slog.WarnContext(ctx, "all providers exhausted, using emergency fallback")
	c.metrics.RecordFallback()
	return c.emergency.Generate(text)
}
