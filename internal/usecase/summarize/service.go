// Package summarize implements the gateway-side summarization use case:
// input validation in front of the provider fallback chain.
package summarize

import (
	"context"
	"log/slog"

	"newscurator/internal/domain/entity"
)

// ValidationSource tags results produced by the input gate rather than by
// any provider.
const ValidationSource = "input-validation"

// ShortInputSummary is returned verbatim when the input is too short to
// summarize meaningfully.
const ShortInputSummary = "⚠️ Please provide longer text for summarization"

// Summarizer produces a summary for the given text. Implementations must
// degrade internally and always return a usable result.
type Summarizer interface {
	Primary() string
	Summarize(ctx context.Context, text string) entity.SummaryResult
}

// Service validates inbound text and delegates to the provider chain.
// It never returns an error: every input maps to some SummaryResult.
type Service struct {
	chain  Summarizer
	logger *slog.Logger
}

// NewService builds a summarization service over the given chain.
func NewService(chain Summarizer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{chain: chain, logger: logger}
}

// Primary reports the name of the first provider the chain would try,
// for health reporting.
func (s *Service) Primary() string {
	return s.chain.Primary()
}

// Summarize returns a summary for text. Inputs shorter than
// entity.MinSummarizeLength after trimming never reach a provider; they get
// a fixed advisory result instead.
func (s *Service) Summarize(ctx context.Context, text string) entity.SummaryResult {
	if !entity.EligibleForSummary(text) {
		s.logger.InfoContext(ctx, "rejecting short summarization input",
			slog.Int("length", len(text)),
			slog.Int("minimum", entity.MinSummarizeLength),
		)
		return entity.SummaryResult{
			Summary: ShortInputSummary,
			Source:  ValidationSource,
			Note:    "text too short",
		}
	}

	return s.chain.Summarize(ctx, text)
}
