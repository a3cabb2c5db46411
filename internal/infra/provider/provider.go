// Package provider implements the ordered summarization fallback chain: a
// fixed list of external summarization services tried in priority order,
// backed by a deterministic local template generator that never fails.
//
// Providers are declarative descriptors rather than nested error handlers:
// adding or removing a provider is a data change, not a control-flow change.
package provider

import (
	"context"
	"strings"

	"newscurator/internal/domain/entity"
)

// Provider is a single external summarization service with its own request
// shape, truncation limit, timeout, and credential requirement.
type Provider interface {
	// Name returns the human-readable provider label used as the result
	// source and in logs and metrics.
	Name() string

	// Enabled reports whether the provider can be attempted. A provider
	// that requires a credential which is not configured is disabled and
	// skipped outright; the chain never sends a placeholder token upstream.
	Enabled() bool

	// Summarize submits the text to the provider and returns the result.
	// Any failure (network error, timeout, non-2xx status, malformed or
	// empty response body) is returned as an error; the caller degrades to
	// the next provider.
	Summarize(ctx context.Context, text string) (entity.SummaryResult, error)
}

// truncate returns at most limit runes of text. Provider payloads are cut to
// each service's input budget before sending.
func truncate(text string, limit int) string {
	if limit <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}

// decorate prepends the newspaper marker the UI renders in front of genuine
// model output.
func decorate(summary string) string {
	return "📰 " + strings.TrimSpace(summary)
}
