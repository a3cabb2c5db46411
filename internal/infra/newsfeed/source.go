// Package newsfeed provides the article sources the curator can draw a
// batch from: the NewsAPI top-headlines endpoint, a local mock JSON file,
// and RSS/Atom health feeds.
package newsfeed

import (
	"context"

	"newscurator/internal/domain/entity"
)

// Source fetches one batch of articles. Implementations assign 1-based
// sequential IDs in feed order, so article IDs are stable within a batch
// but not across batches.
type Source interface {
	// Name identifies the source in logs.
	Name() string

	// Fetch retrieves the current batch.
	Fetch(ctx context.Context) ([]entity.Article, error)
}
