// Package fetcher expands truncated article bodies by fetching the article
// URL and extracting readable text with the Readability algorithm. NewsAPI
// cuts `content` at ~200 characters, which starves the summarizers; the
// expander recovers the full text when it can and degrades to the
// truncated body when it cannot.
package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"

	"newscurator/internal/domain/entity"
	"newscurator/internal/resilience/circuitbreaker"
	"newscurator/internal/resilience/retry"
)

const (
	// DefaultExpandThreshold is the body length below which an article is
	// considered truncated and worth expanding.
	DefaultExpandThreshold = 400

	fetchTimeout = 15 * time.Second
	maxBodySize  = 2 << 20
	userAgent    = "NewsCuratorBot/1.0"
)

// Expander fetches full article text for truncated bodies.
type Expander struct {
	client    *http.Client
	breaker   *circuitbreaker.CircuitBreaker
	retry     retry.Config
	threshold int
	logger    *slog.Logger
}

// NewExpander creates an Expander. A threshold of 0 selects
// DefaultExpandThreshold.
func NewExpander(client *http.Client, threshold int, logger *slog.Logger) *Expander {
	if client == nil {
		client = &http.Client{Timeout: fetchTimeout}
	}
	if threshold <= 0 {
		threshold = DefaultExpandThreshold
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Expander{
		client:    client,
		breaker:   circuitbreaker.New(circuitbreaker.ContentFetchConfig()),
		retry:     retry.ContentFetchConfig(),
		threshold: threshold,
		logger:    logger,
	}
}

// Expand returns article with its Content replaced by the full extracted
// text when the current body is below the threshold and the article URL
// yields readable content. Failures leave the article unchanged; expansion
// is strictly best-effort.
func (e *Expander) Expand(ctx context.Context, article entity.Article) entity.Article {
	body := article.SummarizableText()
	if len(body) >= e.threshold || article.URL == "" {
		return article
	}

	full, err := e.fetchText(ctx, article.URL)
	if err != nil {
		e.logger.WarnContext(ctx, "content expansion failed, keeping truncated body",
			slog.Int("article_id", article.ID),
			slog.String("url", article.URL),
			slog.String("error", err.Error()))
		return article
	}

	e.logger.InfoContext(ctx, "expanded truncated article",
		slog.Int("article_id", article.ID),
		slog.Int("before", len(body)),
		slog.Int("after", len(full)))
	article.Content = full
	return article
}

func (e *Expander) fetchText(ctx context.Context, articleURL string) (string, error) {
	var text string

	retryErr := retry.WithBackoff(ctx, e.retry, func() error {
		result, err := e.breaker.Execute(func() (any, error) {
			return e.doFetch(ctx, articleURL)
		})
		if err != nil {
			return err
		}
		text = result.(string)
		return nil
	})
	if retryErr != nil {
		return "", retryErr
	}
	return text, nil
}

func (e *Expander) doFetch(ctx context.Context, articleURL string) (string, error) {
	reqCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, articleURL, nil)
	if err != nil {
		return "", fmt.Errorf("build content request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("content request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &retry.HTTPError{StatusCode: resp.StatusCode, Message: "article fetch"}
	}

	htmlBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("read article body: %w", err)
	}

	parsedURL, _ := url.Parse(articleURL)
	if resp.Request != nil && resp.Request.URL != nil {
		parsedURL = resp.Request.URL
	}

	extracted, err := readability.FromReader(bytes.NewReader(htmlBytes), parsedURL)
	if err != nil {
		return "", fmt.Errorf("readability extraction: %w", err)
	}

	text := strings.TrimSpace(extracted.TextContent)
	if text == "" {
		return "", fmt.Errorf("no readable content at %s", articleURL)
	}
	return text, nil
}
