package newsfeed

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"github.com/sony/gobreaker"

	"newscurator/internal/domain/entity"
	"newscurator/internal/resilience/circuitbreaker"
	"newscurator/internal/resilience/retry"
)

// RSS fetches articles from an RSS/Atom health feed, guarded by retry and
// a circuit breaker. Item HTML is stripped to plain text before it becomes
// summarization input.
type RSS struct {
	feedURL string
	client  *http.Client
	breaker *circuitbreaker.CircuitBreaker
	retry   retry.Config
	logger  *slog.Logger
}

// NewRSS creates an RSS source for feedURL.
func NewRSS(feedURL string, client *http.Client, logger *slog.Logger) *RSS {
	if client == nil {
		client = &http.Client{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RSS{
		feedURL: feedURL,
		client:  client,
		breaker: circuitbreaker.New(circuitbreaker.NewsFetchConfig()),
		retry:   retry.NewsFetchConfig(),
		logger:  logger,
	}
}

// Name implements Source.
func (r *RSS) Name() string { return "rss" }

// Fetch retrieves and parses the feed. Articles are numbered 1..N in feed
// order.
func (r *RSS) Fetch(ctx context.Context) ([]entity.Article, error) {
	var articles []entity.Article

	retryErr := retry.WithBackoff(ctx, r.retry, func() error {
		result, err := r.breaker.Execute(func() (any, error) {
			return r.doFetch(ctx)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				r.logger.WarnContext(ctx, "feed fetch circuit breaker open, request rejected",
					slog.String("source", r.Name()),
					slog.String("url", r.feedURL),
					slog.String("state", r.breaker.State().String()))
			}
			return err
		}
		articles = result.([]entity.Article)
		return nil
	})
	if retryErr != nil {
		return nil, retryErr
	}

	return articles, nil
}

func (r *RSS) doFetch(ctx context.Context) ([]entity.Article, error) {
	parser := gofeed.NewParser()
	parser.UserAgent = "NewsCuratorBot"
	parser.Client = r.client

	feed, err := parser.ParseURLWithContext(r.feedURL, ctx)
	if err != nil {
		return nil, err
	}

	articles := make([]entity.Article, 0, len(feed.Items))
	for i, item := range feed.Items {
		content := item.Content
		if content == "" {
			content = item.Description
		}

		articles = append(articles, entity.Article{
			ID:          i + 1,
			Title:       item.Title,
			Description: stripHTML(item.Description),
			Content:     stripHTML(content),
			URL:         item.Link,
			URLToImage:  itemImage(item),
		})
	}

	r.logger.InfoContext(ctx, "fetched feed items",
		slog.String("source", r.Name()),
		slog.String("url", r.feedURL),
		slog.Int("count", len(articles)))
	return articles, nil
}

// stripHTML reduces feed HTML to whitespace-normalized plain text. Input
// that fails to parse is returned as-is.
func stripHTML(html string) string {
	if !strings.Contains(html, "<") {
		return strings.TrimSpace(html)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.TrimSpace(html)
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

func itemImage(item *gofeed.Item) string {
	if item.Image != nil {
		return item.Image.URL
	}
	for _, enclosure := range item.Enclosures {
		if strings.HasPrefix(enclosure.Type, "image/") {
			return enclosure.URL
		}
	}
	return ""
}
