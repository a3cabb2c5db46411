package newsfeed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"newscurator/internal/domain/entity"
	"newscurator/internal/resilience/circuitbreaker"
	"newscurator/internal/resilience/retry"
)

// DefaultNewsAPIBaseURL is the production NewsAPI endpoint.
const DefaultNewsAPIBaseURL = "https://newsapi.org"

// newsAPIResponse mirrors the NewsAPI top-headlines wire format.
type newsAPIResponse struct {
	Status       string `json:"status"`
	TotalResults int    `json:"totalResults"`
	Articles     []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Content     string `json:"content"`
		URL         string `json:"url"`
		URLToImage  string `json:"urlToImage"`
	} `json:"articles"`
}

// NewsAPI fetches US health top-headlines from newsapi.org, guarded by
// retry and a circuit breaker.
type NewsAPI struct {
	baseURL string
	apiKey  string
	client  *http.Client
	breaker *circuitbreaker.CircuitBreaker
	retry   retry.Config
	logger  *slog.Logger
}

// NewNewsAPI creates a NewsAPI source. baseURL is overridable for tests;
// pass DefaultNewsAPIBaseURL in production.
func NewNewsAPI(baseURL, apiKey string, client *http.Client, logger *slog.Logger) *NewsAPI {
	if client == nil {
		client = &http.Client{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &NewsAPI{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  client,
		breaker: circuitbreaker.New(circuitbreaker.NewsFetchConfig()),
		retry:   retry.NewsFetchConfig(),
		logger:  logger,
	}
}

// Name implements Source.
func (n *NewsAPI) Name() string { return "newsapi" }

// Fetch retrieves the current health top-headlines. Articles are numbered
// 1..N in response order.
func (n *NewsAPI) Fetch(ctx context.Context) ([]entity.Article, error) {
	var articles []entity.Article

	retryErr := retry.WithBackoff(ctx, n.retry, func() error {
		result, err := n.breaker.Execute(func() (any, error) {
			return n.doFetch(ctx)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				n.logger.WarnContext(ctx, "news fetch circuit breaker open, request rejected",
					slog.String("source", n.Name()),
					slog.String("state", n.breaker.State().String()))
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

func (n *NewsAPI) doFetch(ctx context.Context) ([]entity.Article, error) {
	endpoint := fmt.Sprintf("%s/v2/top-headlines?%s", n.baseURL, url.Values{
		"category": {"health"},
		"country":  {"us"},
		"apiKey":   {n.apiKey},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build newsapi request: %w", err)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsapi request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &retry.HTTPError{StatusCode: resp.StatusCode, Message: "newsapi top-headlines"}
	}

	var body newsAPIResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4<<20)).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode newsapi response: %w", err)
	}
	if body.Status != "ok" {
		return nil, fmt.Errorf("newsapi returned status %q", body.Status)
	}

	articles := make([]entity.Article, 0, len(body.Articles))
	for i, item := range body.Articles {
		articles = append(articles, entity.Article{
			ID:          i + 1,
			Title:       item.Title,
			Description: item.Description,
			Content:     item.Content,
			URL:         item.URL,
			URLToImage:  item.URLToImage,
		})
	}

	n.logger.InfoContext(ctx, "fetched live headlines",
		slog.String("source", n.Name()),
		slog.Int("count", len(articles)))
	return articles, nil
}
