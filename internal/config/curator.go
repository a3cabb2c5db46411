package config

import (
	pkgconfig "newscurator/pkg/config"
)

// News source selectors for NEWS_SOURCE.
const (
	SourceAuto    = "auto"
	SourceNewsAPI = "newsapi"
	SourceFile    = "file"
	SourceRSS     = "rss"
)

// CuratorConfig holds configuration for the curator worker binary.
type CuratorConfig struct {
	// GatewayURL is the summarization gateway base URL.
	GatewayURL string

	// NewsSource selects where batches come from: "newsapi", "file", "rss",
	// or "auto" (newsapi when a key is present, file otherwise).
	NewsSource string

	// NewsAPIKey authorizes newsapi.org top-headlines.
	NewsAPIKey string

	// MockNewsPath is the JSON file backing the "file" source.
	MockNewsPath string

	// RSSFeedURL is the feed backing the "rss" source.
	RSSFeedURL string

	// Schedule is the cron expression for batch refreshes.
	Schedule string

	// MetricsPort is the Prometheus metrics listen port.
	MetricsPort int

	// ExpandThreshold is the body length below which articles are expanded
	// through the readability fetcher before summarization. 0 keeps the
	// fetcher default.
	ExpandThreshold int
}

// LoadCuratorConfig reads curator configuration from the environment.
func LoadCuratorConfig() CuratorConfig {
	return CuratorConfig{
		GatewayURL:      pkgconfig.GetEnvString("GATEWAY_URL", "http://localhost:8080"),
		NewsSource:      pkgconfig.GetEnvString("NEWS_SOURCE", SourceAuto),
		NewsAPIKey:      pkgconfig.GetEnvString("NEWS_API_KEY", ""),
		MockNewsPath:    pkgconfig.GetEnvString("MOCK_NEWS_PATH", "data/mock-news.json"),
		RSSFeedURL:      pkgconfig.GetEnvString("RSS_FEED_URL", ""),
		Schedule:        pkgconfig.GetEnvString("CURATOR_SCHEDULE", "@every 30m"),
		MetricsPort:     pkgconfig.GetEnvInt("CURATOR_METRICS_PORT", 9090),
		ExpandThreshold: pkgconfig.GetEnvInt("CONTENT_EXPAND_THRESHOLD", 0),
	}
}

// ResolveSource reduces "auto" to a concrete source selection.
func (c CuratorConfig) ResolveSource() string {
	if c.NewsSource != SourceAuto {
		return c.NewsSource
	}
	if c.NewsAPIKey != "" {
		return SourceNewsAPI
	}
	return SourceFile
}
