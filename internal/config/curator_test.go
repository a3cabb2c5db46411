package config_test

import (
	"testing"

	"newscurator/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestCuratorConfig_ResolveSource(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.CuratorConfig
		want string
	}{
		{
			name: "explicit rss wins",
			cfg:  config.CuratorConfig{NewsSource: config.SourceRSS, NewsAPIKey: "key"},
			want: config.SourceRSS,
		},
		{
			name: "auto with key selects newsapi",
			cfg:  config.CuratorConfig{NewsSource: config.SourceAuto, NewsAPIKey: "key"},
			want: config.SourceNewsAPI,
		},
		{
			name: "auto without key falls back to file",
			cfg:  config.CuratorConfig{NewsSource: config.SourceAuto},
			want: config.SourceFile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.ResolveSource())
		})
	}
}

func TestLoadCuratorConfig_Defaults(t *testing.T) {
	cfg := config.LoadCuratorConfig()

	assert.Equal(t, "http://localhost:8080", cfg.GatewayURL)
	assert.Equal(t, config.SourceAuto, cfg.NewsSource)
	assert.Equal(t, "@every 30m", cfg.Schedule)
	assert.Equal(t, 9090, cfg.MetricsPort)
}

func TestLoadCuratorConfig_EnvOverrides(t *testing.T) {
	t.Setenv("GATEWAY_URL", "http://gateway:8080")
	t.Setenv("NEWS_SOURCE", "rss")
	t.Setenv("RSS_FEED_URL", "https://example.com/health.rss")

	cfg := config.LoadCuratorConfig()
	assert.Equal(t, "http://gateway:8080", cfg.GatewayURL)
	assert.Equal(t, config.SourceRSS, cfg.NewsSource)
	assert.Equal(t, "https://example.com/health.rss", cfg.RSSFeedURL)
}
