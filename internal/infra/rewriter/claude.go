// Package rewriter expands article content into a longer, reader-friendly
// rendition using Anthropic's Claude API.
package rewriter

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/google/uuid"

	"newscurator/internal/resilience/circuitbreaker"
)

// FallbackText is returned whenever a rewrite cannot be produced. Callers
// render it verbatim, so the rewrite path never surfaces an error upward.
const FallbackText = "⚠️ Could not rewrite content"

const (
	defaultModel     = string(anthropic.ModelClaude3_5HaikuLatest)
	defaultMaxTokens = 1024
	defaultTimeout   = 60 * time.Second

	// Inputs beyond this length are cut before prompting. Articles from the
	// news feeds are far shorter; this guards against abusive payloads.
	maxInputChars = 10000
)

// Claude rewrites article text through the Anthropic Messages API, guarded
// by a circuit breaker. A zero-value API key disables the rewriter.
type Claude struct {
	client  anthropic.Client
	breaker *circuitbreaker.CircuitBreaker
	apiKey  string
	model   string
	logger  *slog.Logger
}

// NewClaude creates a Claude rewriter. An empty apiKey yields a disabled
// rewriter whose Rewrite always returns FallbackText.
func NewClaude(apiKey string, logger *slog.Logger) *Claude {
	if logger == nil {
		logger = slog.Default()
	}
	return &Claude{
		client:  anthropic.NewClient(option.WithAPIKey(apiKey)),
		breaker: circuitbreaker.New(circuitbreaker.ProviderConfig("claude-rewrite")),
		apiKey:  apiKey,
		model:   defaultModel,
		logger:  logger,
	}
}

// Enabled reports whether the rewriter holds a credential.
func (c *Claude) Enabled() bool {
	return c.apiKey != ""
}

// Rewrite expands text into a clear, engaging article rendition. It never
// returns an error: any failure, including a missing credential or an open
// circuit breaker, degrades to FallbackText.
func (c *Claude) Rewrite(ctx context.Context, text string) string {
	if !c.Enabled() {
		return FallbackText
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return FallbackText
	}

	result, err := c.breaker.Execute(func() (any, error) {
		return c.doRewrite(ctx, trimmed)
	})
	if err != nil {
		c.logger.WarnContext(ctx, "rewrite failed, returning fallback",
			slog.String("error", err.Error()),
			slog.String("breaker_state", c.breaker.State().String()),
		)
		return FallbackText
	}

	return result.(string)
}

func (c *Claude) doRewrite(ctx context.Context, text string) (string, error) {
	requestID := uuid.New().String()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if len(text) > maxInputChars {
		text = text[:maxInputChars]
	}

	prompt := "Rewrite the following health news content as a clear, engaging article " +
		"for a general audience. Keep every factual claim intact and do not invent details:\n\n" + text

	start := time.Now()
	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: defaultMaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic api error: %w", err)
	}

	if len(message.Content) == 0 {
		return "", fmt.Errorf("anthropic api returned empty response")
	}
	textBlock, ok := message.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		return "", fmt.Errorf("anthropic api returned unexpected content type")
	}

	rewritten := strings.TrimSpace(textBlock.Text)
	if rewritten == "" {
		return "", fmt.Errorf("anthropic api returned empty text")
	}

	c.logger.InfoContext(ctx, "rewrite completed",
		slog.String("request_id", requestID),
		slog.Int("input_length", len(text)),
		slog.Int("output_length", len(rewritten)),
		slog.Duration("duration", time.Since(start)),
	)
	return rewritten, nil
}
