package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"newscurator/internal/domain/entity"
)

// ChatSpec describes a chat-completion style summarization service
// (OpenAI-compatible API, e.g. Together AI). The article text is wrapped as
// a system+user turn pair requesting a short summary.
type ChatSpec struct {
	// Name is the provider label reported as the result source.
	Name string `yaml:"name"`

	// Model is the chat model identifier sent in the request. The short
	// form reported in results is ModelLabel (falls back to Model).
	Model      string `yaml:"model"`
	ModelLabel string `yaml:"model_label"`

	// BaseURL is the OpenAI-compatible API base URL.
	BaseURL string `yaml:"base_url"`

	// SystemPrompt is the fixed system turn.
	SystemPrompt string `yaml:"system_prompt"`

	// UserPrefix is prepended to the (truncated) article text in the user turn.
	UserPrefix string `yaml:"user_prefix"`

	// Truncate is the maximum number of input runes sent upstream.
	Truncate int `yaml:"truncate"`

	// MaxTokens caps the completion length.
	MaxTokens int `yaml:"max_tokens"`

	// Temperature controls sampling randomness.
	Temperature float32 `yaml:"temperature"`

	// Timeout bounds a single attempt against this provider.
	Timeout time.Duration `yaml:"timeout"`
}

// Validate checks the spec for the fields every attempt needs.
func (s ChatSpec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("provider name is required")
	}
	if s.Model == "" {
		return fmt.Errorf("provider %s: model is required", s.Name)
	}
	if s.Truncate <= 0 {
		return fmt.Errorf("provider %s: truncate must be positive, got %d", s.Name, s.Truncate)
	}
	if s.MaxTokens <= 0 {
		return fmt.Errorf("provider %s: max tokens must be positive, got %d", s.Name, s.MaxTokens)
	}
	if s.Timeout <= 0 {
		return fmt.Errorf("provider %s: timeout must be positive, got %v", s.Name, s.Timeout)
	}
	return nil
}

// Chat is a Provider backed by an OpenAI-compatible chat-completion API.
// Chat completions always require a bearer credential.
type Chat struct {
	spec    ChatSpec
	enabled bool
	client  *openai.Client
}

// NewChat creates a chat-completion provider. An empty apiKey disables the
// provider; the chain skips it without contacting the service.
func NewChat(spec ChatSpec, apiKey string) *Chat {
	cfg := openai.DefaultConfig(apiKey)
	if spec.BaseURL != "" {
		cfg.BaseURL = spec.BaseURL
	}
	return &Chat{
		spec:    spec,
		enabled: apiKey != "",
		client:  openai.NewClientWithConfig(cfg),
	}
}

// Name implements Provider.
func (p *Chat) Name() string { return p.spec.Name }

// Enabled implements Provider.
func (p *Chat) Enabled() bool { return p.enabled }

// Summarize implements Provider. Unlike the inference providers, chat output
// is returned verbatim (trimmed), without the newspaper marker.
func (p *Chat) Summarize(ctx context.Context, text string) (entity.SummaryResult, error) {
	ctx, cancel := context.WithTimeout(ctx, p.spec.Timeout)
	defer cancel()

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.spec.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: p.spec.SystemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: p.spec.UserPrefix + truncate(text, p.spec.Truncate),
			},
		},
		MaxTokens:   p.spec.MaxTokens,
		Temperature: p.spec.Temperature,
	})
	if err != nil {
		return entity.SummaryResult{}, fmt.Errorf("chat completion error: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return entity.SummaryResult{}, fmt.Errorf("unexpected response format from %s", p.spec.Name)
	}

	label := p.spec.ModelLabel
	if label == "" {
		label = p.spec.Model
	}

	return entity.SummaryResult{
		Summary: strings.TrimSpace(resp.Choices[0].Message.Content),
		Source:  p.spec.Name,
		Model:   label,
	}, nil
}
