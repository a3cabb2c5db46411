// Package config loads gateway and curator configuration from environment
// variables and the optional YAML provider manifest.
package config

import (
	"net/http"
	"time"

	"newscurator/internal/infra/provider"
	pkgconfig "newscurator/pkg/config"
)

// Default endpoints of the built-in provider chain. The ordering encodes a
// preference for quality (abstractive models first) over availability
// (public, unauthenticated last).
const (
	bartEndpoint       = "https://api-inference.huggingface.co/models/facebook/bart-large-cnn"
	distilbartEndpoint = "https://api-inference.huggingface.co/models/sshleifer/distilbart-cnn-12-6"
	pegasusEndpoint    = "https://api-inference.huggingface.co/models/google/pegasus-cnn_dailymail"
	togetherBaseURL    = "https://api.together.xyz/v1"
)

// GatewayConfig holds configuration for the summarization gateway binary.
type GatewayConfig struct {
	// Port is the HTTP listen port.
	Port int

	// HuggingFaceKey authorizes the hosted-inference providers. When empty
	// those providers are skipped, never sent a placeholder token.
	HuggingFaceKey string

	// TogetherKey authorizes the chat-completion provider.
	TogetherKey string

	// ChatModel overrides the chat provider's model identifier.
	ChatModel string

	// ChatBaseURL overrides the chat provider's API base URL, mainly for
	// tests and OpenAI-compatible alternatives.
	ChatBaseURL string

	// AnthropicKey authorizes the /api/rewrite backend. When empty the
	// rewrite endpoint always answers with its fallback string.
	AnthropicKey string

	// ManifestPath optionally points at a YAML provider manifest replacing
	// the built-in chain.
	ManifestPath string

	// RequestTimeout bounds a whole inbound request. It must exceed the
	// slowest single provider timeout plus slack for the rest of the chain.
	RequestTimeout time.Duration

	// MaxBodyBytes limits inbound request bodies.
	MaxBodyBytes int64
}

// LoadGatewayConfig reads gateway configuration from the environment.
// Missing credentials are not an error: the corresponding providers are
// disabled and the fallback chain proceeds without them.
func LoadGatewayConfig() GatewayConfig {
	return GatewayConfig{
		Port:           pkgconfig.GetEnvInt("GATEWAY_PORT", 8080),
		HuggingFaceKey: pkgconfig.GetEnvString("HUGGING_FACE_API_KEY", ""),
		TogetherKey:    pkgconfig.GetEnvString("TOGETHER_API_KEY", ""),
		ChatModel:      pkgconfig.GetEnvString("CHAT_PROVIDER_MODEL", ""),
		ChatBaseURL:    pkgconfig.GetEnvString("CHAT_PROVIDER_BASE_URL", togetherBaseURL),
		AnthropicKey:   pkgconfig.GetEnvString("ANTHROPIC_API_KEY", ""),
		ManifestPath:   pkgconfig.GetEnvString("PROVIDERS_MANIFEST", ""),
		RequestTimeout: pkgconfig.GetEnvDuration("GATEWAY_REQUEST_TIMEOUT", 3*time.Minute),
		MaxBodyBytes:   int64(pkgconfig.GetEnvInt("GATEWAY_MAX_BODY_BYTES", 1<<20)),
	}
}

// DefaultProviders builds the built-in four-provider chain:
//  1. HuggingFace BART (primary abstractive summarizer)
//  2. HuggingFace DistilBART (smaller abstractive model)
//  3. Together AI chat completion (Mixtral)
//  4. HuggingFace Pegasus via the public, unauthenticated endpoint
func (c GatewayConfig) DefaultProviders(client *http.Client) []provider.Provider {
	chatModel := c.ChatModel
	if chatModel == "" {
		chatModel = "mistralai/Mixtral-8x7B-Instruct-v0.1"
	}

	return []provider.Provider{
		provider.NewInference(provider.InferenceSpec{
			Name:         "Hugging Face BART AI",
			Model:        "facebook/bart-large-cnn",
			Endpoint:     bartEndpoint,
			PromptPrefix: "Summarize this health news article in 2-3 sentences: ",
			Truncate:     1024,
			Timeout:      30 * time.Second,
			RequiresKey:  true,
		}, c.HuggingFaceKey, client),
		provider.NewInference(provider.InferenceSpec{
			Name:         "Hugging Face DistilBART",
			Model:        "sshleifer/distilbart-cnn-12-6",
			Endpoint:     distilbartEndpoint,
			PromptPrefix: "Briefly summarize this health news: ",
			Truncate:     800,
			Timeout:      25 * time.Second,
			RequiresKey:  true,
		}, c.HuggingFaceKey, client),
		provider.NewChat(provider.ChatSpec{
			Name:         "Together AI Mixtral",
			Model:        chatModel,
			ModelLabel:   "Mixtral-8x7B",
			BaseURL:      c.ChatBaseURL,
			SystemPrompt: "You are a helpful assistant that summarizes health news articles in 2-3 concise sentences.",
			UserPrefix:   "Summarize this health news: ",
			Truncate:     2000,
			MaxTokens:    150,
			Temperature:  0.7,
			Timeout:      30 * time.Second,
		}, c.TogetherKey),
		provider.NewInference(provider.InferenceSpec{
			Name:         "Google Pegasus AI (Public)",
			Model:        "google/pegasus-cnn_dailymail",
			Endpoint:     pegasusEndpoint,
			PromptPrefix: "summarize: ",
			Truncate:     512,
			Timeout:      25 * time.Second,
			RequiresKey:  false,
			Note:         "Using public AI model",
		}, "", client),
	}
}

// Providers returns the provider chain for this configuration: the YAML
// manifest when configured, otherwise the built-in defaults.
func (c GatewayConfig) Providers(client *http.Client) ([]provider.Provider, error) {
	if c.ManifestPath == "" {
		return c.DefaultProviders(client), nil
	}

	manifest, err := LoadManifest(c.ManifestPath)
	if err != nil {
		return nil, err
	}
	return manifest.Build(c, client)
}
