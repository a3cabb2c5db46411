package config

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"newscurator/internal/infra/provider"

	"gopkg.in/yaml.v3"
)

// Duration is a yaml-decodable wrapper accepting Go duration strings
// ("30s", "1m30s").
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// InferenceEntry describes a hosted-inference provider in the manifest.
type InferenceEntry struct {
	Name         string   `yaml:"name"`
	Model        string   `yaml:"model"`
	Endpoint     string   `yaml:"endpoint"`
	PromptPrefix string   `yaml:"prompt_prefix"`
	Truncate     int      `yaml:"truncate"`
	Timeout      Duration `yaml:"timeout"`
	RequiresKey  bool     `yaml:"requires_key"`
	Note         string   `yaml:"note"`
}

// ChatEntry describes an OpenAI-compatible chat provider in the manifest.
type ChatEntry struct {
	Name         string   `yaml:"name"`
	Model        string   `yaml:"model"`
	ModelLabel   string   `yaml:"model_label"`
	BaseURL      string   `yaml:"base_url"`
	SystemPrompt string   `yaml:"system_prompt"`
	UserPrefix   string   `yaml:"user_prefix"`
	Truncate     int      `yaml:"truncate"`
	MaxTokens    int      `yaml:"max_tokens"`
	Temperature  float32  `yaml:"temperature"`
	Timeout      Duration `yaml:"timeout"`
}

// ProviderEntry is one element of the manifest's provider list. Exactly one
// of Inference or Chat must be set, matching Type.
type ProviderEntry struct {
	Type      string          `yaml:"type"`
	Inference *InferenceEntry `yaml:"inference,omitempty"`
	Chat      *ChatEntry      `yaml:"chat,omitempty"`
}

// Manifest is the YAML provider-chain description. Order in the file is
// fallback order at runtime.
type Manifest struct {
	Providers []ProviderEntry `yaml:"providers"`
}

// LoadManifest reads and parses a provider manifest from disk.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("read provider manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parse provider manifest: %w", err)
	}
	if len(m.Providers) == 0 {
		return Manifest{}, fmt.Errorf("provider manifest %s lists no providers", path)
	}
	return m, nil
}

// Build converts the manifest into a provider slice, validating every spec.
// Credentials come from the environment config, never the manifest file.
func (m Manifest) Build(cfg GatewayConfig, client *http.Client) ([]provider.Provider, error) {
	providers := make([]provider.Provider, 0, len(m.Providers))

	for i, entry := range m.Providers {
		switch entry.Type {
		case "inference":
			if entry.Inference == nil {
				return nil, fmt.Errorf("manifest provider %d: type inference without inference block", i)
			}
			spec := provider.InferenceSpec{
				Name:         entry.Inference.Name,
				Model:        entry.Inference.Model,
				Endpoint:     entry.Inference.Endpoint,
				PromptPrefix: entry.Inference.PromptPrefix,
				Truncate:     entry.Inference.Truncate,
				Timeout:      time.Duration(entry.Inference.Timeout),
				RequiresKey:  entry.Inference.RequiresKey,
				Note:         entry.Inference.Note,
			}
			if err := spec.Validate(); err != nil {
				return nil, fmt.Errorf("manifest provider %d (%s): %w", i, spec.Name, err)
			}
			providers = append(providers, provider.NewInference(spec, cfg.HuggingFaceKey, client))

		case "chat":
			if entry.Chat == nil {
				return nil, fmt.Errorf("manifest provider %d: type chat without chat block", i)
			}
			spec := provider.ChatSpec{
				Name:         entry.Chat.Name,
				Model:        entry.Chat.Model,
				ModelLabel:   entry.Chat.ModelLabel,
				BaseURL:      entry.Chat.BaseURL,
				SystemPrompt: entry.Chat.SystemPrompt,
				UserPrefix:   entry.Chat.UserPrefix,
				Truncate:     entry.Chat.Truncate,
				MaxTokens:    entry.Chat.MaxTokens,
				Temperature:  entry.Chat.Temperature,
				Timeout:      time.Duration(entry.Chat.Timeout),
			}
			if err := spec.Validate(); err != nil {
				return nil, fmt.Errorf("manifest provider %d (%s): %w", i, spec.Name, err)
			}
			providers = append(providers, provider.NewChat(spec, cfg.TogetherKey))

		default:
			return nil, fmt.Errorf("manifest provider %d: unknown type %q", i, entry.Type)
		}
	}

	return providers, nil
}
