package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"newscurator/internal/domain/entity"
)

// InferenceSpec describes a hosted-inference summarization endpoint
// (HuggingFace-style): a single "inputs" payload answered by a list of
// candidate summaries.
type InferenceSpec struct {
	// Name is the provider label reported as the result source.
	Name string `yaml:"name"`

	// Model is the model identifier reported in the result.
	Model string `yaml:"model"`

	// Endpoint is the full inference URL.
	Endpoint string `yaml:"endpoint"`

	// PromptPrefix is prepended to the (truncated) article text.
	PromptPrefix string `yaml:"prompt_prefix"`

	// Truncate is the maximum number of input runes sent upstream.
	Truncate int `yaml:"truncate"`

	// Timeout bounds a single attempt against this provider.
	Timeout time.Duration `yaml:"timeout"`

	// RequiresKey marks endpoints that need a bearer credential. Public
	// endpoints leave this false and send no Authorization header.
	RequiresKey bool `yaml:"requires_key"`

	// Note is an optional diagnostic annotation copied into results.
	Note string `yaml:"note"`
}

// Validate checks the spec for the fields every attempt needs.
func (s InferenceSpec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("provider name is required")
	}
	if s.Endpoint == "" {
		return fmt.Errorf("provider %s: endpoint is required", s.Name)
	}
	if s.Truncate <= 0 {
		return fmt.Errorf("provider %s: truncate must be positive, got %d", s.Name, s.Truncate)
	}
	if s.Timeout <= 0 {
		return fmt.Errorf("provider %s: timeout must be positive, got %v", s.Name, s.Timeout)
	}
	return nil
}

// Inference is a Provider backed by a hosted-inference endpoint.
type Inference struct {
	spec   InferenceSpec
	apiKey string
	client *http.Client
}

// NewInference creates an inference provider from its spec. The apiKey may
// be empty; if the spec requires a key the provider reports itself disabled.
// A nil client falls back to a plain http.Client — the per-attempt timeout
// comes from the spec, not the client.
func NewInference(spec InferenceSpec, apiKey string, client *http.Client) *Inference {
	if client == nil {
		client = &http.Client{}
	}
	return &Inference{spec: spec, apiKey: apiKey, client: client}
}

// Name implements Provider.
func (p *Inference) Name() string { return p.spec.Name }

// Enabled implements Provider.
func (p *Inference) Enabled() bool {
	return !p.spec.RequiresKey || p.apiKey != ""
}

// inferenceRequest is the JSON payload for hosted-inference endpoints.
type inferenceRequest struct {
	Inputs string `json:"inputs"`
}

// inferenceCandidate is one element of the inference response array.
type inferenceCandidate struct {
	SummaryText string `json:"summary_text"`
}

// Summarize implements Provider. The success condition is a non-empty
// summary_text in the first response candidate; anything else is an error.
func (p *Inference) Summarize(ctx context.Context, text string) (entity.SummaryResult, error) {
	ctx, cancel := context.WithTimeout(ctx, p.spec.Timeout)
	defer cancel()

	payload := inferenceRequest{
		Inputs: p.spec.PromptPrefix + truncate(text, p.spec.Truncate),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return entity.SummaryResult{}, fmt.Errorf("marshal inference request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.spec.Endpoint, bytes.NewReader(body))
	if err != nil {
		return entity.SummaryResult{}, fmt.Errorf("create inference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.spec.RequiresKey {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return entity.SummaryResult{}, fmt.Errorf("execute inference request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return entity.SummaryResult{}, fmt.Errorf("read inference response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return entity.SummaryResult{}, fmt.Errorf("inference endpoint returned status %d: %s",
			resp.StatusCode, string(respBody))
	}

	var candidates []inferenceCandidate
	if err := json.Unmarshal(respBody, &candidates); err != nil {
		return entity.SummaryResult{}, fmt.Errorf("decode inference response: %w", err)
	}
	if len(candidates) == 0 || candidates[0].SummaryText == "" {
		return entity.SummaryResult{}, fmt.Errorf("unexpected response format from %s", p.spec.Name)
	}

	return entity.SummaryResult{
		Summary: decorate(candidates[0].SummaryText),
		Source:  p.spec.Name,
		Model:   p.spec.Model,
		Note:    p.spec.Note,
	}, nil
}
