// Package gatewayclient is the HTTP client for the summarization gateway,
// used by the curator to check health and request per-article summaries.
package gatewayclient

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

const (
	// healthTimeout bounds the connectivity probe. It is deliberately short:
	// an unreachable gateway should fail a batch fast, not stall it.
	healthTimeout = 5 * time.Second

	// summarizeTimeout bounds one summarization call. The gateway resolves
	// its whole fallback chain within this window or the article is marked
	// failed and the batch moves on.
	summarizeTimeout = 15 * time.Second
)

// HealthStatus is the gateway's health report.
type HealthStatus struct {
	Status     string `json:"status"`
	Message    string `json:"message"`
	AIProvider string `json:"aiProvider"`
	Timestamp  string `json:"timestamp"`
}

// Client talks to the summarization gateway over HTTP/JSON.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a gateway client for baseURL, e.g. "http://localhost:8080".
// A nil httpClient falls back to a default client; per-call timeouts come
// from request contexts, not the client.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{baseURL: baseURL, http: httpClient}
}

// Health probes GET /api/health. A nil error means the gateway answered
// 200 with status "OK" within the 5-second window.
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", nil)
	if err != nil {
		return HealthStatus{}, fmt.Errorf("build health request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return HealthStatus{}, fmt.Errorf("gateway health check: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return HealthStatus{}, fmt.Errorf("gateway health check: status %d", resp.StatusCode)
	}

	var status HealthStatus
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&status); err != nil {
		return HealthStatus{}, fmt.Errorf("decode health response: %w", err)
	}
	if status.Status != "OK" {
		return status, fmt.Errorf("gateway reported status %q", status.Status)
	}
	return status, nil
}

// Summarize posts text to POST /api/summarize and returns the gateway's
// result. The gateway itself never fails a well-formed request; errors here
// mean the gateway was unreachable, slow, or answered a non-200.
func (c *Client) Summarize(ctx context.Context, text string) (entity.SummaryResult, error) {
	ctx, cancel := context.WithTimeout(ctx, summarizeTimeout)
	defer cancel()

	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return entity.SummaryResult{}, fmt.Errorf("encode summarize request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/summarize", bytes.NewReader(payload))
	if err != nil {
		return entity.SummaryResult{}, fmt.Errorf("build summarize request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return entity.SummaryResult{}, fmt.Errorf("gateway summarize: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return entity.SummaryResult{}, fmt.Errorf("gateway summarize: status %d", resp.StatusCode)
	}

	var result entity.SummaryResult
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&result); err != nil {
		return entity.SummaryResult{}, fmt.Errorf("decode summarize response: %w", err)
	}
	if result.Summary == "" {
		return entity.SummaryResult{}, fmt.Errorf("gateway summarize: empty summary in response")
	}
	return result, nil
}
