package provider_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"newscurator/internal/domain/entity"
	"newscurator/internal/infra/provider"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProvider is a scripted Provider for chain tests.
type stubProvider struct {
	name    string
	enabled bool
	result  entity.SummaryResult
	err     error
	calls   int
}

func (s *stubProvider) Name() string  { return s.name }
func (s *stubProvider) Enabled() bool { return s.enabled }

func (s *stubProvider) Summarize(_ context.Context, _ string) (entity.SummaryResult, error) {
	s.calls++
	if s.err != nil {
		return entity.SummaryResult{}, s.err
	}
	return s.result, nil
}

// recordingMetrics captures metric calls for assertions.
type recordingMetrics struct {
	mu        sync.Mutex
	attempts  map[string][]string
	fallbacks int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{attempts: make(map[string][]string)}
}

func (m *recordingMetrics) RecordAttempt(providerName, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts[providerName] = append(m.attempts[providerName], outcome)
}

func (m *recordingMetrics) RecordDuration(string, time.Duration) {}

func (m *recordingMetrics) RecordFallback() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fallbacks++
}

func fixedEmergency() *provider.Emergency {
	return provider.NewEmergencyWithSelector(func(int) int { return 0 })
}

func TestChain_FirstProviderWins(t *testing.T) {
	first := &stubProvider{
		name:    "primary",
		enabled: true,
		result:  entity.SummaryResult{Summary: "📰 From primary.", Source: "primary"},
	}
	second := &stubProvider{name: "secondary", enabled: true}

	metrics := newRecordingMetrics()
	chain := provider.NewChainWithMetrics(
		[]provider.Provider{first, second}, fixedEmergency(), metrics)

	result := chain.Summarize(context.Background(), "A health article long enough to summarize.")

	assert.Equal(t, "primary", result.Source)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 0, second.calls, "no later provider may be attempted after a success")
	assert.Equal(t, []string{provider.OutcomeSuccess}, metrics.attempts["primary"])
}

func TestChain_FallsThroughOnFailure(t *testing.T) {
	first := &stubProvider{name: "primary", enabled: true, err: errors.New("cold start")}
	second := &stubProvider{
		name:    "secondary",
		enabled: true,
		result:  entity.SummaryResult{Summary: "📰 From secondary.", Source: "secondary"},
	}

	metrics := newRecordingMetrics()
	chain := provider.NewChainWithMetrics(
		[]provider.Provider{first, second}, fixedEmergency(), metrics)

	result := chain.Summarize(context.Background(), "A health article long enough to summarize.")

	assert.Equal(t, "secondary", result.Source)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, []string{provider.OutcomeFailure}, metrics.attempts["primary"])
}

func TestChain_SkipsDisabledProviders(t *testing.T) {
	disabled := &stubProvider{name: "needs-key", enabled: false}
	fallbackProvider := &stubProvider{
		name:    "public",
		enabled: true,
		result:  entity.SummaryResult{Summary: "📰 Public summary.", Source: "public"},
	}

	metrics := newRecordingMetrics()
	chain := provider.NewChainWithMetrics(
		[]provider.Provider{disabled, fallbackProvider}, fixedEmergency(), metrics)

	result := chain.Summarize(context.Background(), "Enough text to be worth summarizing today.")

	assert.Equal(t, "public", result.Source)
	assert.Equal(t, 0, disabled.calls, "disabled provider must never be contacted")
	assert.Equal(t, []string{provider.OutcomeSkipped}, metrics.attempts["needs-key"])
}

func TestChain_EmergencyAfterTotalExhaustion(t *testing.T) {
	down1 := &stubProvider{name: "a", enabled: true, err: errors.New("network error")}
	down2 := &stubProvider{name: "b", enabled: true, err: errors.New("timeout")}

	metrics := newRecordingMetrics()
	chain := provider.NewChainWithMetrics(
		[]provider.Provider{down1, down2}, fixedEmergency(), metrics)

	text := "A major study concluded today. Its findings surprised researchers."
	result := chain.Summarize(context.Background(), text)

	require.NotEmpty(t, result.Summary)
	assert.Equal(t, provider.EmergencySource, result.Source)
	assert.Equal(t, provider.EmergencyNote, result.Note)
	assert.Contains(t, result.Summary, provider.Excerpt(text))
	assert.Equal(t, 1, metrics.fallbacks)
}

func TestChain_EmergencyWhenNoProvidersConfigured(t *testing.T) {
	chain := provider.NewChainWithMetrics(nil, fixedEmergency(), newRecordingMetrics())

	result := chain.Summarize(context.Background(), "Short but valid article text for summarizing.")

	assert.Equal(t, provider.EmergencySource, result.Source)
	assert.NotEmpty(t, result.Summary)
}

func TestChain_BreakerOpenRejectsWithoutCall(t *testing.T) {
	failing := &stubProvider{name: "flaky", enabled: true, err: errors.New("boom")}
	backup := &stubProvider{
		name:    "backup",
		enabled: true,
		result:  entity.SummaryResult{Summary: "ok", Source: "backup"},
	}

	metrics := newRecordingMetrics()
	chain := provider.NewChainWithMetrics(
		[]provider.Provider{failing, backup}, fixedEmergency(), metrics)

	// ProviderConfig trips the breaker after 5 failures at a 60% ratio.
	for i := 0; i < 6; i++ {
		result := chain.Summarize(context.Background(), "text for summarization attempts")
		assert.Equal(t, "backup", result.Source)
	}

	callsBefore := failing.calls
	result := chain.Summarize(context.Background(), "text for summarization attempts")

	assert.Equal(t, "backup", result.Source)
	assert.Equal(t, callsBefore, failing.calls, "open breaker must not invoke the provider")
	assert.Contains(t, metrics.attempts["flaky"], provider.OutcomeRejected)
}

func TestChain_Primary(t *testing.T) {
	disabled := &stubProvider{name: "needs-key", enabled: false}
	active := &stubProvider{name: "public", enabled: true}

	chain := provider.NewChainWithMetrics(
		[]provider.Provider{disabled, active}, fixedEmergency(), newRecordingMetrics())
	assert.Equal(t, "public", chain.Primary())

	empty := provider.NewChainWithMetrics(
		[]provider.Provider{disabled}, fixedEmergency(), newRecordingMetrics())
	assert.Equal(t, provider.EmergencySource, empty.Primary())
}
