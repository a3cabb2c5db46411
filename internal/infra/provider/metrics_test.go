package provider_test

import (
	"testing"
	"time"

	"newscurator/internal/infra/provider"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gatherFamily(t *testing.T, name string) *dto.MetricFamily {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() == name {
			return family
		}
	}
	return nil
}

func TestPrometheusChainMetrics_Singleton(t *testing.T) {
	first := provider.NewPrometheusChainMetrics()
	second := provider.NewPrometheusChainMetrics()
	assert.Same(t, first, second, "repeated construction must not re-register collectors")
}

func TestPrometheusChainMetrics_RecordsAttempts(t *testing.T) {
	m := provider.NewPrometheusChainMetrics()
	m.RecordAttempt("metrics-test-provider", provider.OutcomeFailure)
	m.RecordAttempt("metrics-test-provider", provider.OutcomeFailure)
	m.RecordDuration("metrics-test-provider", 120*time.Millisecond)
	m.RecordFallback()

	attempts := gatherFamily(t, "summarize_provider_attempts_total")
	require.NotNil(t, attempts)

	var found *dto.Metric
	for _, metric := range attempts.GetMetric() {
		labels := map[string]string{}
		for _, pair := range metric.GetLabel() {
			labels[pair.GetName()] = pair.GetValue()
		}
		want := map[string]string{
			"provider": "metrics-test-provider",
			"outcome":  provider.OutcomeFailure,
		}
		if cmp.Diff(want, labels) == "" {
			found = metric
			break
		}
	}
	require.NotNil(t, found, "expected a series for the test provider's failures")
	assert.GreaterOrEqual(t, found.GetCounter().GetValue(), 2.0)

	durations := gatherFamily(t, "summarize_provider_duration_seconds")
	require.NotNil(t, durations)

	fallbacks := gatherFamily(t, "summarize_emergency_fallback_total")
	require.NotNil(t, fallbacks)
	require.Len(t, fallbacks.GetMetric(), 1)
	assert.GreaterOrEqual(t, fallbacks.GetMetric()[0].GetCounter().GetValue(), 1.0)
}
