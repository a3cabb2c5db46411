package provider

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Attempt outcomes recorded per provider.
const (
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
	OutcomeSkipped  = "skipped"
	OutcomeRejected = "rejected" // circuit breaker open
)

// ChainMetricsRecorder abstracts metrics recording for the fallback chain so
// tests can inject a mock instead of Prometheus.
type ChainMetricsRecorder interface {
	// RecordAttempt counts one provider attempt with its outcome.
	RecordAttempt(provider, outcome string)

	// RecordDuration records the time spent in one provider attempt.
	RecordDuration(provider string, duration time.Duration)

	// RecordFallback counts a request that fell through to the emergency
	// template generator.
	RecordFallback()
}

// PrometheusChainMetrics implements ChainMetricsRecorder using Prometheus.
type PrometheusChainMetrics struct {
	attempts  *prometheus.CounterVec
	durations *prometheus.HistogramVec
	fallbacks prometheus.Counter
}

var (
	chainMetricsInstance *PrometheusChainMetrics
	chainMetricsOnce     sync.Once
)

// NewPrometheusChainMetrics returns the process-wide chain metrics recorder.
// A singleton avoids duplicate registration across chains and tests.
func NewPrometheusChainMetrics() *PrometheusChainMetrics {
	chainMetricsOnce.Do(func() {
		chainMetricsInstance = &PrometheusChainMetrics{
			attempts: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "summarize_provider_attempts_total",
				Help: "Provider attempts by outcome (success, failure, skipped, rejected)",
			}, []string{"provider", "outcome"}),
			durations: promauto.NewHistogramVec(prometheus.HistogramOpts{
				Name:    "summarize_provider_duration_seconds",
				Help:    "Time spent per provider attempt",
				Buckets: prometheus.ExponentialBuckets(0.25, 2, 9),
			}, []string{"provider"}),
			fallbacks: promauto.NewCounter(prometheus.CounterOpts{
				Name: "summarize_emergency_fallback_total",
				Help: "Requests answered by the local emergency template generator",
			}),
		}
	})
	return chainMetricsInstance
}

// RecordAttempt implements ChainMetricsRecorder.
func (p *PrometheusChainMetrics) RecordAttempt(provider, outcome string) {
	p.attempts.WithLabelValues(provider, outcome).Inc()
}

// RecordDuration implements ChainMetricsRecorder.
func (p *PrometheusChainMetrics) RecordDuration(provider string, duration time.Duration) {
	p.durations.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordFallback implements ChainMetricsRecorder.
func (p *PrometheusChainMetrics) RecordFallback() {
	p.fallbacks.Inc()
}
