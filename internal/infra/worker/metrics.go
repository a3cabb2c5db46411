// Package worker provides the curator worker's scheduling metrics and its
// metrics HTTP server.
package worker

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks curator batch job execution for Prometheus.
type Metrics struct {
	jobRuns     *prometheus.CounterVec
	jobDuration prometheus.Histogram
	batchSize   prometheus.Gauge
	lastSuccess prometheus.Gauge
}

// NewMetrics creates and registers the curator job metrics on the default
// registry.
func NewMetrics() *Metrics {
	return &Metrics{
		jobRuns: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "curator_job_runs_total",
			Help: "Batch job executions by result.",
		}, []string{"result"}),
		jobDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "curator_job_duration_seconds",
			Help:    "Duration of whole batch jobs.",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		}),
		batchSize: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "curator_batch_size",
			Help: "Number of articles in the most recent batch.",
		}),
		lastSuccess: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "curator_last_success_timestamp_seconds",
			Help: "Unix time of the last successful batch job.",
		}),
	}
}

// RecordRun counts one job execution with the given result label
// ("success" or "failure").
func (m *Metrics) RecordRun(result string) {
	m.jobRuns.WithLabelValues(result).Inc()
}

// RecordDuration observes a whole-job duration.
func (m *Metrics) RecordDuration(d time.Duration) {
	m.jobDuration.Observe(d.Seconds())
}

// RecordBatchSize sets the size of the current batch.
func (m *Metrics) RecordBatchSize(n int) {
	m.batchSize.Set(float64(n))
}

// RecordLastSuccess stamps the last successful run at now.
func (m *Metrics) RecordLastSuccess() {
	m.lastSuccess.SetToCurrentTime()
}
