// Package metrics exposes prometheus instrumentation for the variant
// generation pipeline.
package metrics

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	apiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "replicaforge_api_request_duration_seconds",
			Help:    "API request duration in seconds by model",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10), // 0.1s to ~100s
		},
		[]string{"model", "status"},
	)

	unitOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "replicaforge_units_total",
			Help: "Generation units by final outcome",
		},
		[]string{"status"}, // "success", "parse_error", "api_error"
	)

	parseRepairs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "replicaforge_parse_repairs_total",
			Help: "JSON repair outcomes by strategy",
		},
		[]string{"strategy"},
	)

	unitDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "replicaforge_unit_duration_seconds",
			Help:    "End-to-end duration of one generation unit",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10), // 0.5s to ~500s
		},
	)

	tokensConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "replicaforge_tokens_total",
			Help: "Tokens consumed by direction",
		},
		[]string{"direction"}, // "input", "output"
	)

	activeWorkers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "replicaforge_active_workers",
			Help: "Number of workers currently processing units",
		},
	)
)

// Collector provides convenience methods for recording pipeline metrics.
type Collector struct {
	logger *slog.Logger
}

// NewCollector creates a metrics collector.
func NewCollector(logger *slog.Logger) *Collector {
	return &Collector{logger: logger}
}

// RecordAPIRequest records an API request duration.
func (c *Collector) RecordAPIRequest(model string, duration time.Duration, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	apiRequestDuration.WithLabelValues(model, status).Observe(duration.Seconds())
}

// RecordUnitOutcome counts one finished unit.
func (c *Collector) RecordUnitOutcome(status string) {
	unitOutcomes.WithLabelValues(status).Inc()
}

// RecordParseRepair counts a successful repair by the strategy that landed it.
func (c *Collector) RecordParseRepair(strategy string) {
	parseRepairs.WithLabelValues(strategy).Inc()
}

// RecordUnitDuration records the wall time of one unit.
func (c *Collector) RecordUnitDuration(duration time.Duration) {
	unitDuration.Observe(duration.Seconds())
}

// RecordTokens adds to the consumed token counters.
func (c *Collector) RecordTokens(input, output int) {
	tokensConsumed.WithLabelValues("input").Add(float64(input))
	tokensConsumed.WithLabelValues("output").Add(float64(output))
}

// SetActiveWorkers sets the worker gauge.
func (c *Collector) SetActiveWorkers(count int) {
	activeWorkers.Set(float64(count))
}
