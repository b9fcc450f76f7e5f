package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains Prometheus metrics for validation passes. Construct
// at most one per process: promauto registers with the default
// registry.
type Metrics struct {
	passes       *prometheus.CounterVec
	issues       *prometheus.CounterVec
	rulesSkipped *prometheus.CounterVec
	passDuration prometheus.Histogram
}

// NewMetrics creates a new Metrics instance with Prometheus collectors.
func NewMetrics() *Metrics {
	return &Metrics{
		passes: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "meridian_validation_passes_total",
				Help: "Total number of validation passes, by outcome",
			},
			[]string{"result"},
		),

		issues: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "meridian_validation_issues_total",
				Help: "Total number of validation issues produced, by severity",
			},
			[]string{"severity"},
		),

		rulesSkipped: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "meridian_rules_skipped_total",
				Help: "Total number of rules skipped during validation",
			},
			[]string{"reason"},
		),

		passDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "meridian_validation_duration_seconds",
				Help:    "Duration of validation passes in seconds",
				Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14), // 100µs to ~1.6s
			},
		),
	}
}

// RecordPass records a completed validation pass.
func (m *Metrics) RecordPass(result *ValidationResult) {
	if m == nil {
		return
	}
	outcome := "valid"
	if !result.IsValid {
		outcome = "invalid"
	}
	m.passes.WithLabelValues(outcome).Inc()
	m.issues.WithLabelValues(string(SeverityError)).Add(float64(len(result.Errors)))
	m.issues.WithLabelValues(string(SeverityWarning)).Add(float64(len(result.Warnings)))
	m.issues.WithLabelValues(string(SeveritySuggestion)).Add(float64(len(result.Suggestions)))
	m.passDuration.Observe(result.Duration.Seconds())
}

// RecordSkip records a rule skipped for the given reason
// ("structural" or "parse_error").
func (m *Metrics) RecordSkip(reason string) {
	if m == nil {
		return
	}
	m.rulesSkipped.WithLabelValues(reason).Inc()
}
