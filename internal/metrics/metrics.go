package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// OutcomeSuccess labels completed analyses.
	OutcomeSuccess = "success"
	// OutcomeError labels analyses that failed before producing a report.
	OutcomeError = "error"
)

var (
	analysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "leakage_engine",
			Name:      "analyses_total",
			Help:      "Total number of analyses handled, partitioned by outcome.",
		},
		[]string{"outcome"},
	)

	analysisDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "leakage_engine",
			Name:      "analysis_seconds",
			Help:      "Analysis latency in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 8, 10},
		},
	)

	findingsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "leakage_engine",
			Name:      "findings_total",
			Help:      "Leakage findings emitted, partitioned by category.",
		},
		[]string{"category"},
	)

	alertsTriggeredTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "leakage_engine",
			Name:      "alerts_triggered_total",
			Help:      "Alert rules triggered, partitioned by severity.",
		},
		[]string{"severity"},
	)
)

// Register attaches leakage-engine collectors to the supplied Prometheus registerer.
func Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		analysesTotal,
		analysisDurationSeconds,
		findingsTotal,
		alertsTriggeredTotal,
	}

	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}

// ObserveAnalysis records an analysis duration and outcome label.
func ObserveAnalysis(duration time.Duration, outcome string) {
	label := outcome
	if label != OutcomeError {
		label = OutcomeSuccess
	}
	analysesTotal.WithLabelValues(label).Inc()
	if duration < 0 {
		duration = 0
	}
	analysisDurationSeconds.Observe(duration.Seconds())
}

// CountFinding increments the per-category finding counter.
func CountFinding(category string) {
	if category == "" {
		category = "uncategorized"
	}
	findingsTotal.WithLabelValues(category).Inc()
}

// CountAlert increments the per-severity triggered alert counter.
func CountAlert(severity string) {
	if severity == "" {
		severity = "unknown"
	}
	alertsTriggeredTotal.WithLabelValues(severity).Inc()
}
