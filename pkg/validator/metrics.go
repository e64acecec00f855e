package validator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	validationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ruvalidate_validation_total",
			Help: "Total number of validation runs",
		},
		[]string{"status"}, // pass, warning, fail or error
	)

	validationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ruvalidate_validation_duration_seconds",
			Help:    "Duration of a validation run in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 30},
		},
	)

	// Target check metrics
	targetFilesChecked = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ruvalidate_target_files_checked_total",
			Help: "Total number of target files read",
		},
	)

	targetLinesChecked = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ruvalidate_target_lines_checked_total",
			Help: "Total number of target lines matched against the permitted patterns",
		},
	)

	targetViolationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ruvalidate_target_violations_total",
			Help: "Total number of target lines matching no permitted pattern",
		},
	)

	hintsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ruvalidate_hints_total",
			Help: "Total number of unknown condition keys with a suggested replacement",
		},
	)
)
