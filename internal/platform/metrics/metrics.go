package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method", "status"},
	)

	ChargesCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "attendance_charges_created_total",
			Help: "Total attendance charges created, by type",
		},
		[]string{"charge_type"},
	)

	ScansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "attendance_scans_total",
			Help: "Daily attendance scans executed, by outcome",
		},
		[]string{"status"},
	)

	ScoreRecalcsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "performance_recalcs_total",
			Help: "Performance score recalculations, by outcome",
		},
		[]string{"status"},
	)

	AutoClockoutsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "attendance_auto_clockouts_total",
			Help: "Sessions force-closed by the auto-clockout sweep",
		},
	)
)
