// Package metrics exposes prometheus instrumentation for the monitor.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CyclesTotal counts completed measurement cycles, including failed ones.
	CyclesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "netmon_cycles_total",
		Help: "Total number of measurement cycles run.",
	})

	// CycleErrors counts cycles that ended in an unexpected error and
	// triggered the backoff interval.
	CycleErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "netmon_cycle_errors_total",
		Help: "Total number of cycles that failed unexpectedly.",
	})

	// CollectorFailures counts per-collector measurement failures.
	CollectorFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "netmon_collector_failures_total",
		Help: "Total number of failed measurements per collector.",
	}, []string{"collector"})

	// CycleDuration observes how long a full cycle takes.
	CycleDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "netmon_cycle_duration_seconds",
		Help:    "Duration of a full measurement cycle.",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
	})
)
