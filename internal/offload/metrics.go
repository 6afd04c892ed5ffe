package offload

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	migrationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "motiond",
			Subsystem: "offload",
			Name:      "migrations_total",
			Help:      "Total host-to-accelerator component migrations",
		},
	)

	evictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "motiond",
			Subsystem: "offload",
			Name:      "evictions_total",
			Help:      "Total component evictions by reason",
		},
		[]string{"reason"},
	)

	residentBytesGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "motiond",
			Subsystem: "offload",
			Name:      "resident_bytes",
			Help:      "Bytes currently resident in accelerator memory (gpu + migrating)",
		},
	)

	acquireWaitSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "motiond",
			Subsystem: "offload",
			Name:      "acquire_wait_seconds",
			Help:      "Time spent in Acquire, including eviction and migration",
			Buckets:   prometheus.DefBuckets,
		},
	)
)

func init() {
	prometheus.MustRegister(migrationsTotal, evictionsTotal, residentBytesGauge, acquireWaitSeconds)
}
