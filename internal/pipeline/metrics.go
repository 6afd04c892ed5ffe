package pipeline

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	stageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "motiond",
			Subsystem: "pipeline",
			Name:      "stage_duration_seconds",
			Help:      "Wall time spent in each generation stage",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 15),
		},
		[]string{"stage"},
	)

	generatedFrames = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "motiond",
			Subsystem: "pipeline",
			Name:      "generated_frames",
			Help:      "Frames per completed generation",
			Buckets:   prometheus.LinearBuckets(0, 60, 11),
		},
	)
)

func init() {
	prometheus.MustRegister(stageDuration, generatedFrames)
}

// observeStage records one stage's wall time.
func observeStage(stage string, d time.Duration) {
	stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}
