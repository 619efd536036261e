package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initSourceMetrics() {
	r.SourceLinesSkipped = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "streamtri_source_lines_skipped_total",
			Help: "Input lines skipped for having the wrong number of fields",
		},
		[]string{"source"},
	)

	r.SourceErrorsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "streamtri_source_errors_total",
			Help: "Edge sources that ended with an error",
		},
		[]string{"source"},
	)

	r.RunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "streamtri_runs_total",
			Help: "Ingestion runs by status",
		},
		[]string{"status"},
	)

	r.RunDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "streamtri_run_duration_seconds",
			Help:    "Wall time of one ingestion run",
			Buckets: prometheus.DefBuckets,
		},
	)
}
