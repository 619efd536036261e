package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initEstimatorMetrics() {
	r.EdgesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "streamtri_edges_total",
			Help: "Edges offered to the estimator by result (new, duplicate, self_loop)",
		},
		[]string{"result"},
	)

	r.WedgesFormedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "streamtri_wedges_total",
			Help: "Wedges formed by new edges",
		},
	)

	r.WedgesClosedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "streamtri_wedges_closed_total",
			Help: "Sampled wedges closed by an incoming edge",
		},
	)

	r.EdgeSampleSize = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "streamtri_edge_sample_size",
			Help: "Edges currently held in the edge reservoir",
		},
	)

	r.WedgeSampleSize = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "streamtri_wedge_sample_size",
			Help: "Wedges currently held in the wedge reservoir",
		},
	)

	r.ClosedWedges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "streamtri_closed_wedges",
			Help: "Sampled wedges currently flagged closed",
		},
	)

	r.TotalWedges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "streamtri_total_wedges",
			Help: "Running count of wedges formed over the whole stream",
		},
	)

	r.AdjacencyVertices = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "streamtri_adjacency_vertices",
			Help: "Vertices in the adjacency index",
		},
	)

	r.AdjacencyEdges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "streamtri_adjacency_edges",
			Help: "Distinct edges in the adjacency index",
		},
	)

	r.TransitivityEstimate = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "streamtri_transitivity_estimate",
			Help: "Current transitivity estimate",
		},
	)

	r.TriangleEstimate = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "streamtri_triangle_estimate",
			Help: "Current triangle count estimate",
		},
	)

	r.UpdateDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "streamtri_update_duration_seconds",
			Help:    "Time spent applying one edge",
			Buckets: prometheus.ExponentialBuckets(1e-7, 4, 12),
		},
	)
}
