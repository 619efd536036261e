package metrics

import (
	"net/http"
	"runtime"
	"time"

	"github.com/dd0wney/cluso-streamtri/pkg/triangles"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Edge results used as the "result" label of streamtri_edges_total.
const (
	ResultNew       = "new"
	ResultDuplicate = "duplicate"
	ResultSelfLoop  = "self_loop"
)

// ObserveUpdate records one estimator update. It satisfies triangles.Recorder.
func (r *Registry) ObserveUpdate(stats triangles.UpdateStats) {
	switch {
	case stats.Rejected:
		r.EdgesTotal.WithLabelValues(ResultSelfLoop).Inc()
		return
	case stats.Duplicate:
		r.EdgesTotal.WithLabelValues(ResultDuplicate).Inc()
	default:
		r.EdgesTotal.WithLabelValues(ResultNew).Inc()
	}

	r.WedgesFormedTotal.Add(float64(stats.WedgesFormed))
	r.WedgesClosedTotal.Add(float64(stats.WedgesClosed))
	r.UpdateDuration.Observe(stats.Duration.Seconds())
	r.SetSnapshot(stats.Snapshot)
}

// SetSnapshot copies an estimator snapshot into the gauges.
func (r *Registry) SetSnapshot(s triangles.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.EdgeSampleSize.Set(float64(s.EdgeSampleSize))
	r.WedgeSampleSize.Set(float64(s.SampledWedges))
	r.ClosedWedges.Set(float64(s.ClosedWedges))
	r.TotalWedges.Set(float64(s.TotalWedges))
	r.AdjacencyVertices.Set(float64(s.Vertices))
	r.AdjacencyEdges.Set(float64(s.DistinctEdges))
	r.TransitivityEstimate.Set(s.Transitivity)
	r.TriangleEstimate.Set(s.Triangles)
}

// RecordSkippedLines adds lines a source dropped as malformed.
func (r *Registry) RecordSkippedLines(source string, n int) {
	if n > 0 {
		r.SourceLinesSkipped.WithLabelValues(source).Add(float64(n))
	}
}

// RecordSourceError counts a source that failed mid-stream.
func (r *Registry) RecordSourceError(source string) {
	r.SourceErrorsTotal.WithLabelValues(source).Inc()
}

// RecordRun records a finished ingestion run.
func (r *Registry) RecordRun(status string, duration time.Duration) {
	r.RunsTotal.WithLabelValues(status).Inc()
	r.RunDuration.Observe(duration.Seconds())
}

// UpdateSystemMetrics refreshes uptime, goroutine and memory gauges.
func (r *Registry) UpdateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	r.UptimeSeconds.Set(time.Since(r.startTime).Seconds())
	r.GoRoutines.Set(float64(runtime.NumGoroutine()))
	r.MemoryAllocBytes.Set(float64(m.Alloc))
	r.MemorySysBytes.Set(float64(m.Sys))
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
