package health

import (
	"runtime"
	"time"

	"github.com/dd0wney/cluso-streamtri/pkg/triangles"
)

// ProcessCheck always passes while the process can answer. It reports the
// goroutine count and process uptime.
func ProcessCheck(started time.Time) CheckFunc {
	return func() Check {
		return Check{
			Name:    "process",
			Status:  StatusHealthy,
			Message: "Serving",
			Details: map[string]any{
				"goroutines":     runtime.NumGoroutine(),
				"uptime_seconds": time.Since(started).Seconds(),
			},
		}
	}
}

// IngestionCheck reports on the edge stream feeding the estimator. A run that
// has not started or has failed is unhealthy; one with no progress for
// stallAfter is degraded. A zero stallAfter disables stall detection.
func IngestionCheck(getState func() IngestionState, stallAfter time.Duration) CheckFunc {
	return func() Check {
		check := Check{
			Name:    "ingestion",
			Details: make(map[string]any),
		}

		state := getState()
		check.Details["edges_seen"] = state.EdgesSeen
		check.Details["finished"] = state.Finished

		last := state.LastProgress
		if last.Before(state.Started) {
			last = state.Started
		}

		switch {
		case state.Err != nil:
			check.Status = StatusUnhealthy
			check.Message = state.Err.Error()
		case state.Started.IsZero():
			check.Status = StatusUnhealthy
			check.Message = "Waiting for edge source"
		case state.Finished:
			check.Status = StatusHealthy
			check.Message = "Stream complete"
		case stallAfter > 0 && time.Since(last) > stallAfter:
			check.Status = StatusDegraded
			check.Message = "No progress from edge source"
			check.Details["idle_seconds"] = time.Since(last).Seconds()
		default:
			check.Status = StatusHealthy
			check.Message = "Ingesting"
		}

		return check
	}
}

// AdjacencyCheck watches the adjacency index, the one structure that grows
// with the stream. It is degraded once more than maxVertices vertices are
// tracked; a non-positive maxVertices only reports sizes.
func AdjacencyCheck(getSnapshot func() triangles.Snapshot, maxVertices int) CheckFunc {
	return func() Check {
		check := Check{
			Name:    "adjacency",
			Details: make(map[string]any),
		}

		s := getSnapshot()
		check.Details["vertices"] = s.Vertices
		check.Details["distinct_edges"] = s.DistinctEdges
		check.Details["edge_sample"] = s.EdgeSampleSize
		check.Details["wedge_sample"] = s.SampledWedges

		if maxVertices > 0 && s.Vertices > maxVertices {
			check.Status = StatusDegraded
			check.Message = "Adjacency index above vertex limit"
		} else {
			check.Status = StatusHealthy
			check.Message = "Adjacency index within limits"
		}

		return check
	}
}

// SampleCheck reports whether the estimate is backed by a full edge
// reservoir. Until edgeCapacity edges have been sampled it is degraded,
// unless the stream has already ended.
func SampleCheck(getSnapshot func() triangles.Snapshot, getState func() IngestionState, edgeCapacity, wedgeCapacity int) CheckFunc {
	return func() Check {
		check := Check{
			Name:    "sample",
			Details: make(map[string]any),
		}

		s := getSnapshot()
		check.Details["edge_fill"] = fill(s.EdgeSampleSize, edgeCapacity)
		check.Details["wedge_fill"] = fill(s.SampledWedges, wedgeCapacity)
		check.Details["closed_wedges"] = s.ClosedWedges

		switch {
		case s.EdgeSampleSize >= edgeCapacity:
			check.Status = StatusHealthy
			check.Message = "Edge reservoir full"
		case getState().Finished:
			check.Status = StatusHealthy
			check.Message = "Stream ended before the edge reservoir filled"
		default:
			check.Status = StatusDegraded
			check.Message = "Edge reservoir filling"
		}

		return check
	}
}

func fill(n, capacity int) float64 {
	if capacity <= 0 {
		return 0
	}
	return float64(n) / float64(capacity)
}

// MemoryCheck creates a health check for memory usage
func MemoryCheck(getUsage func() (alloc, sys uint64)) CheckFunc {
	return func() Check {
		check := Check{
			Name:    "memory",
			Details: make(map[string]any),
		}

		alloc, sys := getUsage()

		check.Details["alloc_bytes"] = alloc
		check.Details["sys_bytes"] = sys

		usagePercent := 0.0
		if sys > 0 {
			usagePercent = float64(alloc) / float64(sys) * 100
		}

		if usagePercent > 90 {
			check.Status = StatusDegraded
			check.Message = "High memory usage"
		} else {
			check.Status = StatusHealthy
			check.Message = "Memory usage normal"
		}

		return check
	}
}

// RuntimeMemory reads heap and system bytes from the Go runtime.
func RuntimeMemory() (alloc, sys uint64) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Alloc, m.Sys
}
