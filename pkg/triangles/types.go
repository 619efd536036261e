package triangles

import "time"

// Edge is an unordered pair of vertices as it arrives on the stream.
type Edge[T comparable] struct {
	U T
	V T
}

// IsLoop reports whether both endpoints are the same vertex.
func (e Edge[T]) IsLoop() bool {
	return e.U == e.V
}

// Wedge is a 2-path identified by its two open ends. The center is implied
// by the adjacency relation that formed it and is not stored.
type Wedge[T comparable] struct {
	A T
	B T
}

// JoinedBy reports whether the edge (u, v) is exactly the edge connecting
// the wedge's open ends.
func (w Wedge[T]) JoinedBy(u, v T) bool {
	return (w.A == u && w.B == v) || (w.A == v && w.B == u)
}

// SampledWedge is a wedge held in the reservoir together with its closed flag.
type SampledWedge[T comparable] struct {
	Wedge  Wedge[T]
	Closed bool
}

// Snapshot is a consistent view of the estimator state taken under a single
// read lock.
type Snapshot struct {
	EdgesSeen      uint64
	DistinctEdges  int
	Vertices       int
	EdgeSampleSize int
	TotalWedges    uint64
	SampledWedges  int
	ClosedWedges   int
	Transitivity   float64
	Triangles      float64
}

// UpdateStats describes the effect of one Update call.
type UpdateStats struct {
	Rejected     bool // self-loop, state untouched
	Duplicate    bool // edge already in the adjacency index
	WedgesFormed int
	WedgesClosed int
	Duration     time.Duration
	Snapshot     Snapshot
}

// Recorder observes every update. Implementations must be safe for use from
// the goroutine calling Update.
type Recorder interface {
	ObserveUpdate(stats UpdateStats)
}
