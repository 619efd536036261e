package triangles

// estimate converts a sampled closed fraction into transitivity and rescales
// it by the wedge population into a triangle count. Each triangle is closed
// by exactly one of its three wedges, hence the factor of 3 in both steps.
func estimate(closed, sampled int, totalWedges uint64) (transitivity, triangles float64) {
	if sampled > 0 {
		transitivity = 3 * float64(closed) / float64(sampled)
	}
	if totalWedges > 0 {
		triangles = transitivity * float64(totalWedges) / 3
	}
	return transitivity, triangles
}

// Estimate returns the current transitivity and triangle-count estimates.
// Before any update both are exactly 0.
func (e *Estimator[T]) Estimate() (transitivity, triangles float64) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return estimate(e.wedges.ClosedCount(), e.wedges.Len(), e.wedges.Total())
}

// Snapshot returns every counter and both estimates from one consistent state.
func (e *Estimator[T]) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snapshotLocked()
}

func (e *Estimator[T]) snapshotLocked() Snapshot {
	s := Snapshot{
		EdgesSeen:      e.edges.Seen(),
		DistinctEdges:  e.adj.EdgeCount(),
		Vertices:       e.adj.VertexCount(),
		EdgeSampleSize: e.edges.Len(),
		TotalWedges:    e.wedges.Total(),
		SampledWedges:  e.wedges.Len(),
		ClosedWedges:   e.wedges.ClosedCount(),
	}
	s.Transitivity, s.Triangles = estimate(s.ClosedWedges, s.SampledWedges, s.TotalWedges)
	return s
}
