package edgesource

import "context"

// RecordingSource keeps a copy of every edge its inner source yields, for
// runs that need a second pass over the stream.
type RecordingSource struct {
	inner Source
	edges []Edge
}

// Record wraps src.
func Record(src Source) *RecordingSource {
	return &RecordingSource{inner: src}
}

func (r *RecordingSource) Next(ctx context.Context) (Edge, error) {
	e, err := r.inner.Next(ctx)
	if err == nil {
		r.edges = append(r.edges, e)
	}
	return e, err
}

// Edges returns the edges seen so far. The slice is shared; do not modify.
func (r *RecordingSource) Edges() []Edge { return r.edges }

// Skipped forwards to the inner source when it counts skipped lines.
func (r *RecordingSource) Skipped() int {
	if sc, ok := r.inner.(SkipCounter); ok {
		return sc.Skipped()
	}
	return 0
}

func (r *RecordingSource) Close() error { return r.inner.Close() }
