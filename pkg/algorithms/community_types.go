package algorithms

import "golang.org/x/exp/constraints"

// Component is one connected component of an undirected graph.
type Component[T constraints.Ordered] struct {
	ID      int
	Nodes   []T
	Size    int
	Edges   int
	Density float64 // Edges / C(Size, 2)
}

// ComponentsResult partitions every vertex into its component.
type ComponentsResult[T constraints.Ordered] struct {
	Components    []*Component[T]
	NodeComponent map[T]int // vertex -> component ID
}

// Largest returns the biggest component, or nil for an empty graph.
func (r *ComponentsResult[T]) Largest() *Component[T] {
	var best *Component[T]
	for _, c := range r.Components {
		if best == nil || c.Size > best.Size {
			best = c
		}
	}
	return best
}
