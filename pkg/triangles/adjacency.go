package triangles

import "iter"

// AdjacencyIndex maps every vertex seen so far to its neighbor set. It only
// grows: edges are never removed, so its size tracks the distinct edges of
// the whole stream rather than the reservoir capacities.
type AdjacencyIndex[T comparable] struct {
	neighbors map[T]map[T]struct{}
	edges     int
}

// NewAdjacencyIndex creates an empty index.
func NewAdjacencyIndex[T comparable]() *AdjacencyIndex[T] {
	return &AdjacencyIndex[T]{
		neighbors: make(map[T]map[T]struct{}),
	}
}

// Insert records the undirected edge (u, v). It returns false if the edge was
// already present, in which case the index is unchanged.
func (a *AdjacencyIndex[T]) Insert(u, v T) bool {
	if a.ContainsEdge(u, v) {
		return false
	}
	a.set(u)[v] = struct{}{}
	a.set(v)[u] = struct{}{}
	a.edges++
	return true
}

// ContainsEdge reports whether u and v are adjacent.
func (a *AdjacencyIndex[T]) ContainsEdge(u, v T) bool {
	_, ok := a.neighbors[u][v]
	return ok
}

// Neighbors yields the current neighbors of v. The sequence reads the live
// set, so the index must not be mutated while it is being ranged over.
func (a *AdjacencyIndex[T]) Neighbors(v T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for n := range a.neighbors[v] {
			if !yield(n) {
				return
			}
		}
	}
}

// Degree returns the number of distinct neighbors of v.
func (a *AdjacencyIndex[T]) Degree(v T) int {
	return len(a.neighbors[v])
}

// VertexCount returns the number of vertices with at least one edge.
func (a *AdjacencyIndex[T]) VertexCount() int {
	return len(a.neighbors)
}

// EdgeCount returns the number of distinct edges inserted.
func (a *AdjacencyIndex[T]) EdgeCount() int {
	return a.edges
}

func (a *AdjacencyIndex[T]) set(v T) map[T]struct{} {
	s, ok := a.neighbors[v]
	if !ok {
		s = make(map[T]struct{})
		a.neighbors[v] = s
	}
	return s
}
