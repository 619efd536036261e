package algorithms

import (
	"slices"

	"golang.org/x/exp/constraints"
)

// Graph is a fully materialized undirected simple graph. It is the exact
// baseline the streaming estimator is checked against, so it keeps every
// edge in memory.
type Graph[T constraints.Ordered] struct {
	adj   map[T]map[T]struct{}
	edges int
}

// NewGraph creates an empty graph.
func NewGraph[T constraints.Ordered]() *Graph[T] {
	return &Graph[T]{adj: make(map[T]map[T]struct{})}
}

// AddEdge inserts the undirected edge (u, v). Self-loops and repeated edges
// are ignored; the return value reports whether the graph changed.
func (g *Graph[T]) AddEdge(u, v T) bool {
	if u == v || g.HasEdge(u, v) {
		return false
	}
	g.neighborSet(u)[v] = struct{}{}
	g.neighborSet(v)[u] = struct{}{}
	g.edges++
	return true
}

// HasEdge reports whether u and v are adjacent.
func (g *Graph[T]) HasEdge(u, v T) bool {
	_, ok := g.adj[u][v]
	return ok
}

// Vertices returns every vertex in ascending order.
func (g *Graph[T]) Vertices() []T {
	out := make([]T, 0, len(g.adj))
	for v := range g.adj {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// Neighbors returns the neighbors of v in ascending order.
func (g *Graph[T]) Neighbors(v T) []T {
	out := make([]T, 0, len(g.adj[v]))
	for n := range g.adj[v] {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// Degree returns the number of neighbors of v.
func (g *Graph[T]) Degree(v T) int { return len(g.adj[v]) }

// VertexCount returns the number of vertices with at least one edge.
func (g *Graph[T]) VertexCount() int { return len(g.adj) }

// EdgeCount returns the number of distinct edges.
func (g *Graph[T]) EdgeCount() int { return g.edges }

func (g *Graph[T]) neighborSet(v T) map[T]struct{} {
	s, ok := g.adj[v]
	if !ok {
		s = make(map[T]struct{})
		g.adj[v] = s
	}
	return s
}
