package edgesource

import (
	"context"
	"io"
	"math/rand/v2"
)

// SliceSource replays an in-memory edge list.
type SliceSource struct {
	edges []Edge
	pos   int
}

func FromEdges(edges []Edge) *SliceSource {
	return &SliceSource{edges: edges}
}

func (s *SliceSource) Next(ctx context.Context) (Edge, error) {
	if err := ctx.Err(); err != nil {
		return Edge{}, err
	}
	if s.pos >= len(s.edges) {
		return Edge{}, io.EOF
	}
	e := s.edges[s.pos]
	s.pos++
	return e, nil
}

func (s *SliceSource) Close() error { return nil }

// Path returns 0-1, 1-2, ..., (n-2)-(n-1).
func Path(n int) []Edge {
	var edges []Edge
	for i := 1; i < n; i++ {
		edges = append(edges, Edge{U: uint64(i - 1), V: uint64(i)})
	}
	return edges
}

// Cycle closes Path(n) with (n-1)-0. n must be at least 3.
func Cycle(n int) []Edge {
	if n < 3 {
		return Path(n)
	}
	return append(Path(n), Edge{U: uint64(n - 1), V: 0})
}

// Star connects center 0 to leaves 1..n.
func Star(n int) []Edge {
	edges := make([]Edge, 0, n)
	for i := 1; i <= n; i++ {
		edges = append(edges, Edge{U: 0, V: uint64(i)})
	}
	return edges
}

// Complete returns every pair of K_n.
func Complete(n int) []Edge {
	var edges []Edge
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			edges = append(edges, Edge{U: uint64(i), V: uint64(j)})
		}
	}
	return edges
}

// DisjointTriangles returns k vertex-disjoint triangles.
func DisjointTriangles(k int) []Edge {
	edges := make([]Edge, 0, 3*k)
	for i := 0; i < k; i++ {
		a := uint64(3 * i)
		edges = append(edges,
			Edge{U: a, V: a + 1},
			Edge{U: a + 1, V: a + 2},
			Edge{U: a + 2, V: a},
		)
	}
	return edges
}

// ErdosRenyi samples G(n, p) and returns its edges in random order.
func ErdosRenyi(n int, p float64, rng *rand.Rand) []Edge {
	var edges []Edge
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if rng.Float64() < p {
				edges = append(edges, Edge{U: uint64(i), V: uint64(j)})
			}
		}
	}
	rng.Shuffle(len(edges), func(i, j int) {
		edges[i], edges[j] = edges[j], edges[i]
	})
	return edges
}
