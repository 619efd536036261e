package algorithms

import "golang.org/x/exp/constraints"

// TriangleCountResult holds exact triangle and wedge counts for a graph.
type TriangleCountResult[T constraints.Ordered] struct {
	PerNode                map[T]int
	GlobalCount            int
	Wedges                 int
	Transitivity           float64
	ClusteringCoefficients map[T]float64
	AverageClustering      float64
	TopNodes               []RankedNode[T]
}

// ClosedFraction is the share of wedges whose open ends are adjacent,
// GlobalCount / Wedges. It is what a wedge sample estimates.
func (r *TriangleCountResult[T]) ClosedFraction() float64 {
	if r.Wedges == 0 {
		return 0
	}
	return float64(r.GlobalCount) / float64(r.Wedges)
}

// CountTriangles counts triangles by brute force. For each vertex u it checks
// every pair (v, w) of u's neighbors for adjacency, so each triangle is seen
// once per corner and GlobalCount = sum(PerNode) / 3. Wedges is the number of
// 2-paths, sum over u of C(deg(u), 2), and Transitivity = 3 * GlobalCount /
// Wedges.
func CountTriangles[T constraints.Ordered](g *Graph[T]) *TriangleCountResult[T] {
	vertices := g.Vertices()

	perNode := make(map[T]int, len(vertices))
	coefficients := make(map[T]float64, len(vertices))
	wedges := 0
	for _, u := range vertices {
		neighbors := g.Neighbors(u)
		k := len(neighbors)

		count := 0
		for i := 0; i < k; i++ {
			for j := i + 1; j < k; j++ {
				if g.HasEdge(neighbors[i], neighbors[j]) {
					count++
				}
			}
		}
		perNode[u] = count

		possible := k * (k - 1) / 2
		wedges += possible
		if possible > 0 {
			coefficients[u] = float64(count) / float64(possible)
		} else {
			coefficients[u] = 0
		}
	}

	total := 0
	for _, c := range perNode {
		total += c
	}
	globalCount := total / 3

	var transitivity, average float64
	if wedges > 0 {
		transitivity = 3 * float64(globalCount) / float64(wedges)
	}
	if len(vertices) > 0 {
		sum := 0.0
		for _, c := range coefficients {
			sum += c
		}
		average = sum / float64(len(vertices))
	}

	scores := make(map[T]float64, len(perNode))
	for id, c := range perNode {
		scores[id] = float64(c)
	}

	return &TriangleCountResult[T]{
		PerNode:                perNode,
		GlobalCount:            globalCount,
		Wedges:                 wedges,
		Transitivity:           transitivity,
		ClusteringCoefficients: coefficients,
		AverageClustering:      average,
		TopNodes:               findTopNodes(scores, 10),
	}
}
