package algorithms

import (
	"container/heap"
	"sort"

	"golang.org/x/exp/constraints"
)

// RankedNode pairs a vertex with a score.
type RankedNode[T constraints.Ordered] struct {
	NodeID T
	Score  float64
}

// less orders by score, then by descending ID so that the heap evicts the
// larger ID first and ties resolve toward smaller IDs.
func (a RankedNode[T]) less(b RankedNode[T]) bool {
	if a.Score != b.Score {
		return a.Score < b.Score
	}
	return a.NodeID > b.NodeID
}

type rankedNodeHeap[T constraints.Ordered] []RankedNode[T]

func (h rankedNodeHeap[T]) Len() int           { return len(h) }
func (h rankedNodeHeap[T]) Less(i, j int) bool { return h[i].less(h[j]) }
func (h rankedNodeHeap[T]) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *rankedNodeHeap[T]) Push(x any)        { *h = append(*h, x.(RankedNode[T])) }
func (h *rankedNodeHeap[T]) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// findTopNodes returns the n highest-scoring vertices, highest first, using
// a bounded min-heap.
func findTopNodes[T constraints.Ordered](scores map[T]float64, n int) []RankedNode[T] {
	if n <= 0 {
		return nil
	}

	h := make(rankedNodeHeap[T], 0, n)
	for id, score := range scores {
		rn := RankedNode[T]{NodeID: id, Score: score}
		if h.Len() < n {
			heap.Push(&h, rn)
		} else if h[0].less(rn) {
			heap.Pop(&h)
			heap.Push(&h, rn)
		}
	}

	out := []RankedNode[T](h)
	sort.Slice(out, func(i, j int) bool { return out[j].less(out[i]) })
	return out
}
