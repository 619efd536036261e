package triangles

import (
	"fmt"
	"math/rand/v2"
)

// WedgeReservoir keeps a uniform sample of at most capacity wedges out of all
// wedges ever formed, with a closed flag per slot. A flag only turns true
// through CloseBy and only goes back to false when its slot is overwritten
// by a newly sampled wedge.
type WedgeReservoir[T comparable] struct {
	capacity    int
	wedges      []Wedge[T]
	closed      []bool
	closedCount int
	total       uint64
	rng         *rand.Rand
}

// NewWedgeReservoir creates a reservoir drawing from rng.
func NewWedgeReservoir[T comparable](capacity int, rng *rand.Rand) (*WedgeReservoir[T], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("wedge reservoir capacity %d: %w", capacity, ErrInvalidCapacity)
	}
	return &WedgeReservoir[T]{
		capacity: capacity,
		wedges:   make([]Wedge[T], 0, capacity),
		closed:   make([]bool, 0, capacity),
		rng:      rng,
	}, nil
}

// Offer counts w toward the wedge total and samples it as an open wedge.
// It returns the slot written, or -1.
func (r *WedgeReservoir[T]) Offer(w Wedge[T]) int {
	r.total++
	slot := reservoirSlot(r.rng, len(r.wedges), r.capacity, r.total)
	switch {
	case slot < 0:
	case slot == len(r.wedges):
		r.wedges = append(r.wedges, w)
		r.closed = append(r.closed, false)
	default:
		if r.closed[slot] {
			r.closedCount--
		}
		r.wedges[slot] = w
		r.closed[slot] = false
	}
	return slot
}

// CloseBy marks every open sampled wedge whose open ends are joined by the
// edge (u, v) and returns how many flags changed. The scan is O(capacity).
func (r *WedgeReservoir[T]) CloseBy(u, v T) int {
	n := 0
	for i, w := range r.wedges {
		if !r.closed[i] && w.JoinedBy(u, v) {
			r.closed[i] = true
			n++
		}
	}
	r.closedCount += n
	return n
}

// Len returns the number of sampled wedges, min(Total, Capacity).
func (r *WedgeReservoir[T]) Len() int { return len(r.wedges) }

// Total returns the number of wedges ever offered.
func (r *WedgeReservoir[T]) Total() uint64 { return r.total }

// ClosedCount returns the number of sampled wedges flagged closed.
func (r *WedgeReservoir[T]) ClosedCount() int { return r.closedCount }

// Capacity returns the fixed capacity.
func (r *WedgeReservoir[T]) Capacity() int { return r.capacity }

// Sample returns a copy of the sampled wedges with their flags.
func (r *WedgeReservoir[T]) Sample() []SampledWedge[T] {
	out := make([]SampledWedge[T], len(r.wedges))
	for i, w := range r.wedges {
		out[i] = SampledWedge[T]{Wedge: w, Closed: r.closed[i]}
	}
	return out
}
