package triangles

import (
	"fmt"
	"math/rand/v2"
)

// EdgeReservoir keeps a uniform sample of at most capacity edges from
// everything offered to it, duplicates included.
type EdgeReservoir[T comparable] struct {
	capacity int
	items    []Edge[T]
	seen     uint64
	rng      *rand.Rand
}

// NewEdgeReservoir creates a reservoir drawing from rng.
func NewEdgeReservoir[T comparable](capacity int, rng *rand.Rand) (*EdgeReservoir[T], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("edge reservoir capacity %d: %w", capacity, ErrInvalidCapacity)
	}
	return &EdgeReservoir[T]{
		capacity: capacity,
		items:    make([]Edge[T], 0, capacity),
		rng:      rng,
	}, nil
}

// Offer presents e to the reservoir and returns the slot it was written to,
// or -1 if it was not sampled.
func (r *EdgeReservoir[T]) Offer(e Edge[T]) int {
	r.seen++
	slot := reservoirSlot(r.rng, len(r.items), r.capacity, r.seen)
	switch {
	case slot < 0:
	case slot == len(r.items):
		r.items = append(r.items, e)
	default:
		r.items[slot] = e
	}
	return slot
}

// Len returns the number of sampled edges, min(Seen, Capacity).
func (r *EdgeReservoir[T]) Len() int { return len(r.items) }

// Seen returns the number of edges offered.
func (r *EdgeReservoir[T]) Seen() uint64 { return r.seen }

// Capacity returns the fixed capacity.
func (r *EdgeReservoir[T]) Capacity() int { return r.capacity }

// Edges returns a copy of the current sample.
func (r *EdgeReservoir[T]) Edges() []Edge[T] {
	out := make([]Edge[T], len(r.items))
	copy(out, r.items)
	return out
}
