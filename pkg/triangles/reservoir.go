package triangles

import "math/rand/v2"

// reservoirSlot implements the placement step of Algorithm R. seen counts
// every item offered so far including the current one, so after seen offers
// each item is resident with probability capacity/seen. It returns the slot
// to write, or -1 when the item is discarded.
func reservoirSlot(rng *rand.Rand, size, capacity int, seen uint64) int {
	if size < capacity {
		return size
	}
	r := rng.Uint64N(seen)
	if r < uint64(capacity) {
		return int(r)
	}
	return -1
}

// newRand builds the estimator's private generator from a seed.
func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
