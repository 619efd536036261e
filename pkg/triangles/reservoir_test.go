package triangles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEdgeReservoir_RejectsNonPositiveCapacity(t *testing.T) {
	for _, c := range []int{0, -1} {
		_, err := NewEdgeReservoir[int](c, newRand(1))
		assert.ErrorIs(t, err, ErrInvalidCapacity, "capacity %d", c)
	}
	_, err := NewWedgeReservoir[int](0, newRand(1))
	assert.ErrorIs(t, err, ErrInvalidCapacity)
}

func TestEdgeReservoir_FillsThenHoldsCapacity(t *testing.T) {
	r, err := NewEdgeReservoir[int](4, newRand(7))
	require.NoError(t, err)

	for i := 1; i <= 50; i++ {
		slot := r.Offer(Edge[int]{U: i, V: i + 1})
		if i <= 4 {
			assert.Equal(t, i-1, slot, "fill phase appends in order")
		} else {
			assert.Less(t, slot, 4)
		}
		assert.Equal(t, min(i, 4), r.Len())
		assert.Equal(t, uint64(i), r.Seen())
	}
	assert.Equal(t, 4, r.Capacity())
	assert.Len(t, r.Edges(), 4)
}

func TestEdgeReservoir_EdgesIsACopy(t *testing.T) {
	r, err := NewEdgeReservoir[int](2, newRand(1))
	require.NoError(t, err)
	r.Offer(Edge[int]{U: 1, V: 2})

	edges := r.Edges()
	edges[0] = Edge[int]{U: 9, V: 9}
	assert.Equal(t, Edge[int]{U: 1, V: 2}, r.Edges()[0])
}

// Every stream position must end up resident with probability k/t. The last
// position is the one an off-by-one in the draw bound biases first.
func TestEdgeReservoir_InclusionProbability(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping Monte Carlo test in short mode")
	}

	const (
		capacity = 5
		stream   = 20
		runs     = 20000
	)
	hits := make([]int, stream)
	for run := 0; run < runs; run++ {
		r, err := NewEdgeReservoir[int](capacity, newRand(uint64(run)))
		require.NoError(t, err)
		for i := 0; i < stream; i++ {
			r.Offer(Edge[int]{U: i, V: -1})
		}
		for _, e := range r.Edges() {
			hits[e.U]++
		}
	}

	want := float64(capacity) / float64(stream)
	for i, h := range hits {
		got := float64(h) / runs
		assert.InDelta(t, want, got, 0.02, "position %d", i)
	}
}

func TestWedgeReservoir_CloseByMatchesOpenEndsOnly(t *testing.T) {
	r, err := NewWedgeReservoir[int](10, newRand(1))
	require.NoError(t, err)

	r.Offer(Wedge[int]{A: 1, B: 3})
	r.Offer(Wedge[int]{A: 2, B: 4})
	r.Offer(Wedge[int]{A: 3, B: 5})

	assert.Equal(t, 0, r.CloseBy(1, 5))
	assert.Equal(t, 1, r.CloseBy(3, 1), "orientation of the closing edge does not matter")
	assert.Equal(t, 0, r.CloseBy(1, 3), "already closed")
	assert.Equal(t, 1, r.ClosedCount())

	sample := r.Sample()
	require.Len(t, sample, 3)
	assert.True(t, sample[0].Closed)
	assert.False(t, sample[1].Closed)
	assert.False(t, sample[2].Closed)
}

// A closed flag only resets when its slot receives a new wedge.
func TestWedgeReservoir_ClosedFlagsMonotonicPerOccupant(t *testing.T) {
	const capacity = 8
	r, err := NewWedgeReservoir[int](capacity, newRand(42))
	require.NoError(t, err)
	rng := newRand(99)

	prev := make([]bool, 0, capacity)
	for step := 0; step < 5000; step++ {
		overwritten := -1
		if rng.IntN(2) == 0 {
			overwritten = r.Offer(Wedge[int]{A: rng.IntN(6), B: rng.IntN(6)})
		} else {
			r.CloseBy(rng.IntN(6), rng.IntN(6))
		}

		sample := r.Sample()
		closed := 0
		for i, s := range sample {
			if s.Closed {
				closed++
			}
			if i < len(prev) && prev[i] && !s.Closed {
				assert.Equal(t, i, overwritten, "slot %d reset without being overwritten at step %d", i, step)
			}
		}
		require.Equal(t, closed, r.ClosedCount(), "incremental closed count drifted at step %d", step)
		require.Equal(t, min(int(r.Total()), capacity), r.Len())

		prev = prev[:0]
		for _, s := range sample {
			prev = append(prev, s.Closed)
		}
	}
}

func TestReservoirSlot_DrawsOverItemsSeen(t *testing.T) {
	rng := newRand(3)
	assert.Equal(t, 2, reservoirSlot(rng, 2, 3, 3), "below capacity appends")

	// With capacity == seen every draw lands inside the reservoir.
	for i := 0; i < 100; i++ {
		slot := reservoirSlot(rng, 3, 3, 3)
		assert.GreaterOrEqual(t, slot, 0)
		assert.Less(t, slot, 3)
	}
}
