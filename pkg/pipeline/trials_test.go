package pipeline

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/dd0wney/cluso-streamtri/pkg/edgesource"
	"github.com/dd0wney/cluso-streamtri/pkg/triangles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunTrials_ExactWhenNothingEvicted(t *testing.T) {
	edges := edgesource.ErdosRenyi(20, 0.3, rand.New(rand.NewPCG(3, 4)))
	exact := ExactBaseline(edges)

	summary, err := RunTrials(context.Background(), edges, TrialsOptions{
		Trials:  6,
		Workers: 3,
		Config:  triangles.Config{EdgeCapacity: 10_000, WedgeCapacity: 10_000, Seed: 1},
	})
	require.NoError(t, err)

	assert.Equal(t, 6, summary.Trials)
	assert.Len(t, summary.Transitivity, 6)
	assert.InDelta(t, exact.Transitivity, summary.MeanTransitivity, 1e-9)
	assert.InDelta(t, float64(exact.GlobalCount), summary.MeanTriangles, 1e-6)
	assert.InDelta(t, 0, summary.StdTransitivity, 1e-9)
}

func TestRunTrials_SpreadUnderSampling(t *testing.T) {
	edges := edgesource.ErdosRenyi(60, 0.2, rand.New(rand.NewPCG(5, 6)))
	exact := ExactBaseline(edges)
	require.Positive(t, exact.Transitivity)

	summary, err := RunTrials(context.Background(), edges, TrialsOptions{
		Trials:  40,
		Workers: 4,
		Config:  triangles.Config{EdgeCapacity: 50, WedgeCapacity: 200, Seed: 7},
	})
	require.NoError(t, err)

	assert.Positive(t, summary.StdTransitivity)
	assert.InDelta(t, exact.Transitivity, summary.MeanTransitivity, 0.1)
}

func TestRunTrials_SingleTrial(t *testing.T) {
	summary, err := RunTrials(context.Background(), edgesource.DisjointTriangles(3), TrialsOptions{
		Config: triangles.DefaultConfig(),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Trials)
	assert.Equal(t, 1.0, summary.MeanTransitivity)
	assert.Equal(t, 3.0, summary.MeanTriangles)
	assert.Zero(t, summary.StdTriangles)
}

func TestRunTrials_Errors(t *testing.T) {
	_, err := RunTrials(context.Background(), nil, TrialsOptions{Trials: 2})
	assert.ErrorIs(t, err, triangles.ErrInvalidCapacity)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = RunTrials(ctx, edgesource.Path(5), TrialsOptions{Trials: 2, Config: triangles.DefaultConfig()})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExactBaseline(t *testing.T) {
	edges := append(edgesource.Complete(4), edgesource.Edge{U: 2, V: 2}, edgesource.Edge{U: 1, V: 0})
	exact := ExactBaseline(edges)

	assert.Equal(t, 4, exact.GlobalCount)
	assert.Equal(t, 12, exact.Wedges)
	assert.Equal(t, 1.0, exact.Transitivity)
	require.Len(t, exact.Components.Components, 1)
	assert.Equal(t, 4, exact.Components.Largest().Size)
}
