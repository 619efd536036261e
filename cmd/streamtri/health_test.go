package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dd0wney/cluso-streamtri/pkg/config"
	"github.com/dd0wney/cluso-streamtri/pkg/edgesource"
	"github.com/dd0wney/cluso-streamtri/pkg/health"
	"github.com/dd0wney/cluso-streamtri/pkg/pipeline"
	"github.com/dd0wney/cluso-streamtri/pkg/pubsub"
	"github.com/dd0wney/cluso-streamtri/pkg/triangles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngestionTracker_FollowsRun(t *testing.T) {
	broker := pubsub.NewPubSub[pipeline.Progress](0)
	defer broker.Shutdown()

	tracker := &ingestionTracker{}
	stopped, err := tracker.follow(context.Background(), broker)
	require.NoError(t, err)
	assert.True(t, tracker.State().Started.IsZero())

	est, err := triangles.New[uint64](triangles.DefaultConfig())
	require.NoError(t, err)

	tracker.start()
	_, err = pipeline.Run(context.Background(), edgesource.FromEdges(edgesource.Complete(6)), est, pipeline.Options{
		ProgressEvery: 5,
		Broker:        broker,
	})
	require.NoError(t, err)
	<-stopped

	state := tracker.State()
	assert.False(t, state.Started.IsZero())
	assert.True(t, state.Finished)
	assert.NoError(t, state.Err)
	assert.Equal(t, uint64(15), state.EdgesSeen)
	assert.False(t, state.LastProgress.Before(state.Started))
}

func TestIngestionTracker_RecordsFailure(t *testing.T) {
	broker := pubsub.NewPubSub[pipeline.Progress](0)
	defer broker.Shutdown()

	tracker := &ingestionTracker{}
	stopped, err := tracker.follow(context.Background(), broker)
	require.NoError(t, err)

	boom := errors.New("stream reset")
	broker.Publish(pipeline.TopicDone, pipeline.Progress{Final: true, Err: boom})
	<-stopped

	assert.ErrorIs(t, tracker.State().Err, boom)
}

func TestIngestionTracker_StopsOnShutdown(t *testing.T) {
	broker := pubsub.NewPubSub[pipeline.Progress](0)

	tracker := &ingestionTracker{}
	stopped, err := tracker.follow(context.Background(), broker)
	require.NoError(t, err)

	broker.Shutdown()
	<-stopped
	assert.False(t, tracker.State().Finished)

	_, err = tracker.follow(context.Background(), broker)
	assert.ErrorIs(t, err, pubsub.ErrShutdown)
}

func TestNewHealthChecker_Readiness(t *testing.T) {
	cfg := config.Default()
	cfg.Estimator.EdgeCapacity = 3
	est, err := triangles.New[uint64](cfg.Estimator)
	require.NoError(t, err)
	tracker := &ingestionTracker{}
	hc := newHealthChecker("run-9", "file", cfg, tracker, est)

	mux := http.NewServeMux()
	hc.Mount(mux, "/healthz")
	ready := func() int {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz/ready", nil))
		return rec.Code
	}

	assert.Equal(t, http.StatusServiceUnavailable, ready(), "not started")

	tracker.start()
	require.NoError(t, est.Update(0, 1))
	assert.Equal(t, http.StatusServiceUnavailable, ready(), "edge reservoir filling")

	require.NoError(t, est.Update(1, 2))
	require.NoError(t, est.Update(2, 0))
	assert.Equal(t, http.StatusOK, ready())

	tracker.apply(pipeline.Progress{Final: true, Err: errors.New("boom")})
	assert.Equal(t, http.StatusServiceUnavailable, ready())

	resp := hc.Evaluate(health.EndpointHealth)
	assert.Equal(t, health.StatusUnhealthy, resp.Status)
	assert.Contains(t, resp.Checks, "adjacency")
	assert.Contains(t, resp.Checks, "memory")
	require.NotNil(t, resp.Run)
	assert.Equal(t, "run-9", resp.Run.ID)
	assert.Equal(t, uint64(3), resp.Run.EdgesSeen)
	assert.Equal(t, 1.0, resp.Run.Transitivity)

	live := httptest.NewRecorder()
	mux.ServeHTTP(live, httptest.NewRequest(http.MethodGet, "/healthz/live", nil))
	assert.Equal(t, http.StatusOK, live.Code)
}
