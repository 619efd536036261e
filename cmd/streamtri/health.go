package main

import (
	"context"
	"sync"
	"time"

	"github.com/dd0wney/cluso-streamtri/pkg/config"
	"github.com/dd0wney/cluso-streamtri/pkg/health"
	"github.com/dd0wney/cluso-streamtri/pkg/pipeline"
	"github.com/dd0wney/cluso-streamtri/pkg/pubsub"
	"github.com/dd0wney/cluso-streamtri/pkg/triangles"
)

// stallAfter is how long the ingestion may go without a progress message
// before it reports degraded.
const stallAfter = 2 * time.Minute

// ingestionTracker follows pipeline progress on the broker and keeps the
// latest state for the health checks.
type ingestionTracker struct {
	mu    sync.Mutex
	state health.IngestionState
}

func (t *ingestionTracker) start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.Started = time.Now()
}

func (t *ingestionTracker) State() health.IngestionState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

func (t *ingestionTracker) apply(p pipeline.Progress) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.LastProgress = time.Now()
	t.state.EdgesSeen = p.Snapshot.EdgesSeen
	if p.Final {
		t.state.Finished = true
		t.state.Err = p.Err
	}
}

// follow subscribes to both pipeline topics and applies every message until
// the done message arrives or ctx ends. The returned channel closes when it
// stops.
func (t *ingestionTracker) follow(ctx context.Context, broker *pubsub.PubSub[pipeline.Progress]) (<-chan struct{}, error) {
	progress, err := broker.Subscribe(ctx, pipeline.TopicProgress)
	if err != nil {
		return nil, err
	}
	done, err := broker.Subscribe(ctx, pipeline.TopicDone)
	if err != nil {
		progress.Unsubscribe()
		return nil, err
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		defer progress.Unsubscribe()
		defer done.Unsubscribe()
		for {
			select {
			case p, ok := <-progress.Channel():
				if !ok {
					return
				}
				t.apply(p)
			case p, ok := <-done.Channel():
				if ok {
					t.apply(p)
				}
				return
			}
		}
	}()
	return stopped, nil
}

// newHealthChecker wires the checks for one run. Readiness needs a healthy
// ingestion and a full edge reservoir; liveness only needs the process.
func newHealthChecker(runID, source string, cfg config.RunConfig, tracker *ingestionTracker, est *triangles.Estimator[uint64]) *health.HealthChecker {
	hc := health.NewHealthChecker()
	hc.SetRun(health.RunInfo{ID: runID, Source: source, Snapshot: est.Snapshot})

	hc.Register("ingestion", health.EndpointHealth|health.EndpointReady, health.IngestionCheck(tracker.State, stallAfter))
	hc.Register("sample", health.EndpointHealth|health.EndpointReady,
		health.SampleCheck(est.Snapshot, tracker.State, cfg.Estimator.EdgeCapacity, cfg.Estimator.WedgeCapacity))
	hc.Register("adjacency", health.EndpointHealth, health.AdjacencyCheck(est.Snapshot, cfg.MaxVertices))
	hc.Register("memory", health.EndpointHealth, health.MemoryCheck(health.RuntimeMemory))
	hc.Register("process", health.EndpointLive, health.ProcessCheck(time.Now()))
	return hc
}
