package triangles

import (
	"sync"
	"time"

	"github.com/dd0wney/cluso-streamtri/pkg/logging"
)

// Estimator maintains the edge and wedge reservoirs for a single edge stream
// and answers transitivity and triangle-count estimates at any point.
//
// Update is single-writer: each call holds the write lock for the whole
// per-edge update. Estimate and Snapshot take the read lock, so they never
// observe a half-applied edge.
type Estimator[T comparable] struct {
	mu     sync.RWMutex
	config Config
	adj    *AdjacencyIndex[T]
	edges  *EdgeReservoir[T]
	wedges *WedgeReservoir[T]

	logger   logging.Logger
	recorder Recorder
}

// New validates cfg and returns an empty estimator.
func New[T comparable](cfg Config, opts ...Option) (*Estimator[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := options{logger: logging.NewNopLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = newRand(cfg.Seed)
	}

	edges, err := NewEdgeReservoir[T](cfg.EdgeCapacity, o.rng)
	if err != nil {
		return nil, err
	}
	wedges, err := NewWedgeReservoir[T](cfg.WedgeCapacity, o.rng)
	if err != nil {
		return nil, err
	}

	e := &Estimator[T]{
		config:   cfg,
		adj:      NewAdjacencyIndex[T](),
		edges:    edges,
		wedges:   wedges,
		logger:   o.logger,
		recorder: o.recorder,
	}
	e.logger.Info("estimator created",
		logging.Capacity("edge", cfg.EdgeCapacity),
		logging.Capacity("wedge", cfg.WedgeCapacity),
	)
	return e, nil
}

// Config returns the construction parameters.
func (e *Estimator[T]) Config() Config {
	return e.config
}

// UpdateEdge is Update for an Edge value.
func (e *Estimator[T]) UpdateEdge(edge Edge[T]) error {
	return e.Update(edge.U, edge.V)
}

// Update processes one edge from the stream. It returns ErrSelfLoop for u == v
// and leaves the state untouched; every other pair is accepted. A repeated
// edge is counted by the edge reservoir but forms and closes no wedges.
func (e *Estimator[T]) Update(u, v T) error {
	if u == v {
		e.logger.Debug("self-loop rejected", logging.Any("vertex", u))
		if e.recorder != nil {
			e.recorder.ObserveUpdate(UpdateStats{Rejected: true, Snapshot: e.Snapshot()})
		}
		return ErrSelfLoop
	}

	start := time.Now()
	e.mu.Lock()
	stats := e.apply(u, v)
	stats.Snapshot = e.snapshotLocked()
	e.mu.Unlock()
	stats.Duration = time.Since(start)

	if e.recorder != nil {
		e.recorder.ObserveUpdate(stats)
	}
	return nil
}

// apply performs the per-edge update. Caller holds the write lock.
func (e *Estimator[T]) apply(u, v T) UpdateStats {
	var stats UpdateStats

	isNew := e.adj.Insert(u, v)
	stats.Duplicate = !isNew
	if isNew {
		stats.WedgesClosed = e.wedges.CloseBy(u, v)
	}

	e.edges.Offer(Edge[T]{U: u, V: v})

	if isNew {
		stats.WedgesFormed = e.formWedges(u, v) + e.formWedges(v, u)
	}
	return stats
}

// formWedges offers a wedge (n, far) for every neighbor n of center other
// than far, and returns how many were formed.
func (e *Estimator[T]) formWedges(center, far T) int {
	n := 0
	for nb := range e.adj.Neighbors(center) {
		if nb == far {
			continue
		}
		e.wedges.Offer(Wedge[T]{A: nb, B: far})
		n++
	}
	return n
}

// SampledEdges returns a copy of the edge reservoir.
func (e *Estimator[T]) SampledEdges() []Edge[T] {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.edges.Edges()
}

// SampledWedges returns a copy of the wedge reservoir with closed flags.
func (e *Estimator[T]) SampledWedges() []SampledWedge[T] {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.wedges.Sample()
}
