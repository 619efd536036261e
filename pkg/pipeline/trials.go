package pipeline

import (
	"context"
	"errors"

	"github.com/dd0wney/cluso-streamtri/pkg/algorithms"
	"github.com/dd0wney/cluso-streamtri/pkg/edgesource"
	"github.com/dd0wney/cluso-streamtri/pkg/logging"
	"github.com/dd0wney/cluso-streamtri/pkg/parallel"
	"github.com/dd0wney/cluso-streamtri/pkg/triangles"
	"gonum.org/v1/gonum/stat"
)

const cancelCheckInterval = 4096

// TrialsOptions configures RunTrials. Trial i uses Config.Seed + i.
type TrialsOptions struct {
	Trials  int
	Workers int
	Config  triangles.Config
	Logger  logging.Logger
}

// TrialsSummary holds per-trial estimates and their spread.
type TrialsSummary struct {
	Trials           int
	Transitivity     []float64
	Triangles        []float64
	MeanTransitivity float64
	StdTransitivity  float64
	MeanTriangles    float64
	StdTriangles     float64
}

// RunTrials replays edges through independent estimators on a worker pool
// and summarizes the spread of their final estimates.
func RunTrials(ctx context.Context, edges []edgesource.Edge, opts TrialsOptions) (TrialsSummary, error) {
	if opts.Trials <= 0 {
		opts.Trials = 1
	}
	if err := opts.Config.Validate(); err != nil {
		return TrialsSummary{}, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	pool, err := parallel.NewWorkerPool(opts.Workers, logger)
	if err != nil {
		return TrialsSummary{}, err
	}
	defer pool.Close()

	timer := logging.StartTimer(logger, "trials finished",
		logging.Int("trials", opts.Trials),
		logging.Int("workers", pool.Workers()),
	)

	snaps, err := parallel.Map(ctx, pool, opts.Trials, func(ctx context.Context, i int) (triangles.Snapshot, error) {
		cfg := opts.Config
		cfg.Seed += uint64(i)
		return replay(ctx, edges, cfg)
	})
	if err != nil {
		timer.EndError(err)
		return TrialsSummary{}, err
	}

	summary := summarize(snaps)
	timer.End(
		logging.Float64("mean_transitivity", summary.MeanTransitivity),
		logging.Float64("std_transitivity", summary.StdTransitivity),
	)
	return summary, nil
}

func replay(ctx context.Context, edges []edgesource.Edge, cfg triangles.Config) (triangles.Snapshot, error) {
	est, err := triangles.New[uint64](cfg)
	if err != nil {
		return triangles.Snapshot{}, err
	}
	for i, e := range edges {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return triangles.Snapshot{}, err
			}
		}
		if err := est.UpdateEdge(e); err != nil && !errors.Is(err, triangles.ErrSelfLoop) {
			return triangles.Snapshot{}, err
		}
	}
	return est.Snapshot(), nil
}

func summarize(snaps []triangles.Snapshot) TrialsSummary {
	s := TrialsSummary{
		Trials:       len(snaps),
		Transitivity: make([]float64, len(snaps)),
		Triangles:    make([]float64, len(snaps)),
	}
	for i, snap := range snaps {
		s.Transitivity[i] = snap.Transitivity
		s.Triangles[i] = snap.Triangles
	}

	if len(snaps) == 1 {
		s.MeanTransitivity = s.Transitivity[0]
		s.MeanTriangles = s.Triangles[0]
		return s
	}
	s.MeanTransitivity, s.StdTransitivity = stat.MeanStdDev(s.Transitivity, nil)
	s.MeanTriangles, s.StdTriangles = stat.MeanStdDev(s.Triangles, nil)
	return s
}

// Baseline is the exact analysis of a fully materialized stream.
type Baseline struct {
	*algorithms.TriangleCountResult[uint64]
	Components *algorithms.ComponentsResult[uint64]
}

// ExactBaseline counts triangles, wedges and connected components of the
// whole edge list. Self-loops and repeated edges are ignored, matching the
// estimator.
func ExactBaseline(edges []edgesource.Edge) Baseline {
	g := algorithms.NewGraph[uint64]()
	for _, e := range edges {
		g.AddEdge(e.U, e.V)
	}
	return Baseline{
		TriangleCountResult: algorithms.CountTriangles(g),
		Components:          algorithms.ConnectedComponents(g),
	}
}
