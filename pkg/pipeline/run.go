// Package pipeline drives an estimator from an edge source and fans out
// progress while it runs.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dd0wney/cluso-streamtri/pkg/edgesource"
	"github.com/dd0wney/cluso-streamtri/pkg/logging"
	"github.com/dd0wney/cluso-streamtri/pkg/metrics"
	"github.com/dd0wney/cluso-streamtri/pkg/pubsub"
	"github.com/dd0wney/cluso-streamtri/pkg/triangles"
	"github.com/google/uuid"
)

// Topics published on Options.Broker.
const (
	TopicProgress = "progress"
	TopicDone     = "done"
)

// Progress is published every Options.ProgressEvery edges and once at the end.
// Err is only set on the final message of a failed run.
type Progress struct {
	RunID    string
	Snapshot triangles.Snapshot
	Elapsed  time.Duration
	Final    bool
	Err      error
}

// Options configures Run. The zero value runs silently with no progress.
type Options struct {
	RunID         string
	SourceName    string
	ProgressEvery uint64
	Logger        logging.Logger
	Metrics       *metrics.Registry
	Broker        *pubsub.PubSub[Progress]
}

// Report summarizes a finished run.
type Report struct {
	RunID     string
	Source    string
	Snapshot  triangles.Snapshot
	Accepted  uint64
	SelfLoops uint64
	Skipped   int
	Elapsed   time.Duration
}

// Transitivity returns the final transitivity estimate.
func (r Report) Transitivity() float64 { return r.Snapshot.Transitivity }

// Triangles returns the final triangle-count estimate.
func (r Report) Triangles() float64 { return r.Snapshot.Triangles }

// Run feeds every edge from src into est until the source is exhausted, the
// context is cancelled or the source fails. Self-loops are counted and
// skipped. Run is the only writer of est for its duration. The returned
// report reflects everything applied before an error.
func Run(ctx context.Context, src edgesource.Source, est *triangles.Estimator[uint64], opts Options) (Report, error) {
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}
	if opts.SourceName == "" {
		opts.SourceName = "stream"
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	logger = logger.With(logging.RunID(opts.RunID), logging.Source(opts.SourceName))

	report := Report{RunID: opts.RunID, Source: opts.SourceName}
	timer := logging.StartTimer(logger, "ingestion finished")
	logger.Info("ingestion started")

	err := ingest(ctx, src, est, opts, logger, timer, &report)

	report.Snapshot = est.Snapshot()
	report.Elapsed = timer.Elapsed()
	if sc, ok := src.(edgesource.SkipCounter); ok {
		report.Skipped = sc.Skipped()
	}

	if opts.Metrics != nil {
		opts.Metrics.RecordSkippedLines(opts.SourceName, report.Skipped)
		status := "ok"
		if err != nil {
			status = "error"
			opts.Metrics.RecordSourceError(opts.SourceName)
		}
		opts.Metrics.RecordRun(status, report.Elapsed)
	}
	if opts.Broker != nil {
		opts.Broker.Publish(TopicDone, Progress{
			RunID:    opts.RunID,
			Snapshot: report.Snapshot,
			Elapsed:  report.Elapsed,
			Final:    true,
			Err:      err,
		})
	}

	if err != nil {
		timer.EndError(err)
		return report, err
	}
	timer.End(
		logging.Edges(report.Accepted),
		logging.Uint64("self_loops", report.SelfLoops),
		logging.Int("skipped_lines", report.Skipped),
		logging.Transitivity(report.Snapshot.Transitivity),
		logging.Triangles(report.Snapshot.Triangles),
	)
	return report, nil
}

func ingest(ctx context.Context, src edgesource.Source, est *triangles.Estimator[uint64], opts Options, logger logging.Logger, timer *logging.TimedOperation, report *Report) error {
	for {
		e, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", opts.SourceName, err)
		}

		if err := est.UpdateEdge(e); err != nil {
			if errors.Is(err, triangles.ErrSelfLoop) {
				report.SelfLoops++
				continue
			}
			return err
		}
		report.Accepted++

		if opts.ProgressEvery > 0 && report.Accepted%opts.ProgressEvery == 0 {
			publishProgress(est, opts, logger, timer.Elapsed())
		}
	}
}

func publishProgress(est *triangles.Estimator[uint64], opts Options, logger logging.Logger, elapsed time.Duration) {
	snap := est.Snapshot()
	logger.Info("ingestion progress",
		logging.Edges(snap.EdgesSeen),
		logging.Wedges(snap.TotalWedges),
		logging.Transitivity(snap.Transitivity),
		logging.Triangles(snap.Triangles),
		logging.Duration("elapsed", elapsed),
	)
	if opts.Metrics != nil {
		opts.Metrics.UpdateSystemMetrics()
	}
	if opts.Broker != nil {
		opts.Broker.Publish(TopicProgress, Progress{
			RunID:    opts.RunID,
			Snapshot: snap,
			Elapsed:  elapsed,
		})
	}
}
