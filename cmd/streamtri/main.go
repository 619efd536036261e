package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dd0wney/cluso-streamtri/pkg/config"
	"github.com/dd0wney/cluso-streamtri/pkg/edgesource"
	"github.com/dd0wney/cluso-streamtri/pkg/health"
	"github.com/dd0wney/cluso-streamtri/pkg/logging"
	"github.com/dd0wney/cluso-streamtri/pkg/metrics"
	"github.com/dd0wney/cluso-streamtri/pkg/pipeline"
	"github.com/dd0wney/cluso-streamtri/pkg/pubsub"
	"github.com/dd0wney/cluso-streamtri/pkg/triangles"
	"github.com/google/uuid"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "streamtri: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := parseConfig(args, stderr)
	if err != nil {
		return err
	}

	logger := logging.NewJSONLogger(stderr, cfg.Level())
	runID := uuid.NewString()
	registry := metrics.NewRegistry()

	est, err := triangles.New[uint64](cfg.Estimator,
		triangles.WithLogger(logger.With(logging.RunID(runID))),
		triangles.WithRecorder(registry),
	)
	if err != nil {
		return err
	}

	broker := pubsub.NewPubSub[pipeline.Progress](pubsub.DefaultBuffer)
	defer broker.Shutdown()

	tracker := &ingestionTracker{}
	tracked, err := tracker.follow(ctx, broker)
	if err != nil {
		return err
	}

	if cfg.MetricsAddr != "" {
		hc := newHealthChecker(runID, sourceName(cfg.Input), cfg, tracker, est)
		srv := serveMetrics(cfg.MetricsAddr, registry, hc, logger)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()
	}

	src, err := edgesource.Open(ctx, cfg.Input, cfg.SourceOptions())
	if err != nil {
		return err
	}
	defer src.Close()

	var recorded *edgesource.RecordingSource
	if cfg.Exact || cfg.Trials > 0 {
		recorded = edgesource.Record(src)
		src = recorded
	}

	ingest := func(ctx context.Context) (pipeline.Report, error) {
		return pipeline.Run(ctx, src, est, pipeline.Options{
			RunID:         runID,
			SourceName:    sourceName(cfg.Input),
			ProgressEvery: cfg.ProgressEvery,
			Logger:        logger,
			Metrics:       registry,
			Broker:        broker,
		})
	}

	tracker.start()
	var report pipeline.Report
	if cfg.Dashboard {
		info := dashboardInfo{
			RunID:    runID,
			Source:   sourceName(cfg.Input),
			Config:   cfg.Estimator,
			Snapshot: est.Snapshot,
		}
		report, err = runWithDashboard(ctx, broker, info, os.Stdin, stdout, ingest)
	} else {
		report, err = ingest(ctx)
	}
	<-tracked
	if err != nil {
		return err
	}

	out := reportView{Report: report, Config: cfg.Estimator}
	if recorded != nil {
		if cfg.Exact {
			baseline := pipeline.ExactBaseline(recorded.Edges())
			out.Exact = &baseline
		}
		if cfg.Trials > 0 {
			summary, err := pipeline.RunTrials(ctx, recorded.Edges(), pipeline.TrialsOptions{
				Trials:  cfg.Trials,
				Workers: cfg.Workers,
				Config:  cfg.Estimator,
				Logger:  logger.With(logging.RunID(runID)),
			})
			if err != nil {
				return err
			}
			out.Trials = &summary
		}
	}

	_, err = fmt.Fprintln(stdout, out.Render())
	return err
}

// parseConfig layers defaults, the -config file, STREAMTRI_* variables and
// explicitly set flags, in that order.
func parseConfig(args []string, stderr io.Writer) (config.RunConfig, error) {
	fs := flag.NewFlagSet("streamtri", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", "", "YAML configuration file")
	input := fs.String("input", "", "Edge source: path, -, s3://, postgres://, tcp:// ipc:// inproc://")
	edgeCap := fs.Int("edge-capacity", triangles.DefaultEdgeCapacity, "Edge reservoir capacity")
	wedgeCap := fs.Int("wedge-capacity", triangles.DefaultWedgeCapacity, "Wedge reservoir capacity")
	seed := fs.Uint64("seed", 0, "Random seed")
	exact := fs.Bool("exact", false, "Also compute the exact counts (keeps the stream in memory)")
	trials := fs.Int("trials", 0, "Replay the stream through this many independently seeded estimators")
	workers := fs.Int("workers", 0, "Worker goroutines for trials (0 = 1)")
	progressEvery := fs.Uint64("progress-every", config.DefaultProgressEvery, "Log progress every N edges (0 = off)")
	metricsAddr := fs.String("metrics-addr", "", "Serve Prometheus metrics and health checks on this address")
	dashboard := fs.Bool("dashboard", false, "Show a live terminal dashboard while ingesting (logs still go to stderr)")
	maxVertices := fs.Int("max-vertices", 0, "Report degraded health above this many tracked vertices (0 = off)")
	logLevel := fs.String("log-level", config.DefaultLogLevel, "Log level: debug, info, warn, error")
	query := fs.String("query", "", "SQL returning (src, dst) rows for postgres inputs")

	if err := fs.Parse(args); err != nil {
		return config.RunConfig{}, err
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.Input = *input
		case "edge-capacity":
			cfg.Estimator.EdgeCapacity = *edgeCap
		case "wedge-capacity":
			cfg.Estimator.WedgeCapacity = *wedgeCap
		case "seed":
			cfg.Estimator.Seed = *seed
		case "exact":
			cfg.Exact = *exact
		case "trials":
			cfg.Trials = *trials
		case "workers":
			cfg.Workers = *workers
		case "progress-every":
			cfg.ProgressEvery = *progressEvery
		case "metrics-addr":
			cfg.MetricsAddr = *metricsAddr
		case "dashboard":
			cfg.Dashboard = *dashboard
		case "max-vertices":
			cfg.MaxVertices = *maxVertices
		case "log-level":
			cfg.LogLevel = *logLevel
		case "query":
			cfg.Query = *query
		}
	})
	if cfg.Input == "" && fs.NArg() == 1 {
		cfg.Input = fs.Arg(0)
	}

	return cfg, cfg.Validate()
}

func serveMetrics(addr string, registry *metrics.Registry, hc *health.HealthChecker, logger logging.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", registry.Handler())
	hc.Mount(mux, "/healthz")
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("metrics server listening", logging.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", logging.Error(err))
		}
	}()
	return srv
}

// sourceName is the metrics label for an input.
func sourceName(input string) string {
	if input == "-" {
		return "stdin"
	}
	if scheme, _, ok := strings.Cut(input, "://"); ok {
		return strings.ToLower(scheme)
	}
	return "file"
}
