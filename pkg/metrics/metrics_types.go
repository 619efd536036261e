package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the application
type Registry struct {
	// Estimator Metrics
	EdgesTotal           *prometheus.CounterVec
	WedgesFormedTotal    prometheus.Counter
	WedgesClosedTotal    prometheus.Counter
	EdgeSampleSize       prometheus.Gauge
	WedgeSampleSize      prometheus.Gauge
	ClosedWedges         prometheus.Gauge
	TotalWedges          prometheus.Gauge
	AdjacencyVertices    prometheus.Gauge
	AdjacencyEdges       prometheus.Gauge
	TransitivityEstimate prometheus.Gauge
	TriangleEstimate     prometheus.Gauge
	UpdateDuration       prometheus.Histogram

	// Source Metrics
	SourceLinesSkipped *prometheus.CounterVec
	SourceErrorsTotal  *prometheus.CounterVec
	RunsTotal          *prometheus.CounterVec
	RunDuration        prometheus.Histogram

	// System Metrics
	UptimeSeconds    prometheus.Gauge
	GoRoutines       prometheus.Gauge
	MemoryAllocBytes prometheus.Gauge
	MemorySysBytes   prometheus.Gauge

	registry  *prometheus.Registry
	startTime time.Time
	mu        sync.RWMutex
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry:  reg,
		startTime: time.Now(),
	}

	r.initEstimatorMetrics()
	r.initSourceMetrics()
	r.initSystemMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
