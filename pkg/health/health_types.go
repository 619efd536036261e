package health

import (
	"sync"
	"time"

	"github.com/dd0wney/cluso-streamtri/pkg/triangles"
)

// Status represents the health status of a component
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

// Endpoint is a bitmask of the health endpoints a check reports to.
type Endpoint uint8

const (
	// EndpointHealth is the full report. Degraded checks still answer 200.
	EndpointHealth Endpoint = 1 << iota
	// EndpointReady answers 200 once the estimate is worth reading.
	EndpointReady
	// EndpointLive answers 200 while the process can serve at all.
	EndpointLive
)

// Check is the outcome of one named check.
type Check struct {
	Name        string         `json:"name"`
	Status      Status         `json:"status"`
	Message     string         `json:"message,omitempty"`
	Details     map[string]any `json:"details,omitempty"`
	LastChecked time.Time      `json:"last_checked"`
	Duration    time.Duration  `json:"duration_ns"`
}

// CheckFunc is a function that performs a health check
type CheckFunc func() Check

// RunInfo identifies the ingestion run a checker reports on. Snapshot is
// read on every request.
type RunInfo struct {
	ID       string
	Source   string
	Snapshot func() triangles.Snapshot
}

// RunSummary is the estimator state attached to each response.
type RunSummary struct {
	ID           string  `json:"id"`
	Source       string  `json:"source"`
	EdgesSeen    uint64  `json:"edges_seen"`
	EdgeSample   int     `json:"edge_sample"`
	WedgeSample  int     `json:"wedge_sample"`
	ClosedWedges int     `json:"closed_wedges"`
	TotalWedges  uint64  `json:"total_wedges"`
	Vertices     int     `json:"vertices"`
	Transitivity float64 `json:"transitivity"`
	Triangles    float64 `json:"triangles"`
}

// Response is the JSON body of every endpoint.
type Response struct {
	Status        Status           `json:"status"`
	Timestamp     time.Time        `json:"timestamp"`
	UptimeSeconds float64          `json:"uptime_seconds"`
	Run           *RunSummary      `json:"run,omitempty"`
	Checks        map[string]Check `json:"checks"`
}

// IngestionState is the latest known state of a running ingestion.
type IngestionState struct {
	Started      time.Time
	LastProgress time.Time
	EdgesSeen    uint64
	Finished     bool
	Err          error
}

type registration struct {
	name      string
	endpoints Endpoint
	check     CheckFunc
}

// HealthChecker evaluates named checks per endpoint and reports them together
// with the current run.
type HealthChecker struct {
	mu        sync.RWMutex
	checks    []registration
	run       *RunInfo
	startTime time.Time
}
