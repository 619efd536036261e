package health

import (
	"time"
)

// NewHealthChecker returns a checker with no checks and no run.
func NewHealthChecker() *HealthChecker {
	return &HealthChecker{startTime: time.Now()}
}

// Register adds check under name for the given endpoints, replacing an earlier
// registration with the same name.
func (hc *HealthChecker) Register(name string, endpoints Endpoint, check CheckFunc) {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	for i := range hc.checks {
		if hc.checks[i].name == name {
			hc.checks[i] = registration{name: name, endpoints: endpoints, check: check}
			return
		}
	}
	hc.checks = append(hc.checks, registration{name: name, endpoints: endpoints, check: check})
}

// SetRun attaches the ingestion run whose summary every response carries.
func (hc *HealthChecker) SetRun(info RunInfo) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	hc.run = &info
}

// Evaluate runs every check registered for endpoint. Checks run outside the
// lock, so a slow check does not block registration.
func (hc *HealthChecker) Evaluate(endpoint Endpoint) Response {
	hc.mu.RLock()
	selected := make([]registration, 0, len(hc.checks))
	for _, r := range hc.checks {
		if r.endpoints&endpoint != 0 {
			selected = append(selected, r)
		}
	}
	run := hc.run
	hc.mu.RUnlock()

	now := time.Now()
	response := Response{
		Status:        StatusHealthy,
		Timestamp:     now,
		UptimeSeconds: now.Sub(hc.startTime).Seconds(),
		Checks:        make(map[string]Check, len(selected)),
	}
	if run != nil {
		response.Run = summarize(run)
	}

	for _, r := range selected {
		start := time.Now()
		check := r.check()
		check.Duration = time.Since(start)
		check.LastChecked = start
		if check.Name == "" {
			check.Name = r.name
		}
		response.Checks[r.name] = check
		response.Status = worse(response.Status, check.Status)
	}
	return response
}

func summarize(run *RunInfo) *RunSummary {
	summary := &RunSummary{ID: run.ID, Source: run.Source}
	if run.Snapshot == nil {
		return summary
	}
	s := run.Snapshot()
	summary.EdgesSeen = s.EdgesSeen
	summary.EdgeSample = s.EdgeSampleSize
	summary.WedgeSample = s.SampledWedges
	summary.ClosedWedges = s.ClosedWedges
	summary.TotalWedges = s.TotalWedges
	summary.Vertices = s.Vertices
	summary.Transitivity = s.Transitivity
	summary.Triangles = s.Triangles
	return summary
}

func severity(s Status) int {
	switch s {
	case StatusHealthy:
		return 0
	case StatusDegraded:
		return 1
	default:
		// unknown statuses count as failures
		return 2
	}
}

func worse(a, b Status) Status {
	if severity(b) > severity(a) {
		return b
	}
	return a
}
