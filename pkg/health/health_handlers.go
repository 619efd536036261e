package health

import (
	"encoding/json"
	"net/http"
)

// Handler serves the response for endpoint as JSON.
func (hc *HealthChecker) Handler(endpoint Endpoint) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		response := hc.Evaluate(endpoint)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode(endpoint, response.Status))
		json.NewEncoder(w).Encode(response)
	}
}

// Mount serves the full report at prefix and the readiness and liveness
// endpoints at prefix+"/ready" and prefix+"/live".
func (hc *HealthChecker) Mount(mux *http.ServeMux, prefix string) {
	mux.Handle(prefix, hc.Handler(EndpointHealth))
	mux.Handle(prefix+"/ready", hc.Handler(EndpointReady))
	mux.Handle(prefix+"/live", hc.Handler(EndpointLive))
}

func statusCode(endpoint Endpoint, s Status) int {
	switch {
	case s == StatusHealthy:
		return http.StatusOK
	case s == StatusDegraded && endpoint == EndpointHealth:
		return http.StatusOK
	default:
		return http.StatusServiceUnavailable
	}
}
