package server

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"
)

// Health status values reported by the probe endpoints.
const (
	healthStatusOK           = "ok"
	healthStatusNotReady     = "not ready"
	healthStatusShuttingDown = "shutting down"
)

// HealthChecker serves the probe endpoints mounted on the metrics listener.
// Liveness only proves the process is serving; readiness additionally
// requires a configured gateway client and a server context that is not
// shutting down.
type HealthChecker struct {
	ready         atomic.Bool
	serverContext *ServerContext
	startTime     time.Time
}

// NewHealthChecker creates a checker reporting on the given server context.
// It starts ready; SetReady(false) takes the server out of rotation.
func NewHealthChecker(sc *ServerContext) *HealthChecker {
	h := &HealthChecker{
		serverContext: sc,
		startTime:     time.Now(),
	}
	h.ready.Store(true)
	return h
}

// SetReady sets the readiness state of the server.
func (h *HealthChecker) SetReady(ready bool) {
	h.ready.Store(ready)
}

// IsReady returns whether the server is ready to receive traffic.
func (h *HealthChecker) IsReady() bool {
	return h.ready.Load()
}

// HealthResponse is the JSON body of /healthz and /readyz.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// DetailedHealthResponse is the JSON body of /healthz/detailed. On top of the
// probe result it reports which gateway the server talks to and whether it
// runs with mutating tools disabled.
type DetailedHealthResponse struct {
	Status   string            `json:"status"`
	Uptime   string            `json:"uptime"`
	Gateway  string            `json:"gateway,omitempty"`
	ReadOnly bool              `json:"read_only"`
	Checks   map[string]string `json:"checks,omitempty"`
}

// runChecks evaluates every readiness condition and reports them per check.
func (h *HealthChecker) runChecks() (map[string]string, bool) {
	checks := map[string]string{
		"ready":    healthStatusOK,
		"gateway":  healthStatusOK,
		"shutdown": healthStatusOK,
	}
	ok := true

	if !h.ready.Load() {
		checks["ready"] = healthStatusNotReady
		ok = false
	}
	if h.serverContext != nil && h.serverContext.GatewayClient() == nil {
		checks["gateway"] = healthStatusNotReady
		ok = false
	}
	if h.serverContext != nil && h.serverContext.IsShutdown() {
		checks["shutdown"] = healthStatusShuttingDown
		ok = false
	}

	return checks, ok
}

// LivenessHandler handles /healthz. A gateway outage must not restart the
// process, so liveness never consults the readiness checks.
func (h *HealthChecker) LivenessHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, HealthResponse{Status: healthStatusOK})
	})
}

// ReadinessHandler handles /readyz, with one entry per readiness condition.
func (h *HealthChecker) ReadinessHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		checks, ok := h.runChecks()

		response := HealthResponse{Status: healthStatusOK, Checks: checks}
		code := http.StatusOK
		if !ok {
			response.Status = healthStatusNotReady
			code = http.StatusServiceUnavailable
		}
		writeJSON(w, code, response)
	})
}

// DetailedHealthHandler handles /healthz/detailed.
func (h *HealthChecker) DetailedHealthHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		checks, ok := h.runChecks()

		response := DetailedHealthResponse{
			Status: healthStatusOK,
			Uptime: time.Since(h.startTime).Truncate(time.Second).String(),
			Checks: checks,
		}
		if h.serverContext != nil {
			if gw := h.serverContext.GatewayClient(); gw != nil {
				response.Gateway = gw.BaseURL()
			}
			response.ReadOnly = h.serverContext.ReadOnly()
		}

		code := http.StatusOK
		if !ok {
			response.Status = healthStatusNotReady
			code = http.StatusServiceUnavailable
		}
		writeJSON(w, code, response)
	})
}

// RegisterHealthEndpoints registers the probe endpoints on the given mux.
func (h *HealthChecker) RegisterHealthEndpoints(mux *http.ServeMux) {
	mux.Handle("/healthz", h.LivenessHandler())
	mux.Handle("/readyz", h.ReadinessHandler())
	mux.Handle("/healthz/detailed", h.DetailedHealthHandler())
}

func writeJSON(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
