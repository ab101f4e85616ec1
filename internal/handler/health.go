package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// readinessTimeout bounds the dependency pings made by Readyz.
const readinessTimeout = 5 * time.Second

// HealthChecker is a dependency that can report whether it is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	logger *slog.Logger
	deps   []namedChecker
}

type namedChecker struct {
	name    string
	checker HealthChecker
}

// NewHealthHandler creates a HealthHandler checking Postgres and Redis.
// A nil checker is reported as "not configured" and does not fail readiness.
func NewHealthHandler(logger *slog.Logger, db, cache HealthChecker) *HealthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthHandler{
		logger: logger,
		deps: []namedChecker{
			{name: "postgres", checker: db},
			{name: "redis", checker: cache},
		},
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Healthz reports that the process is serving requests.
// GET /healthz
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Readyz pings every dependency and returns 503 if any of them fails.
// Ping errors are logged, never returned to the client.
// GET /readyz
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	resp := HealthResponse{Status: "ok", Checks: make(map[string]string, len(h.deps))}
	status := http.StatusOK

	for _, dep := range h.deps {
		if dep.checker == nil {
			resp.Checks[dep.name] = "not configured"
			continue
		}
		if err := dep.checker.Ping(ctx); err != nil {
			h.logger.Warn("readiness check failed",
				slog.String("dependency", dep.name),
				slog.String("error", err.Error()),
			)
			resp.Checks[dep.name] = "error"
			resp.Status = "unhealthy"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[dep.name] = "ok"
	}

	writeJSON(w, status, resp)
}
