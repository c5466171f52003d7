package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"notary-ally/internal/contextutil"
)

// Pinger reports whether the record store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Configurable reports whether the lookup provider has a credential.
type Configurable interface {
	Configured() bool
}

// HealthHandler handles HTTP requests for health checks.
type HealthHandler struct {
	store              Pinger
	lookup             Configurable
	backend            string
	healthCheckTimeout time.Duration
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(store Pinger, lookup Configurable, backend string) *HealthHandler {
	return &HealthHandler{
		store:              store,
		lookup:             lookup,
		backend:            backend,
		healthCheckTimeout: 5 * time.Second,
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	// Overall health status: "healthy", "degraded", or "unhealthy"
	Status string `json:"status"`

	// Timestamp of the health check
	Timestamp string `json:"timestamp"`

	// Individual check results
	Checks map[string]string `json:"checks"`

	// List of issues (only present if status is degraded or unhealthy)
	Issues []string `json:"issues,omitempty"`
}

// ServeHTTP handles HTTP requests for health checks.
//
// Returns 200 OK when the store answers, even if lookups are not configured
// (reported as degraded), and 503 Service Unavailable when the store fails.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	checkCtx, cancel := context.WithTimeout(ctx, h.healthCheckTimeout)
	defer cancel()

	checks := map[string]string{"store_backend": h.backend}
	var issues []string

	storeOK := h.checkStore(checkCtx, logger)
	if storeOK {
		checks["store"] = "ok"
	} else {
		checks["store"] = "error"
		issues = append(issues, "store_unavailable")
	}

	if h.lookup.Configured() {
		checks["lookup"] = "ok"
	} else {
		checks["lookup"] = "not_configured"
		issues = append(issues, "lookup_credential_missing")
	}

	status := "healthy"
	httpStatus := http.StatusOK
	switch {
	case !storeOK:
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	case len(issues) > 0:
		status = "degraded"
	}

	writeJSON(w, ctx, httpStatus, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Issues:    issues,
	})
}

// checkStore checks if the record store is accessible.
func (h *HealthHandler) checkStore(ctx context.Context, logger *slog.Logger) bool {
	if err := h.store.Ping(ctx); err != nil {
		logger.WarnContext(ctx, "store health check failed", "error", err)
		return false
	}
	return true
}
