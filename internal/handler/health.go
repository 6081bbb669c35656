package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/osse101/JackpotEngine_Go/internal/logger"
)

// readinessTimeout bounds all dependency checks of one /readyz call
const readinessTimeout = 2 * time.Second

// HealthResponse represents the response for health endpoints
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthChecker defines the interface for components that can report health
type HealthChecker interface {
	CheckHealth(ctx context.Context) error
}

// HealthCheckFunc adapts a function to HealthChecker
type HealthCheckFunc func(ctx context.Context) error

// CheckHealth calls f(ctx)
func (f HealthCheckFunc) CheckHealth(ctx context.Context) error {
	return f(ctx)
}

// HaltReporter reports whether the round engine stopped after an integrity fault
type HaltReporter interface {
	Halted() bool
}

// HandleHealthz provides a basic liveness check
// @Summary Liveness check
// @Description Returns OK if the service is running
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: HealthStatusOK})
	}
}

// HandleReadyz reports ready when every dependency check passes and the engine is not halted
// @Summary Readiness check
// @Description Returns OK if the archive is reachable and the round engine is running
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readyz [get]
func HandleReadyz(engine HaltReporter, checks map[string]HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		for name, check := range checks {
			if err := check.CheckHealth(ctx); err != nil {
				logger.FromContext(ctx).Error(LogMsgReadinessFailed, "check", name, "error", err)
				respondJSON(w, http.StatusServiceUnavailable, HealthResponse{
					Status:  HealthStatusUnavailable,
					Message: name + " check failed",
				})
				return
			}
		}

		if engine != nil && engine.Halted() {
			respondJSON(w, http.StatusServiceUnavailable, HealthResponse{
				Status:  HealthStatusHalted,
				Message: ErrMsgEngineHaltedError,
			})
			return
		}

		respondJSON(w, http.StatusOK, HealthResponse{Status: HealthStatusOK})
	}
}
