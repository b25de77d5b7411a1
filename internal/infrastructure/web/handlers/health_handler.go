package handlers

import (
	"context"
	"mandi-service/internal/application/dto"
	"mandi-service/internal/application/scheduler"
	"mandi-service/internal/infrastructure/logging"
	"net/http"
	"time"
)

// readyTimeout bounds every dependency check in /ready
const readyTimeout = 3 * time.Second

// ReadinessCheck pings one dependency
type ReadinessCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// HealthHandler maneja los endpoints de health check
type HealthHandler struct {
	checks    []ReadinessCheck
	scheduler *scheduler.RefreshScheduler
}

// NewHealthHandler crea una nueva instancia del health handler
func NewHealthHandler(sched *scheduler.RefreshScheduler, checks ...ReadinessCheck) *HealthHandler {
	return &HealthHandler{checks: checks, scheduler: sched}
}

// Root answers the plain text banner on /
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Backend Running"))
}

// Health godoc
// @Summary Basic health check
// @Description Verifies that the service is running. Responds quickly without checking dependencies.
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse "Service is running correctly"
// @Router /health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	services := map[string]string{
		"service": "running",
	}

	writeJSONResponse(r.Context(), w, http.StatusOK, dto.NewHealthResponse("healthy", services))
}

// Ready godoc
// @Summary Complete readiness check
// @Description Pings the snapshot store and the database. The scheduler state is reported but never fails the check.
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse "Service is ready to receive traffic"
// @Failure 503 {object} dto.HealthResponse "Service is not ready - dependencies are failing"
// @Router /ready [get]
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	services := make(map[string]string, len(h.checks)+1)
	ready := true

	for _, check := range h.checks {
		if err := check.Check(ctx); err != nil {
			ready = false
			services[check.Name] = "error: " + err.Error()
			logging.WarnWithError(ctx, "Readiness check failed", err, logging.Fields{"check": check.Name})
			continue
		}
		services[check.Name] = "ready"
	}

	if h.scheduler != nil {
		services["scheduler"] = string(h.scheduler.State())
	} else {
		services["scheduler"] = "disabled"
	}

	if !ready {
		writeJSONResponse(ctx, w, http.StatusServiceUnavailable, dto.NewHealthResponse("unhealthy", services))
		return
	}

	writeJSONResponse(ctx, w, http.StatusOK, dto.NewHealthResponse("ready", services))
}
