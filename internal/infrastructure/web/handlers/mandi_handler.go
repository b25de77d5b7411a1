package handlers

import (
	"mandi-service/internal/application/dto"
	"mandi-service/internal/application/scheduler"
	"mandi-service/internal/domain/interfaces"
	"mandi-service/internal/infrastructure/logging"
	"net/http"
	"time"
)

// MandiHandler serves the cached price feed
type MandiHandler struct {
	service   interfaces.MandiService
	scheduler *scheduler.RefreshScheduler
}

// NewMandiHandler creates the handler. sched may be nil when background refresh is off.
func NewMandiHandler(service interfaces.MandiService, sched *scheduler.RefreshScheduler) *MandiHandler {
	return &MandiHandler{service: service, scheduler: sched}
}

// Latest godoc
// @Summary Latest mandi prices
// @Description Returns the cached price feed. When nothing is cached yet the feed is fetched before responding.
// @Tags mandi
// @Produce json
// @Success 200 {object} dto.MandiLatestResponse
// @Failure 500 {object} dto.ErrorResponse "Missing API key or store failure"
// @Failure 502 {object} dto.ErrorResponse "Upstream feed failed"
// @Router /api/mandi/latest [get]
func (h *MandiHandler) Latest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	snap, err := h.service.Latest(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSONResponse(ctx, w, http.StatusOK, dto.ToLatestResponse(snap))
}

// Refresh godoc
// @Summary Refresh mandi prices
// @Description Fetches the whole feed from data.gov.in and replaces the cached snapshot
// @Tags mandi
// @Produce json
// @Success 200 {object} dto.MandiRefreshResponse
// @Failure 500 {object} dto.ErrorResponse "Missing API key or store failure"
// @Failure 502 {object} dto.ErrorResponse "Upstream feed failed"
// @Router /api/mandi/refresh [get]
func (h *MandiHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	snap, err := h.service.Refresh(ctx)
	if err != nil {
		logging.WarnWithError(ctx, "Manual refresh failed", err, nil)
		writeError(ctx, w, err)
		return
	}

	writeJSONResponse(ctx, w, http.StatusOK, dto.ToRefreshResponse(snap))
}

// Status godoc
// @Summary Refresh status
// @Description Scheduler state, last scheduled run and the size of the cached snapshot. Never fetches.
// @Tags mandi
// @Produce json
// @Success 200 {object} dto.MandiStatusResponse
// @Failure 500 {object} dto.ErrorResponse "Store failure"
// @Router /api/mandi/status [get]
func (h *MandiHandler) Status(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	snap, err := h.service.Peek(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSONResponse(ctx, w, http.StatusOK, dto.ToStatusResponse(h.scheduler, snap, time.Now().UTC()))
}
