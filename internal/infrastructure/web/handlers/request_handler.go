package handlers

import (
	"mandi-service/internal/application/dto"
	"mandi-service/internal/domain/entities"
	"mandi-service/internal/domain/interfaces"
	"net/http"

	"github.com/gorilla/mux"
)

// RequestHandler serves the buy/sell request board
type RequestHandler struct {
	service interfaces.TradeRequestService
}

func NewRequestHandler(service interfaces.TradeRequestService) *RequestHandler {
	return &RequestHandler{service: service}
}

// Create godoc
// @Summary Post a buy or sell request
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateTradeRequest true "Request"
// @Success 200 {object} entities.TradeRequest
// @Failure 400 {object} dto.ErrorResponse "Missing fields"
// @Router /api/requests [post]
func (h *RequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	who, err := identityFrom(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req dto.CreateTradeRequest
	if err := decodeJSON(r, w, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.service.Create(ctx, who, req.ToTradeRequestEntity())
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSONResponse(ctx, w, http.StatusOK, created)
}

// List godoc
// @Summary Latest 300 requests, newest first
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Success 200 {array} entities.TradeRequest
// @Router /api/requests [get]
func (h *RequestHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	requests, err := h.service.List(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSONResponse(ctx, w, http.StatusOK, requests)
}

// UpdateStatus godoc
// @Summary Approve or reject a request
// @Description Admins and dealers only
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request id"
// @Param body body dto.UpdateStatusRequest true "New status"
// @Success 200 {object} entities.TradeRequest
// @Failure 400 {object} dto.ErrorResponse "Invalid status"
// @Failure 403 {object} dto.ErrorResponse "Not allowed"
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/requests/{id}/status [put]
func (h *RequestHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	who, err := identityFrom(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req dto.UpdateStatusRequest
	if err := decodeJSON(r, w, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.service.UpdateStatus(ctx, who, mux.Vars(r)["id"], entities.RequestStatus(req.Status))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSONResponse(ctx, w, http.StatusOK, updated)
}
