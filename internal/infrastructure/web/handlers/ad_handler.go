package handlers

import (
	"mandi-service/internal/application/dto"
	"mandi-service/internal/domain/entities"
	"mandi-service/internal/domain/interfaces"
	"net/http"

	"github.com/gorilla/mux"
)

// AdHandler serves the produce classifieds
type AdHandler struct {
	service interfaces.AdService
}

func NewAdHandler(service interfaces.AdService) *AdHandler {
	return &AdHandler{service: service}
}

// Create godoc
// @Summary Post an ad
// @Tags ads
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateAdRequest true "Ad"
// @Success 201 {object} dto.AdCreatedResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/ads [post]
func (h *AdHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	who, err := identityFrom(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req dto.CreateAdRequest
	if err := decodeJSON(r, w, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(ctx, w, err)
		return
	}

	ad, err := h.service.Create(ctx, who, req.ToAdEntity())
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSONResponse(ctx, w, http.StatusCreated, dto.AdCreatedResponse{
		Message: "Ad posted successfully",
		Ad:      dto.ToAdResponse(ad),
	})
}

// List godoc
// @Summary List ads
// @Description Newest first. state and district match exactly, q searches title, category and description.
// @Tags ads
// @Produce json
// @Param q query string false "Free text search"
// @Param state query string false "State"
// @Param district query string false "District"
// @Success 200 {object} dto.AdListResponse
// @Router /api/ads [get]
func (h *AdHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	ads, err := h.service.List(ctx, entities.AdFilter{
		Query:    query.Get("q"),
		State:    query.Get("state"),
		District: query.Get("district"),
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSONResponse(ctx, w, http.StatusOK, dto.ToAdListResponse(ads))
}

// Get godoc
// @Summary Get one ad
// @Tags ads
// @Produce json
// @Param id path string true "Ad id"
// @Success 200 {object} dto.AdResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/ads/{id} [get]
func (h *AdHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ad, err := h.service.Get(ctx, mux.Vars(r)["id"])
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSONResponse(ctx, w, http.StatusOK, dto.ToAdResponse(ad))
}

// Delete godoc
// @Summary Delete an ad
// @Description Only the owner may delete an ad
// @Tags ads
// @Produce json
// @Security BearerAuth
// @Param id path string true "Ad id"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/ads/{id} [delete]
func (h *AdHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	who, err := identityFrom(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.service.Delete(ctx, who, mux.Vars(r)["id"]); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSONResponse(ctx, w, http.StatusOK, dto.MessageResponse{Message: "Ad deleted"})
}
