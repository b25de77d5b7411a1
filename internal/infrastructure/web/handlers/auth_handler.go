package handlers

import (
	"mandi-service/internal/application/dto"
	"mandi-service/internal/domain/interfaces"
	"net/http"
)

type AuthHandler struct {
	service interfaces.AuthService
}

func NewAuthHandler(service interfaces.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Signup godoc
// @Summary Create an account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.SignupRequest true "New user"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Username or email already taken"
// @Router /api/auth/signup [post]
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dto.SignupRequest
	if err := decodeJSON(r, w, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.service.Signup(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSONResponse(ctx, w, http.StatusOK, dto.ToAuthResponse(result.Token, result.User))
}

// Login godoc
// @Summary Log in with username or email
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse "Unknown user or wrong password"
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dto.LoginRequest
	if err := decodeJSON(r, w, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.service.Login(ctx, req.Login(), req.Password)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSONResponse(ctx, w, http.StatusOK, dto.ToAuthResponse(result.Token, result.User))
}

// Me godoc
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	who, err := identityFrom(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	user, err := h.service.Me(ctx, who.UserID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSONResponse(ctx, w, http.StatusOK, dto.ToUserResponse(user))
}
