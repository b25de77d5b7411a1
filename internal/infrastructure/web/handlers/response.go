package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mandi-service/internal/application/dto"
	"mandi-service/internal/domain/entities"
	"mandi-service/internal/domain/interfaces"
	"mandi-service/internal/infrastructure/auth"
	"mandi-service/internal/infrastructure/logging"
	"net/http"
	"strconv"
	"strings"
)

// maxBodyBytes caps JSON request bodies
const maxBodyBytes = 1 << 20

// Error codes returned in dto.ErrorResponse.Error
const (
	CodeConfigError   = "CONFIG_ERROR"
	CodeUpstreamError = "UPSTREAM_ERROR"
	CodeStoreError    = "STORE_ERROR"
	CodeInvalidInput  = "INVALID_INPUT"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeForbidden     = "FORBIDDEN"
	CodeNotFound      = "NOT_FOUND"
	CodeConflict      = "CONFLICT"
	CodeInternal      = "INTERNAL_ERROR"
)

// writeJSONResponse escribe una respuesta JSON
func writeJSONResponse(ctx context.Context, w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logging.ErrorWithError(ctx, "Failed to encode JSON response", err, logging.Fields{
			logging.FieldStatusCode: statusCode,
		})
	}
}

func writeErrorResponse(ctx context.Context, w http.ResponseWriter, statusCode int, code, message, details string) {
	writeJSONResponse(ctx, w, statusCode, dto.ErrorResponse{
		Error:   code,
		Message: message,
		Code:    strconv.Itoa(statusCode),
		Details: details,
	})
}

// writeError maps domain errors to HTTP status codes
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	var cfgErr *entities.ConfigError
	var upErr *entities.UpstreamError
	var storeErr *entities.StoreError

	switch {
	case errors.As(err, &cfgErr):
		logging.ErrorWithError(ctx, "Request failed on missing configuration", err, nil)
		writeErrorResponse(ctx, w, http.StatusInternalServerError, CodeConfigError, "Mandi feed is not configured", err.Error())
	case errors.As(err, &upErr):
		writeErrorResponse(ctx, w, http.StatusBadGateway, CodeUpstreamError, "Failed to fetch mandi prices", err.Error())
	case errors.As(err, &storeErr):
		writeErrorResponse(ctx, w, http.StatusInternalServerError, CodeStoreError, "Snapshot store unavailable", err.Error())
	case errors.Is(err, entities.ErrInvalidInput):
		writeErrorResponse(ctx, w, http.StatusBadRequest, CodeInvalidInput, reason(err, entities.ErrInvalidInput), "")
	case errors.Is(err, entities.ErrUnauthorized):
		writeErrorResponse(ctx, w, http.StatusUnauthorized, CodeUnauthorized, reason(err, entities.ErrUnauthorized), "")
	case errors.Is(err, entities.ErrForbidden):
		writeErrorResponse(ctx, w, http.StatusForbidden, CodeForbidden, reason(err, entities.ErrForbidden), "")
	case errors.Is(err, entities.ErrNotFound):
		writeErrorResponse(ctx, w, http.StatusNotFound, CodeNotFound, reason(err, entities.ErrNotFound), "")
	case errors.Is(err, entities.ErrConflict):
		writeErrorResponse(ctx, w, http.StatusConflict, CodeConflict, reason(err, entities.ErrConflict), "")
	default:
		logging.ErrorWithError(ctx, "Unhandled error while serving request", err, nil)
		writeErrorResponse(ctx, w, http.StatusInternalServerError, CodeInternal, "Internal server error", "")
	}
}

// reason strips the sentinel prefix so "resource not found: Ad not found" becomes "Ad not found"
func reason(err, sentinel error) string {
	msg := err.Error()
	if i := strings.Index(msg, sentinel.Error()+": "); i >= 0 {
		return msg[i+len(sentinel.Error())+2:]
	}
	return sentinel.Error()
}

// decodeJSON reads a JSON body into dst, rejecting unknown trailing data
func decodeJSON(r *http.Request, w http.ResponseWriter, dst interface{}) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	decoder := json.NewDecoder(body)

	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return entities.NewValidationError("request body is empty")
		}
		return entities.NewValidationError("malformed JSON body")
	}
	if decoder.More() {
		return entities.NewValidationError("request body must contain a single JSON object")
	}
	return nil
}

// identityFrom returns the caller set by the auth middleware
func identityFrom(r *http.Request) (interfaces.Identity, error) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		return interfaces.Identity{}, entities.ErrUnauthorized
	}
	return *identity, nil
}
