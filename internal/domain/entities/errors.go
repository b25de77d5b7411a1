package entities

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by the CRUD services. Handlers map them to HTTP status codes.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrForbidden    = errors.New("operation not allowed")
	ErrConflict     = errors.New("resource already exists")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidInput = errors.New("invalid input")
)

// ConfigError is returned when a required setting is missing at call time.
// It is raised before any network call is made.
type ConfigError struct {
	Setting string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: %s: %s", e.Setting, e.Message)
}

// UpstreamError is returned when any page of the upstream feed cannot be fetched or decoded.
// Records fetched before the failure are discarded.
type UpstreamError struct {
	Page       int
	Offset     int
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("upstream error on page %d (offset %d, HTTP %d): %v", e.Page, e.Offset, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("upstream error on page %d (offset %d): %v", e.Page, e.Offset, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// StoreError is returned when the snapshot store cannot be read or written
type StoreError struct {
	Op      string
	Backend string
	Err     error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("snapshot store %s (%s) failed: %v", e.Op, e.Backend, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewValidationError wraps ErrInvalidInput with a human readable reason
func NewValidationError(message string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, message)
}

// RefreshErrorKind classifies a refresh failure for logs and metrics labels
func RefreshErrorKind(err error) string {
	var cfgErr *ConfigError
	var upErr *UpstreamError
	var storeErr *StoreError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &cfgErr):
		return "config"
	case errors.As(err, &upErr):
		return "upstream"
	case errors.As(err, &storeErr):
		return "store"
	default:
		return "unknown"
	}
}
