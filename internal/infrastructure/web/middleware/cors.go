package middleware

import (
	"mandi-service/internal/infrastructure/config"
	"net/http"

	"github.com/rs/cors"
)

// NewCORSMiddleware allows the configured browser origins with credentials.
// Requests without an Origin header (curl, server to server) pass untouched.
func NewCORSMiddleware(cfg config.CORSConfig) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.Origins(),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           600,
	})
	return c.Handler
}
