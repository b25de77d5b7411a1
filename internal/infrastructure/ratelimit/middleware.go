package ratelimit

import (
	"encoding/json"
	"mandi-service/internal/application/dto"
	"mandi-service/internal/infrastructure/config"
	"mandi-service/internal/infrastructure/logging"
	"mandi-service/internal/infrastructure/metrics"
	"net/http"
	"strconv"

	"github.com/jonboulle/clockwork"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware limits requests per client IP
type RateLimitMiddleware struct {
	store     *Store
	resolver  *IPResolver
	skipPaths map[string]bool
	enabled   bool
}

// NewRateLimitMiddleware creates the middleware from configuration
func NewRateLimitMiddleware(cfg config.RateLimitConfig, clock clockwork.Clock) *RateLimitMiddleware {
	// Paths that should skip rate limiting
	skipPaths := map[string]bool{
		"/health":  true,
		"/ready":   true,
		"/metrics": true,
	}

	var store *Store
	if cfg.Enabled {
		store = NewStore(rate.Limit(cfg.RequestsPerSec), cfg.Burst, cfg.ClientTTL, clock)
	}

	return &RateLimitMiddleware{
		store:     store,
		resolver:  NewIPResolver(cfg.TrustedProxies),
		skipPaths: skipPaths,
		enabled:   cfg.Enabled,
	}
}

// Store returns nil when rate limiting is disabled
func (rlm *RateLimitMiddleware) Store() *Store {
	return rlm.store
}

// Handler returns the HTTP middleware handler
func (rlm *RateLimitMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rlm.enabled || rlm.skipPaths[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		clientIP := rlm.resolver.ClientIP(r)

		allowed := rlm.store.Allow(clientIP)
		metrics.RecordRateLimitResult(allowed)
		metrics.UpdateRateLimitClients(rlm.store.Len())

		if !allowed {
			logging.Security().RateLimitExceeded(ctx, clientIP, r.URL.Path)
			rlm.writeRateLimitError(w)
			return
		}

		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(rlm.store.Tokens(clientIP)))
		next.ServeHTTP(w, r)
	})
}

func (rlm *RateLimitMiddleware) writeRateLimitError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-RateLimit-Remaining", "0")
	w.Header().Set("Retry-After", "1")
	w.WriteHeader(http.StatusTooManyRequests)

	_ = json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   "RATE_LIMIT_EXCEEDED",
		Message: "Rate limit exceeded. Please slow down your requests.",
		Code:    strconv.Itoa(http.StatusTooManyRequests),
	})
}
