package middleware

import (
	"mandi-service/internal/infrastructure/logging"
	"mandi-service/internal/infrastructure/ratelimit"
	"net/http"
	"time"
)

// ResponseWriter wrapper to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    int64
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if rw.statusCode == 0 {
		rw.statusCode = http.StatusOK
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.written += int64(n)
	return n, err
}

// RequestTracingMiddleware adds request id, start time and client info to the context
// and logs the request once it completes
func RequestTracingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" || len(requestID) > 64 {
			requestID = logging.GenerateRequestID()
		}

		startTime := time.Now()
		remoteIP := ratelimit.ClientIP(r)
		userAgent := r.Header.Get("User-Agent")

		ctx := logging.WithRequestID(r.Context(), requestID)
		ctx = logging.WithStartTime(ctx, startTime)
		ctx = logging.WithRemoteIP(ctx, remoteIP)
		ctx = logging.WithUserAgent(ctx, userAgent)

		// Add request ID to response headers (useful for debugging)
		w.Header().Set("X-Request-ID", requestID)

		wrapped := &responseWriter{ResponseWriter: w}
		httpLogger := logging.HTTP()
		httpLogger.RequestReceived(ctx, r.Method, r.URL.Path, userAgent, remoteIP)

		next.ServeHTTP(wrapped, r.WithContext(ctx))

		if wrapped.statusCode == 0 {
			wrapped.statusCode = http.StatusOK
		}
		durationMs := float64(time.Since(startTime).Nanoseconds()) / 1e6
		httpLogger.RequestCompleted(ctx, r.Method, r.URL.Path, wrapped.statusCode, durationMs)
	})
}
