package middleware

import (
	"mandi-service/internal/infrastructure/logging"
	"net/http"
	"strings"
)

// SecurityLoggingMiddleware flags suspicious requests. RequestTracingMiddleware
// does the main request/response logging, this one only adds security events.
func SecurityLoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		logging.Debug(ctx, "Processing HTTP request", logging.Fields{
			logging.FieldHeaders: extractImportantHeaders(r),
			logging.FieldQuery:   r.URL.RawQuery,
			"content_length":     r.ContentLength,
		})

		if reason := suspiciousReason(r); reason != "" {
			logging.Security().SuspiciousActivity(ctx, logging.GetRemoteIP(ctx), reason)
		}

		next.ServeHTTP(w, r)
	})
}

// extractImportantHeaders extracts relevant headers for logging
func extractImportantHeaders(r *http.Request) map[string]string {
	headers := make(map[string]string)

	// Authorization is never logged
	importantHeaders := []string{
		"Content-Type",
		"Accept",
		"Origin",
		"X-Forwarded-For",
		"X-Real-IP",
	}

	for _, header := range importantHeaders {
		if value := r.Header.Get(header); value != "" {
			headers[header] = value
		}
	}

	return headers
}

var suspiciousPatterns = []string{
	"../",
	"<script",
	"union select",
	"drop table",
	"exec(",
	"eval(",
}

// suspiciousReason devuelve el patrón detectado o "" si la request parece normal
func suspiciousReason(r *http.Request) string {
	path := strings.ToLower(r.URL.Path)
	query := strings.ToLower(r.URL.RawQuery)

	for _, pattern := range suspiciousPatterns {
		if strings.Contains(path, pattern) || strings.Contains(query, pattern) {
			return "pattern:" + pattern
		}
	}

	// Content-Length inusualmente grande
	if r.ContentLength > 1024*1024 {
		return "large_body"
	}

	return ""
}
