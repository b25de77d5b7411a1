package metrics

import (
	"net/http"
	"strings"
	"time"
)

// routeTemplates are the label values used for the path dimension. Segments written
// as {name} match any single path segment.
var routeTemplates = []string{
	"/health",
	"/ready",
	"/metrics",
	"/api/mandi/latest",
	"/api/mandi/refresh",
	"/api/mandi/status",
	"/api/auth/signup",
	"/api/auth/login",
	"/api/auth/me",
	"/api/ads",
	"/api/ads/{id}",
	"/api/chat/conversation",
	"/api/chat/conversations",
	"/api/chat/message",
	"/api/chat/messages/{id}",
	"/api/requests",
	"/api/requests/{id}/status",
}

// HTTPMetricsMiddleware records count, latency and response size per route
func HTTPMetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		RecordHTTPRequest(r.Method, normalizePath(r.URL.Path), sw.status, time.Since(start).Seconds(), sw.bytes)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	bytes       int64
	wroteHeader bool
}

func (sr *statusRecorder) WriteHeader(code int) {
	if !sr.wroteHeader {
		sr.status = code
		sr.wroteHeader = true
	}
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	sr.wroteHeader = true
	n, err := sr.ResponseWriter.Write(b)
	sr.bytes += int64(n)
	return n, err
}

// normalizePath maps a request path onto a bounded label set so ids never
// become label values
func normalizePath(path string) string {
	if path == "/" {
		return "/"
	}
	path = strings.TrimSuffix(path, "/")

	if path == "/swagger" || strings.HasPrefix(path, "/swagger/") {
		return "/swagger"
	}

	segments := strings.Split(strings.TrimPrefix(path, "/"), "/")
	for _, tmpl := range routeTemplates {
		if matchTemplate(tmpl, segments) {
			return tmpl
		}
	}

	if strings.HasPrefix(path, "/api/") {
		return "/api/*"
	}
	return "/unknown"
}

func matchTemplate(tmpl string, segments []string) bool {
	parts := strings.Split(strings.TrimPrefix(tmpl, "/"), "/")
	if len(parts) != len(segments) {
		return false
	}
	for i, p := range parts {
		if strings.HasPrefix(p, "{") {
			if segments[i] == "" {
				return false
			}
			continue
		}
		if p != segments[i] {
			return false
		}
	}
	return true
}
