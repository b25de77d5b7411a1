package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the mandi service
var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mandi_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mandi_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPResponseSizeBytes = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mandi_http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000, 50000000}, // a full snapshot runs into tens of MB
		},
		[]string{"method", "path"},
	)

	// Upstream (data.gov.in) Metrics
	UpstreamPageRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mandi_upstream_page_requests_total",
			Help: "Total number of upstream page requests",
		},
		[]string{"service", "status_code"},
	)

	UpstreamPageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mandi_upstream_page_duration_seconds",
			Help:    "Upstream page request duration in seconds",
			Buckets: []float64{0.1, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0},
		},
		[]string{"service"},
	)

	UpstreamRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mandi_upstream_retries_total",
			Help: "Total number of upstream page retry attempts",
		},
		[]string{"service", "attempt"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mandi_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=open, 2=half_open)",
		},
		[]string{"service"},
	)

	// Refresh Metrics
	RefreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mandi_refreshes_total",
			Help: "Total number of snapshot refresh runs",
		},
		[]string{"trigger", "result"}, // trigger: scheduler/cold_start/manual, result: success/config/upstream/store/unknown
	)

	RefreshDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mandi_refresh_duration_seconds",
			Help:    "Duration of a full refresh (fetch + store write)",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300},
		},
		[]string{"trigger"},
	)

	SnapshotRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mandi_snapshot_records",
			Help: "Number of records in the latest snapshot",
		},
	)

	SnapshotUpdatedTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mandi_snapshot_updated_timestamp_seconds",
			Help: "Unix time of the latest successful snapshot write",
		},
	)

	// Store Metrics
	StoreOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mandi_store_operations_total",
			Help: "Total number of snapshot store operations",
		},
		[]string{"backend", "operation", "result"}, // result: hit/miss/success/error
	)

	// Marketplace Metrics
	AuthEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mandi_auth_events_total",
			Help: "Signup and login outcomes",
		},
		[]string{"event", "result"},
	)

	// Rate Limiting Metrics
	RateLimitRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mandi_rate_limit_requests_total",
			Help: "Total number of requests processed by rate limiter",
		},
		[]string{"result"}, // result: allowed/blocked
	)

	RateLimitClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mandi_rate_limit_clients",
			Help: "Number of client limiters currently tracked",
		},
	)

	// Application Metrics
	ApplicationInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mandi_application_info",
			Help: "Application information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordHTTPRequest records HTTP request metrics
func RecordHTTPRequest(method, path string, statusCode int, duration float64, responseSize int64) {
	HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)

	if responseSize > 0 {
		HTTPResponseSizeBytes.WithLabelValues(method, path).Observe(float64(responseSize))
	}
}

// RecordUpstreamPage records one upstream page request. statusCode 0 means no response.
func RecordUpstreamPage(service string, statusCode int, duration float64) {
	UpstreamPageRequestsTotal.WithLabelValues(service, strconv.Itoa(statusCode)).Inc()
	UpstreamPageDuration.WithLabelValues(service).Observe(duration)
}

// RecordUpstreamRetry records upstream retry attempts
func RecordUpstreamRetry(service string, attempt int) {
	UpstreamRetries.WithLabelValues(service, strconv.Itoa(attempt)).Inc()
}

// UpdateCircuitBreakerState updates circuit breaker state
// state: 0=closed, 1=open, 2=half_open
func UpdateCircuitBreakerState(service string, state int) {
	CircuitBreakerState.WithLabelValues(service).Set(float64(state))
}

// RecordRefresh records the outcome of one refresh run. An empty kind means success.
func RecordRefresh(trigger, kind string, duration float64) {
	result := kind
	if result == "" {
		result = "success"
	}
	RefreshesTotal.WithLabelValues(trigger, result).Inc()
	RefreshDuration.WithLabelValues(trigger).Observe(duration)
}

// UpdateSnapshot publishes the size and age of the latest snapshot
func UpdateSnapshot(records int, updatedAt time.Time) {
	SnapshotRecords.Set(float64(records))
	SnapshotUpdatedTimestamp.Set(float64(updatedAt.Unix()))
}

// RecordStoreOperation records snapshot store operation metrics
func RecordStoreOperation(backend, operation, result string) {
	StoreOperationsTotal.WithLabelValues(backend, operation, result).Inc()
}

// RecordAuthEvent records signup/login results
func RecordAuthEvent(event string, success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	AuthEventsTotal.WithLabelValues(event, result).Inc()
}

// RecordRateLimitResult records rate limiting results
func RecordRateLimitResult(allowed bool) {
	result := "blocked"
	if allowed {
		result = "allowed"
	}
	RateLimitRequestsTotal.WithLabelValues(result).Inc()
}

// UpdateRateLimitClients updates the tracked clients gauge
func UpdateRateLimitClients(n int) {
	RateLimitClients.Set(float64(n))
}

// SetApplicationInfo sets application information
func SetApplicationInfo(version, goVersion string) {
	ApplicationInfo.WithLabelValues(version, goVersion).Set(1)
}
