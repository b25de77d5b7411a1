package logging

import (
	"fmt"
	"time"
)

// Fields are the structured key/values attached to one entry
type Fields map[string]interface{}

type LogLevel string

const (
	LevelDebug LogLevel = "DEBUG"
	LevelInfo  LogLevel = "INFO"
	LevelWarn  LogLevel = "WARN"
	LevelError LogLevel = "ERROR"
)

// Keys written by the encoder and by StructuredLogger itself
const (
	FieldTimestamp = "timestamp"
	FieldLevel     = "level"
	FieldMessage   = "message"
	FieldService   = "service"
	FieldVersion   = "version"
	FieldDomain    = "domain"
	FieldRequestID = "request_id"
	FieldError     = "error"
	FieldErrorType = "error_type"
	FieldDuration  = "duration_ms"
)

// HTTP
const (
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldUserAgent  = "user_agent"
	FieldRemoteIP   = "remote_ip"
	FieldQuery      = "query"
	FieldHeaders    = "headers"
)

// Upstream feed
const (
	FieldExternalService  = "external_service"
	FieldExternalEndpoint = "external_endpoint"
	FieldExternalStatus   = "external_status_code"
	FieldExternalDuration = "external_duration_ms"
	FieldPage             = "page"
	FieldOffset           = "offset"
	FieldLimit            = "limit"
)

// Snapshot store
const (
	FieldStoreBackend   = "store_backend"
	FieldStoreOperation = "store_operation"
	FieldStoreFound     = "store_found"

	StoreOpRead  = "read"
	StoreOpWrite = "write"
)

// Refresh pipeline and marketplace
const (
	FieldTrigger    = "trigger"
	FieldRecords    = "records"
	FieldErrorKind  = "error_kind"
	FieldUserID     = "user_id"
	FieldValidation = "validation"
)

// Security
const (
	FieldClientIP         = "client_ip"
	FieldSuspiciousReason = "suspicious_reason"
	FieldRateLimit        = "rate_limit"
)

// FieldBuilder collects fields for the domain loggers. Build returns nil when nothing was set.
type FieldBuilder struct {
	fields Fields
}

func NewFieldBuilder() *FieldBuilder {
	return &FieldBuilder{fields: make(Fields, 4)}
}

func (fb *FieldBuilder) WithError(err error) *FieldBuilder {
	if err != nil {
		fb.fields[FieldError] = err.Error()
		fb.fields[FieldErrorType] = errorType(err)
	}
	return fb
}

// WithDuration stores the duration in milliseconds
func (fb *FieldBuilder) WithDuration(d time.Duration) *FieldBuilder {
	fb.fields[FieldDuration] = durationMs(d)
	return fb
}

// WithHTTP adds method and path, plus the status when it is known
func (fb *FieldBuilder) WithHTTP(method, path string, statusCode int) *FieldBuilder {
	fb.fields[FieldMethod] = method
	fb.fields[FieldPath] = path
	if statusCode > 0 {
		fb.fields[FieldStatusCode] = statusCode
	}
	return fb
}

func (fb *FieldBuilder) WithClient(userAgent, remoteIP string) *FieldBuilder {
	if userAgent != "" {
		fb.fields[FieldUserAgent] = userAgent
	}
	if remoteIP != "" {
		fb.fields[FieldRemoteIP] = remoteIP
	}
	return fb
}

func (fb *FieldBuilder) WithStore(backend, operation string) *FieldBuilder {
	fb.fields[FieldStoreBackend] = backend
	fb.fields[FieldStoreOperation] = operation
	return fb
}

// WithRefresh tags a refresh run. records < 0 means the count is not known yet.
func (fb *FieldBuilder) WithRefresh(trigger string, records int) *FieldBuilder {
	fb.fields[FieldTrigger] = trigger
	if records >= 0 {
		fb.fields[FieldRecords] = records
	}
	return fb
}

// With sets an arbitrary field, ignoring empty keys and nil values
func (fb *FieldBuilder) With(key string, value interface{}) *FieldBuilder {
	if key != "" && value != nil {
		fb.fields[key] = value
	}
	return fb
}

func (fb *FieldBuilder) Build() Fields {
	if len(fb.fields) == 0 {
		return nil
	}
	return fb.fields
}

func durationMs(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}

func errorType(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("%T", err)
}
