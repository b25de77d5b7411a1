package logging

import (
	"context"
)

// Logger define la interfaz principal para logging estructurado
type Logger interface {
	// Métodos básicos de logging por nivel
	Debug(ctx context.Context, message string, fields Fields)
	Info(ctx context.Context, message string, fields Fields)
	Warn(ctx context.Context, message string, fields Fields)
	Error(ctx context.Context, message string, fields Fields)

	// Métodos con error incluido
	InfoWithError(ctx context.Context, message string, err error, fields Fields)
	WarnWithError(ctx context.Context, message string, err error, fields Fields)
	ErrorWithError(ctx context.Context, message string, err error, fields Fields)

	// Configuración
	SetLevel(level LogLevel)
	GetLevel() LogLevel
}

// DomainLogger representa loggers especializados por dominio
type DomainLogger interface {
	Logger

	Domain() string
}

// HTTPLogger especializado para logs relacionados con HTTP
type HTTPLogger interface {
	DomainLogger

	RequestReceived(ctx context.Context, method, path, userAgent, remoteIP string)
	RequestCompleted(ctx context.Context, method, path string, statusCode int, duration float64)
	RequestFailed(ctx context.Context, method, path string, statusCode int, err error, duration float64)
}

// ExternalAPILogger especializado para logs de APIs externas
type ExternalAPILogger interface {
	DomainLogger

	PageRequested(ctx context.Context, service string, page, offset, limit int)
	PageFetched(ctx context.Context, service string, page, records, statusCode int, duration float64)
	PageFailed(ctx context.Context, service string, page, offset, statusCode int, err error, duration float64)
}

// StoreLogger covers snapshot store reads and writes
type StoreLogger interface {
	DomainLogger

	SnapshotRead(ctx context.Context, backend string, found bool, records int)
	SnapshotWritten(ctx context.Context, backend string, records int)
	StoreError(ctx context.Context, backend, operation string, err error)
}

// BusinessLogger covers the refresh pipeline and marketplace events
type BusinessLogger interface {
	DomainLogger

	RefreshStarted(ctx context.Context, trigger string)
	RefreshCompleted(ctx context.Context, trigger string, records int, duration float64)
	RefreshFailed(ctx context.Context, trigger string, err error)
	ValidationFailed(ctx context.Context, input string, reason string)
}

// SecurityLogger especializado para logs relacionados con seguridad
type SecurityLogger interface {
	DomainLogger

	RateLimitExceeded(ctx context.Context, clientIP string, endpoint string)
	AuthenticationFailed(ctx context.Context, clientIP string, reason string)
	AccessDenied(ctx context.Context, userID string, resource string)
	SuspiciousActivity(ctx context.Context, clientIP string, activity string)
}
