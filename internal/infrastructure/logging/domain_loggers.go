package logging

import (
	"context"
)

// BaseDomainLogger implementa funcionalidad común para loggers de dominio
type BaseDomainLogger struct {
	Logger
	domain string
}

func newBaseDomainLogger(base Logger, domain string) *BaseDomainLogger {
	return &BaseDomainLogger{Logger: base, domain: domain}
}

// Domain retorna el dominio del logger
func (dl *BaseDomainLogger) Domain() string {
	return dl.domain
}

// withDomain copia los campos y agrega el dominio sin mutar el mapa del caller
func (dl *BaseDomainLogger) withDomain(fields Fields) Fields {
	out := make(Fields, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}
	out[FieldDomain] = dl.domain
	return out
}

// logWithDomain agrega el campo de dominio a los logs
func (dl *BaseDomainLogger) logWithDomain(ctx context.Context, level LogLevel, message string, fields Fields) {
	fields = dl.withDomain(fields)

	switch level {
	case LevelDebug:
		dl.Logger.Debug(ctx, message, fields)
	case LevelInfo:
		dl.Logger.Info(ctx, message, fields)
	case LevelWarn:
		dl.Logger.Warn(ctx, message, fields)
	case LevelError:
		dl.Logger.Error(ctx, message, fields)
	}
}

// Override métodos base para incluir dominio
func (dl *BaseDomainLogger) Debug(ctx context.Context, message string, fields Fields) {
	dl.logWithDomain(ctx, LevelDebug, message, fields)
}

func (dl *BaseDomainLogger) Info(ctx context.Context, message string, fields Fields) {
	dl.logWithDomain(ctx, LevelInfo, message, fields)
}

func (dl *BaseDomainLogger) Warn(ctx context.Context, message string, fields Fields) {
	dl.logWithDomain(ctx, LevelWarn, message, fields)
}

func (dl *BaseDomainLogger) Error(ctx context.Context, message string, fields Fields) {
	dl.logWithDomain(ctx, LevelError, message, fields)
}

func (dl *BaseDomainLogger) InfoWithError(ctx context.Context, message string, err error, fields Fields) {
	dl.Logger.InfoWithError(ctx, message, err, dl.withDomain(fields))
}

func (dl *BaseDomainLogger) WarnWithError(ctx context.Context, message string, err error, fields Fields) {
	dl.Logger.WarnWithError(ctx, message, err, dl.withDomain(fields))
}

func (dl *BaseDomainLogger) ErrorWithError(ctx context.Context, message string, err error, fields Fields) {
	dl.Logger.ErrorWithError(ctx, message, err, dl.withDomain(fields))
}

// HTTPDomainLogger especializado para logs HTTP
type HTTPDomainLogger struct {
	*BaseDomainLogger
}

// NewHTTPLogger crea un nuevo logger HTTP
func NewHTTPLogger(baseLogger Logger) HTTPLogger {
	return &HTTPDomainLogger{BaseDomainLogger: newBaseDomainLogger(baseLogger, "http")}
}

func (hl *HTTPDomainLogger) RequestReceived(ctx context.Context, method, path, userAgent, remoteIP string) {
	fields := NewFieldBuilder().
		WithHTTP(method, path, 0).
		WithClient(userAgent, remoteIP).
		Build()

	hl.Debug(ctx, "HTTP request received", fields)
}

func (hl *HTTPDomainLogger) RequestCompleted(ctx context.Context, method, path string, statusCode int, duration float64) {
	fields := NewFieldBuilder().
		WithHTTP(method, path, statusCode).
		With(FieldDuration, duration).
		Build()

	level := LevelInfo
	switch {
	case statusCode >= 500:
		level = LevelError
	case statusCode >= 400:
		level = LevelWarn
	}

	hl.logWithDomain(ctx, level, "HTTP request completed", fields)
}

func (hl *HTTPDomainLogger) RequestFailed(ctx context.Context, method, path string, statusCode int, err error, duration float64) {
	fields := NewFieldBuilder().
		WithHTTP(method, path, statusCode).
		With(FieldDuration, duration).
		Build()

	hl.ErrorWithError(ctx, "HTTP request failed", err, fields)
}

// ExternalAPIDomainLogger registra cada página pedida al feed
type ExternalAPIDomainLogger struct {
	*BaseDomainLogger
}

// NewExternalAPILogger crea un nuevo logger para APIs externas
func NewExternalAPILogger(baseLogger Logger) ExternalAPILogger {
	return &ExternalAPIDomainLogger{BaseDomainLogger: newBaseDomainLogger(baseLogger, "external_api")}
}

func (el *ExternalAPIDomainLogger) PageRequested(ctx context.Context, service string, page, offset, limit int) {
	el.Debug(ctx, "Upstream page requested", Fields{
		FieldExternalService: service,
		FieldPage:            page,
		FieldOffset:          offset,
		FieldLimit:           limit,
	})
}

func (el *ExternalAPIDomainLogger) PageFetched(ctx context.Context, service string, page, records, statusCode int, duration float64) {
	el.Info(ctx, "Upstream page fetched", Fields{
		FieldExternalService:  service,
		FieldPage:             page,
		FieldRecords:          records,
		FieldExternalStatus:   statusCode,
		FieldExternalDuration: duration,
	})
}

func (el *ExternalAPIDomainLogger) PageFailed(ctx context.Context, service string, page, offset, statusCode int, err error, duration float64) {
	fields := Fields{
		FieldExternalService:  service,
		FieldPage:             page,
		FieldOffset:           offset,
		FieldExternalDuration: duration,
	}
	if statusCode > 0 {
		fields[FieldExternalStatus] = statusCode
	}

	el.ErrorWithError(ctx, "Upstream page failed", err, fields)
}

// StoreDomainLogger registra lecturas y escrituras del snapshot
type StoreDomainLogger struct {
	*BaseDomainLogger
}

// NewStoreLogger crea un logger para el snapshot store
func NewStoreLogger(baseLogger Logger) StoreLogger {
	return &StoreDomainLogger{BaseDomainLogger: newBaseDomainLogger(baseLogger, "store")}
}

func (sl *StoreDomainLogger) SnapshotRead(ctx context.Context, backend string, found bool, records int) {
	fields := NewFieldBuilder().
		WithStore(backend, StoreOpRead).
		With(FieldStoreFound, found).
		With(FieldRecords, records).
		Build()

	sl.Debug(ctx, "Snapshot read", fields)
}

func (sl *StoreDomainLogger) SnapshotWritten(ctx context.Context, backend string, records int) {
	fields := NewFieldBuilder().
		WithStore(backend, StoreOpWrite).
		With(FieldRecords, records).
		Build()

	sl.Info(ctx, "Snapshot written", fields)
}

func (sl *StoreDomainLogger) StoreError(ctx context.Context, backend, operation string, err error) {
	sl.ErrorWithError(ctx, "Snapshot store operation failed", err, NewFieldBuilder().WithStore(backend, operation).Build())
}

// BusinessDomainLogger cubre el ciclo de refresh y eventos del marketplace
type BusinessDomainLogger struct {
	*BaseDomainLogger
}

// NewBusinessLogger crea un nuevo logger para lógica de negocio
func NewBusinessLogger(baseLogger Logger) BusinessLogger {
	return &BusinessDomainLogger{BaseDomainLogger: newBaseDomainLogger(baseLogger, "business")}
}

func (bl *BusinessDomainLogger) RefreshStarted(ctx context.Context, trigger string) {
	bl.Info(ctx, "Mandi refresh started", NewFieldBuilder().WithRefresh(trigger, -1).Build())
}

func (bl *BusinessDomainLogger) RefreshCompleted(ctx context.Context, trigger string, records int, duration float64) {
	fields := NewFieldBuilder().
		WithRefresh(trigger, records).
		With(FieldDuration, duration).
		Build()

	bl.Info(ctx, "Mandi refresh completed", fields)
}

func (bl *BusinessDomainLogger) RefreshFailed(ctx context.Context, trigger string, err error) {
	bl.ErrorWithError(ctx, "Mandi refresh failed", err, NewFieldBuilder().WithRefresh(trigger, -1).Build())
}

func (bl *BusinessDomainLogger) ValidationFailed(ctx context.Context, input string, reason string) {
	bl.Warn(ctx, "Validation failed", Fields{
		FieldValidation:       input,
		FieldSuspiciousReason: reason,
	})
}

// SecurityDomainLogger especializado para seguridad
type SecurityDomainLogger struct {
	*BaseDomainLogger
}

// NewSecurityLogger crea un nuevo logger de seguridad
func NewSecurityLogger(baseLogger Logger) SecurityLogger {
	return &SecurityDomainLogger{BaseDomainLogger: newBaseDomainLogger(baseLogger, "security")}
}

func (sl *SecurityDomainLogger) RateLimitExceeded(ctx context.Context, clientIP string, endpoint string) {
	sl.Warn(ctx, "Rate limit exceeded", Fields{
		FieldClientIP:  clientIP,
		FieldPath:      endpoint,
		FieldRateLimit: true,
	})
}

func (sl *SecurityDomainLogger) AuthenticationFailed(ctx context.Context, clientIP string, reason string) {
	sl.Warn(ctx, "Authentication failed", Fields{
		FieldClientIP:         clientIP,
		FieldSuspiciousReason: reason,
	})
}

func (sl *SecurityDomainLogger) AccessDenied(ctx context.Context, userID string, resource string) {
	sl.Warn(ctx, "Access denied", Fields{
		FieldUserID: userID,
		FieldPath:   resource,
	})
}

func (sl *SecurityDomainLogger) SuspiciousActivity(ctx context.Context, clientIP string, activity string) {
	sl.Error(ctx, "Suspicious activity detected", Fields{
		FieldClientIP:         clientIP,
		FieldSuspiciousReason: activity,
	})
}
