package logging

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// StructuredLogger implementa la interfaz Logger sobre zap
type StructuredLogger struct {
	config *LoggerConfig
	level  zap.AtomicLevel
	logger *zap.Logger
}

// NewStructuredLogger crea un nuevo logger estructurado
func NewStructuredLogger(config *LoggerConfig) (*StructuredLogger, error) {
	if config == nil {
		config = DefaultConfig()
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid logger config: %w", err)
	}

	level := zap.NewAtomicLevelAt(toZapLevel(config.Level))
	return &StructuredLogger{
		config: config,
		level:  level,
		logger: buildZapLogger(config, level),
	}, nil
}

// buildZapLogger arma el core de zap: JSON para producción, consola para desarrollo
func buildZapLogger(config *LoggerConfig, level zap.AtomicLevel) *zap.Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = FieldTimestamp
	encoderConfig.LevelKey = FieldLevel
	encoderConfig.MessageKey = FieldMessage
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	var encoder zapcore.Encoder
	switch config.Format {
	case FormatText:
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	default:
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(config.Output), level)

	var opts []zap.Option
	if config.AddSource {
		// public method -> log -> zap
		opts = append(opts, zap.AddCaller(), zap.AddCallerSkip(2))
	}

	return zap.New(core, opts...).With(
		zap.String(FieldService, config.Service),
		zap.String(FieldVersion, config.Version),
		zap.String("environment", config.Environment),
	)
}

func toZapLevel(level LogLevel) zapcore.Level {
	switch level {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// log escribe una entrada de log estructurada
func (sl *StructuredLogger) log(ctx context.Context, level LogLevel, message string, fields Fields) {
	zapLevel := toZapLevel(level)
	if !sl.level.Enabled(zapLevel) {
		return
	}

	if ce := sl.logger.Check(zapLevel, message); ce != nil {
		ce.Write(sl.zapFields(ctx, fields)...)
	}
}

// zapFields convierte Fields y el contexto del request en campos de zap
func (sl *StructuredLogger) zapFields(ctx context.Context, fields Fields) []zap.Field {
	out := make([]zap.Field, 0, len(fields)+2)

	if ctx != nil {
		if requestID := GetRequestID(ctx); requestID != "" {
			out = append(out, zap.String(FieldRequestID, requestID))
		}

		// Agregar duración si hay tiempo de inicio en el contexto
		if startTime := GetStartTime(ctx); !startTime.IsZero() {
			if _, ok := fields[FieldDuration]; !ok {
				out = append(out, zap.Float64(FieldDuration, durationMs(time.Since(startTime))))
			}
		}
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		out = append(out, zap.Any(k, fields[k]))
	}
	return out
}

// Debug logs a debug message
func (sl *StructuredLogger) Debug(ctx context.Context, message string, fields Fields) {
	sl.log(ctx, LevelDebug, message, fields)
}

// Info logs an info message
func (sl *StructuredLogger) Info(ctx context.Context, message string, fields Fields) {
	sl.log(ctx, LevelInfo, message, fields)
}

// Warn logs a warning message
func (sl *StructuredLogger) Warn(ctx context.Context, message string, fields Fields) {
	sl.log(ctx, LevelWarn, message, fields)
}

// Error logs an error message
func (sl *StructuredLogger) Error(ctx context.Context, message string, fields Fields) {
	sl.log(ctx, LevelError, message, fields)
}

// InfoWithError logs an info message with error details
func (sl *StructuredLogger) InfoWithError(ctx context.Context, message string, err error, fields Fields) {
	sl.log(ctx, LevelInfo, message, enrichWithError(fields, err))
}

// WarnWithError logs a warning message with error details
func (sl *StructuredLogger) WarnWithError(ctx context.Context, message string, err error, fields Fields) {
	sl.log(ctx, LevelWarn, message, enrichWithError(fields, err))
}

// ErrorWithError logs an error message with error details
func (sl *StructuredLogger) ErrorWithError(ctx context.Context, message string, err error, fields Fields) {
	sl.log(ctx, LevelError, message, enrichWithError(fields, err))
}

// enrichWithError copia los campos y añade información del error
func enrichWithError(fields Fields, err error) Fields {
	if err == nil {
		return fields
	}

	enriched := make(Fields, len(fields)+2)
	for k, v := range fields {
		enriched[k] = v
	}
	enriched[FieldError] = err.Error()
	enriched[FieldErrorType] = errorType(err)
	return enriched
}

// SetLevel establece el nivel de logging
func (sl *StructuredLogger) SetLevel(level LogLevel) {
	sl.config.Level = level
	sl.level.SetLevel(toZapLevel(level))
}

// GetLevel retorna el nivel actual de logging
func (sl *StructuredLogger) GetLevel() LogLevel {
	return sl.config.Level
}

// GetConfig retorna la configuración actual
func (sl *StructuredLogger) GetConfig() *LoggerConfig {
	return sl.config
}

// Sync flushes buffered entries
func (sl *StructuredLogger) Sync() error {
	return sl.logger.Sync()
}
