package logging

import (
	"fmt"
	"sync"
)

// LoggerFactory facilita la creación de diferentes tipos de loggers
type LoggerFactory struct {
	baseLogger *StructuredLogger
}

// NewLoggerFactory crea una nueva factory de loggers
func NewLoggerFactory(config *LoggerConfig) (*LoggerFactory, error) {
	if config == nil {
		config = DefaultConfig()
	}

	baseLogger, err := NewStructuredLogger(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create base logger: %w", err)
	}

	return &LoggerFactory{
		baseLogger: baseLogger,
	}, nil
}

// GetBaseLogger retorna el logger base
func (f *LoggerFactory) GetBaseLogger() Logger {
	return f.baseLogger
}

// UpdateLogLevel actualiza el nivel de log del logger base
func (f *LoggerFactory) UpdateLogLevel(level LogLevel) {
	f.baseLogger.SetLevel(level)
}

// LoggerSet contiene todos los loggers especializados
type LoggerSet struct {
	Base        Logger
	HTTP        HTTPLogger
	ExternalAPI ExternalAPILogger
	Store       StoreLogger
	Business    BusinessLogger
	Security    SecurityLogger
}

// GetLoggerSet retorna un set completo de loggers especializados
func (f *LoggerFactory) GetLoggerSet() *LoggerSet {
	return NewLoggerSet(f.baseLogger)
}

// NewLoggerSet arma los loggers de dominio sobre cualquier Logger base
func NewLoggerSet(base Logger) *LoggerSet {
	return &LoggerSet{
		Base:        base,
		HTTP:        NewHTTPLogger(base),
		ExternalAPI: NewExternalAPILogger(base),
		Store:       NewStoreLogger(base),
		Business:    NewBusinessLogger(base),
		Security:    NewSecurityLogger(base),
	}
}

var (
	globalMu      sync.RWMutex
	globalFactory *LoggerFactory
	globalLoggers *LoggerSet
)

// InitializeGlobalLoggers inicializa los loggers globales
func InitializeGlobalLoggers(config *LoggerConfig) error {
	factory, err := NewLoggerFactory(config)
	if err != nil {
		return fmt.Errorf("failed to initialize global loggers: %w", err)
	}

	globalMu.Lock()
	globalFactory = factory
	globalLoggers = factory.GetLoggerSet()
	globalMu.Unlock()
	return nil
}

// GetGlobalLoggers retorna todos los loggers globales
func GetGlobalLoggers() *LoggerSet {
	globalMu.RLock()
	loggers := globalLoggers
	globalMu.RUnlock()

	if loggers == nil {
		// Fallback en caso de que no se hayan inicializado los loggers globales
		_ = InitializeGlobalLoggers(DefaultConfig())
		globalMu.RLock()
		loggers = globalLoggers
		globalMu.RUnlock()
	}
	return loggers
}

// GetGlobalLogger retorna el logger base global
func GetGlobalLogger() Logger {
	return GetGlobalLoggers().Base
}

// SetGlobalLogLevel actualiza el nivel de log global
func SetGlobalLogLevel(level LogLevel) {
	globalMu.RLock()
	defer globalMu.RUnlock()
	if globalFactory != nil {
		globalFactory.UpdateLogLevel(level)
	}
}

// Sync vacía los buffers del logger global
func Sync() error {
	globalMu.RLock()
	defer globalMu.RUnlock()
	if globalFactory == nil {
		return nil
	}
	return globalFactory.baseLogger.Sync()
}

// NewDevelopmentConfig crea una configuración para desarrollo
func NewDevelopmentConfig(service string) *LoggerConfig {
	return NewConfig(service, "dev", "development").
		WithLevel(LevelDebug).
		WithFormat(FormatText).
		WithSource(true)
}

// NewProductionConfig crea una configuración para producción
func NewProductionConfig(service, version string) *LoggerConfig {
	return NewConfig(service, version, "production").
		WithLevel(LevelInfo).
		WithFormat(FormatJSON).
		WithSource(false)
}

// ConfigFromSettings builds a logger config from the application's logging section
func ConfigFromSettings(service, version, level, format, environment string) *LoggerConfig {
	var config *LoggerConfig
	if environment == "production" {
		config = NewProductionConfig(service, version)
	} else {
		config = NewDevelopmentConfig(service)
		config.Version = version
		config.Environment = environment
	}

	if level != "" {
		config.WithLevel(LogLevelFromString(level))
	}
	if format != "" {
		config.WithFormat(LogFormatFromString(format))
	}
	return config
}
