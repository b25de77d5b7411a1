package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// LogFormat selects the zap encoder
type LogFormat string

const (
	FormatJSON LogFormat = "json"
	FormatText LogFormat = "text"
)

// LoggerConfig describes the base logger every domain logger wraps
type LoggerConfig struct {
	Level       LogLevel
	Format      LogFormat
	Output      io.Writer
	Service     string
	Version     string
	Environment string
	AddSource   bool // caller file:line on every entry
}

// DefaultConfig is used when the global loggers are touched before main initializes them
func DefaultConfig() *LoggerConfig {
	return &LoggerConfig{
		Level:       LevelInfo,
		Format:      FormatJSON,
		Output:      os.Stdout,
		Service:     "mandi-service",
		Version:     "dev",
		Environment: "development",
	}
}

func NewConfig(service, version, environment string) *LoggerConfig {
	config := DefaultConfig()
	config.Service = service
	config.Version = version
	config.Environment = environment
	return config
}

func (c *LoggerConfig) WithLevel(level LogLevel) *LoggerConfig {
	c.Level = level
	return c
}

func (c *LoggerConfig) WithFormat(format LogFormat) *LoggerConfig {
	c.Format = format
	return c
}

func (c *LoggerConfig) WithOutput(output io.Writer) *LoggerConfig {
	c.Output = output
	return c
}

func (c *LoggerConfig) WithSource(addSource bool) *LoggerConfig {
	c.AddSource = addSource
	return c
}

// InvalidSettingError reports a logger setting that cannot be used
type InvalidSettingError struct {
	Setting string
	Value   string
}

func (e *InvalidSettingError) Error() string {
	return fmt.Sprintf("logging: invalid %s %q", e.Setting, e.Value)
}

// Validate rejects configs the zap builder cannot honour
func (c *LoggerConfig) Validate() error {
	switch c.Level {
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
	default:
		return &InvalidSettingError{Setting: "level", Value: string(c.Level)}
	}

	if c.Format != FormatJSON && c.Format != FormatText {
		return &InvalidSettingError{Setting: "format", Value: string(c.Format)}
	}
	if c.Output == nil {
		return &InvalidSettingError{Setting: "output", Value: "<nil>"}
	}
	if strings.TrimSpace(c.Service) == "" {
		return &InvalidSettingError{Setting: "service", Value: c.Service}
	}
	return nil
}

// LogLevelFromString accepts any case plus "warning". Unknown values fall back to INFO,
// config.Validator has already rejected them at startup.
func LogLevelFromString(level string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return LevelDebug
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

func LogFormatFromString(format string) LogFormat {
	if strings.EqualFold(strings.TrimSpace(format), string(FormatText)) {
		return FormatText
	}
	return FormatJSON
}
