package config

import (
	"fmt"
	"net/netip"
	"net/url"
	"strings"
	"time"
)

// Validator valida la configuración cargada
type Validator struct{}

// NewValidator crea una nueva instancia del validador
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks every section. A missing upstream API key is not a startup error:
// the fetcher reports it when a refresh is attempted.
func (v *Validator) Validate(config *Config) error {
	if err := v.validateServer(config.Server); err != nil {
		return fmt.Errorf("server config validation failed: %w", err)
	}

	if err := v.validateCORS(config.CORS); err != nil {
		return fmt.Errorf("cors config validation failed: %w", err)
	}

	if err := v.validateUpstream(config.Upstream); err != nil {
		return fmt.Errorf("upstream config validation failed: %w", err)
	}

	if err := v.validateRefresh(config.Refresh); err != nil {
		return fmt.Errorf("refresh config validation failed: %w", err)
	}

	if err := v.validateSnapshot(config); err != nil {
		return fmt.Errorf("snapshot config validation failed: %w", err)
	}

	if err := v.validateDatabase(config.Database); err != nil {
		return fmt.Errorf("database config validation failed: %w", err)
	}

	if err := v.validateAuth(config.Auth); err != nil {
		return fmt.Errorf("auth config validation failed: %w", err)
	}

	if err := v.validateRateLimit(config.RateLimit); err != nil {
		return fmt.Errorf("rate limit config validation failed: %w", err)
	}

	if err := v.validateLogging(config.Logging); err != nil {
		return fmt.Errorf("logging config validation failed: %w", err)
	}

	return nil
}

// validateServer valida la configuración del servidor
func (v *Validator) validateServer(config ServerConfig) error {
	if config.Port <= 0 || config.Port > 65535 {
		return fmt.Errorf("invalid port: %d, must be between 1-65535", config.Port)
	}

	if config.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown_timeout must be positive, got: %v", config.ShutdownTimeout)
	}

	if config.ShutdownTimeout > 5*time.Minute {
		return fmt.Errorf("shutdown_timeout too long: %v, max 5 minutes", config.ShutdownTimeout)
	}

	if config.ReadTimeout <= 0 || config.WriteTimeout <= 0 {
		return fmt.Errorf("read_timeout and write_timeout must be positive")
	}

	return nil
}

func (v *Validator) validateCORS(config CORSConfig) error {
	origins := config.Origins()
	// rs/cors falls back to "*" on an empty list, which cannot go with credentials
	if len(origins) == 0 {
		return fmt.Errorf("cors allowed_origins cannot be empty when client_url is not set")
	}

	for _, origin := range origins {
		if err := v.validateURL(origin, "cors origin"); err != nil {
			return err
		}
	}
	return nil
}

// validateUpstream valida la configuración del feed de precios
func (v *Validator) validateUpstream(config UpstreamConfig) error {
	if err := v.validateURL(config.BaseURL, "upstream base_url"); err != nil {
		return err
	}

	if strings.TrimSpace(config.ResourceID) == "" {
		return fmt.Errorf("upstream resource_id cannot be empty")
	}

	if config.PageSize < 1 {
		return fmt.Errorf("upstream page_size must be at least 1, got: %d", config.PageSize)
	}

	// a zero cap would mean fetching forever
	if config.MaxPages < 1 {
		return fmt.Errorf("upstream max_pages must be at least 1, got: %d", config.MaxPages)
	}

	if config.RequestTimeout <= 0 {
		return fmt.Errorf("upstream request_timeout must be positive, got: %v", config.RequestTimeout)
	}

	if config.MaxAttempts < 1 || config.MaxAttempts > 10 {
		return fmt.Errorf("upstream max_attempts must be between 1-10, got: %d", config.MaxAttempts)
	}

	if config.MaxAttempts > 1 && config.RetryDelay <= 0 {
		return fmt.Errorf("upstream retry_delay must be positive when retries are enabled")
	}

	if config.CircuitBreaker.Enabled {
		if config.CircuitBreaker.ConsecutiveFailures == 0 {
			return fmt.Errorf("circuit_breaker consecutive_failures must be positive when enabled")
		}
		if config.CircuitBreaker.OpenTimeout <= 0 {
			return fmt.Errorf("circuit_breaker open_timeout must be positive when enabled")
		}
	}

	return nil
}

// validateRefresh valida el intervalo del scheduler
func (v *Validator) validateRefresh(config RefreshConfig) error {
	if !config.Enabled {
		return nil
	}

	if config.Interval <= 0 {
		return fmt.Errorf("refresh interval must be positive, got: %v", config.Interval)
	}

	if config.Interval < time.Minute {
		return fmt.Errorf("refresh interval too short: %v, min 1 minute", config.Interval)
	}

	if config.Interval > 24*time.Hour {
		return fmt.Errorf("refresh interval too long: %v, max 24 hours", config.Interval)
	}

	return nil
}

// validateSnapshot checks the chosen backend has what it needs
func (v *Validator) validateSnapshot(config *Config) error {
	validBackends := []string{"memory", "redis", "mongo", "sql"}
	if !contains(validBackends, config.Snapshot.Backend) {
		return fmt.Errorf("invalid snapshot backend: %s, must be one of: %v", config.Snapshot.Backend, validBackends)
	}

	switch strings.ToLower(config.Snapshot.Backend) {
	case "redis":
		if config.Snapshot.RedisKey == "" {
			return fmt.Errorf("snapshot redis_key cannot be empty")
		}
		return v.validateRedis(config.Redis)
	case "mongo":
		return v.validateMongo(config.Mongo)
	}

	return nil
}

// validateRedis valida la configuración de Redis
func (v *Validator) validateRedis(config RedisConfig) error {
	if config.Addr == "" {
		return fmt.Errorf("redis addr cannot be empty")
	}

	if !strings.Contains(config.Addr, ":") {
		return fmt.Errorf("invalid redis addr format: %s, expected host:port", config.Addr)
	}

	if config.DB < 0 || config.DB > 15 {
		return fmt.Errorf("invalid redis DB: %d, must be between 0-15", config.DB)
	}

	return nil
}

func (v *Validator) validateMongo(config MongoConfig) error {
	if config.URI == "" {
		return fmt.Errorf("mongo uri cannot be empty (set MONGO_URI)")
	}

	if !strings.HasPrefix(config.URI, "mongodb://") && !strings.HasPrefix(config.URI, "mongodb+srv://") {
		return fmt.Errorf("invalid mongo uri scheme, expected mongodb:// or mongodb+srv://")
	}

	if config.Database == "" || config.Collection == "" {
		return fmt.Errorf("mongo database and collection cannot be empty")
	}

	if config.Timeout <= 0 {
		return fmt.Errorf("mongo timeout must be positive, got: %v", config.Timeout)
	}

	return nil
}

// validateDatabase valida la base de datos relacional
func (v *Validator) validateDatabase(config DatabaseConfig) error {
	validDrivers := []string{"sqlite", "mysql"}
	if !contains(validDrivers, config.Driver) {
		return fmt.Errorf("invalid database driver: %s, must be one of: %v", config.Driver, validDrivers)
	}

	if config.DSN == "" {
		return fmt.Errorf("database dsn cannot be empty")
	}

	if config.MaxOpenConns < 0 || config.MaxIdleConns < 0 {
		return fmt.Errorf("database connection limits cannot be negative")
	}

	return nil
}

// validateAuth valida la configuración de tokens
func (v *Validator) validateAuth(config AuthConfig) error {
	if len(config.JWTSecret) < 16 {
		return fmt.Errorf("jwt_secret must be at least 16 characters (set JWT_SECRET)")
	}

	if config.TokenTTL <= 0 {
		return fmt.Errorf("token_ttl must be positive, got: %v", config.TokenTTL)
	}

	if config.BcryptCost < 4 || config.BcryptCost > 31 {
		return fmt.Errorf("bcrypt_cost must be between 4-31, got: %d", config.BcryptCost)
	}

	return nil
}

// validateRateLimit valida la configuración de rate limiting
func (v *Validator) validateRateLimit(config RateLimitConfig) error {
	if config.Enabled {
		if config.RequestsPerSec <= 0 {
			return fmt.Errorf("rate_limit requests_per_second must be positive when enabled, got: %v", config.RequestsPerSec)
		}

		if config.Burst <= 0 {
			return fmt.Errorf("rate_limit burst must be positive when enabled, got: %d", config.Burst)
		}

		if config.Burst > 10000 {
			return fmt.Errorf("rate_limit burst too high: %d, max 10000", config.Burst)
		}
	}

	for _, proxy := range config.TrustedProxies {
		if _, err := netip.ParsePrefix(proxy); err == nil {
			continue
		}
		if _, err := netip.ParseAddr(proxy); err != nil {
			return fmt.Errorf("invalid rate_limit trusted proxy: %q", proxy)
		}
	}

	return nil
}

// validateLogging valida la configuración de logging
func (v *Validator) validateLogging(config LoggingConfig) error {
	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, strings.ToLower(config.Level)) {
		return fmt.Errorf("invalid log level: %s, must be one of: %v", config.Level, validLevels)
	}

	validFormats := []string{"json", "text"}
	if !contains(validFormats, strings.ToLower(config.Format)) {
		return fmt.Errorf("invalid log format: %s, must be one of: %v", config.Format, validFormats)
	}

	return nil
}

// validateURL valida que una URL sea válida para HTTP/HTTPS
func (v *Validator) validateURL(rawURL, fieldName string) error {
	if rawURL == "" {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid %s: %s, error: %v", fieldName, rawURL, err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("invalid %s scheme: %s, must be http or https", fieldName, parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("%s must have a host", fieldName)
	}

	return nil
}

// contains verifica si un slice contiene un elemento
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if strings.EqualFold(s, item) {
			return true
		}
	}
	return false
}
