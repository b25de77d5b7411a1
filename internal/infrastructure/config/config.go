package config

import (
	"time"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	CORS      CORSConfig      `yaml:"cors" mapstructure:"cors"`
	Upstream  UpstreamConfig  `yaml:"upstream" mapstructure:"upstream"`
	Refresh   RefreshConfig   `yaml:"refresh" mapstructure:"refresh"`
	Snapshot  SnapshotConfig  `yaml:"snapshot" mapstructure:"snapshot"`
	Redis     RedisConfig     `yaml:"redis" mapstructure:"redis"`
	Mongo     MongoConfig     `yaml:"mongo" mapstructure:"mongo"`
	Database  DatabaseConfig  `yaml:"database" mapstructure:"database"`
	Auth      AuthConfig      `yaml:"auth" mapstructure:"auth"`
	RateLimit RateLimitConfig `yaml:"rate_limit" mapstructure:"rate_limit"`
	Logging   LoggingConfig   `yaml:"logging" mapstructure:"logging"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" mapstructure:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// CORSConfig lists the browser origins allowed to call the API
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	ClientURL      string   `yaml:"client_url" mapstructure:"client_url"`
}

// UpstreamConfig describes the data.gov.in price resource
type UpstreamConfig struct {
	BaseURL        string               `yaml:"base_url" mapstructure:"base_url"`
	ResourceID     string               `yaml:"resource_id" mapstructure:"resource_id"`
	APIKey         string               `yaml:"api_key" mapstructure:"api_key"`
	PageSize       int                  `yaml:"page_size" mapstructure:"page_size"`
	MaxPages       int                  `yaml:"max_pages" mapstructure:"max_pages"`
	RequestTimeout time.Duration        `yaml:"request_timeout" mapstructure:"request_timeout"`
	MaxAttempts    int                  `yaml:"max_attempts" mapstructure:"max_attempts"`
	RetryDelay     time.Duration        `yaml:"retry_delay" mapstructure:"retry_delay"`
	CircuitBreaker CircuitBreakerConfig `yaml:"circuit_breaker" mapstructure:"circuit_breaker"`
}

// CircuitBreakerConfig guards the upstream against hammering while it is down
type CircuitBreakerConfig struct {
	Enabled             bool          `yaml:"enabled" mapstructure:"enabled"`
	ConsecutiveFailures uint32        `yaml:"consecutive_failures" mapstructure:"consecutive_failures"`
	OpenTimeout         time.Duration `yaml:"open_timeout" mapstructure:"open_timeout"`
}

// RefreshConfig controls the background refresh scheduler
type RefreshConfig struct {
	Enabled           bool          `yaml:"enabled" mapstructure:"enabled"`
	Interval          time.Duration `yaml:"interval" mapstructure:"interval"`
	RunOnStart        bool          `yaml:"run_on_start" mapstructure:"run_on_start"`
	CoalesceColdStart bool          `yaml:"coalesce_cold_start" mapstructure:"coalesce_cold_start"`
}

// SnapshotConfig selects where the latest snapshot lives
type SnapshotConfig struct {
	Backend  string `yaml:"backend" mapstructure:"backend"`
	RedisKey string `yaml:"redis_key" mapstructure:"redis_key"`
}

// RedisConfig contains Redis-specific configuration
type RedisConfig struct {
	Addr     string `yaml:"addr" mapstructure:"addr"`
	Password string `yaml:"password" mapstructure:"password"`
	DB       int    `yaml:"db" mapstructure:"db"`
}

// MongoConfig contains MongoDB-specific configuration
type MongoConfig struct {
	URI        string        `yaml:"uri" mapstructure:"uri"`
	Database   string        `yaml:"database" mapstructure:"database"`
	Collection string        `yaml:"collection" mapstructure:"collection"`
	Timeout    time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// DatabaseConfig configures the relational store used by users, ads, chat and requests
type DatabaseConfig struct {
	Driver          string        `yaml:"driver" mapstructure:"driver"`
	DSN             string        `yaml:"dsn" mapstructure:"dsn"`
	MaxOpenConns    int           `yaml:"max_open_conns" mapstructure:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns" mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `yaml:"auto_migrate" mapstructure:"auto_migrate"`
}

// AuthConfig contains bearer token configuration
type AuthConfig struct {
	JWTSecret  string        `yaml:"jwt_secret" mapstructure:"jwt_secret"`
	TokenTTL   time.Duration `yaml:"token_ttl" mapstructure:"token_ttl"`
	Issuer     string        `yaml:"issuer" mapstructure:"issuer"`
	BcryptCost int           `yaml:"bcrypt_cost" mapstructure:"bcrypt_cost"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled         bool          `yaml:"enabled" mapstructure:"enabled"`
	RequestsPerSec  float64       `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst           int           `yaml:"burst" mapstructure:"burst"`
	ClientTTL       time.Duration `yaml:"client_ttl" mapstructure:"client_ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" mapstructure:"cleanup_interval"`
	// TrustedProxies are IPs or CIDRs allowed to set X-Forwarded-For / X-Real-IP.
	// Empty means the peer address is always the client.
	TrustedProxies []string `yaml:"trusted_proxies" mapstructure:"trusted_proxies"`
}

// LoggingConfig contains logging system configuration
type LoggingConfig struct {
	Level       string `yaml:"level" mapstructure:"level"`
	Format      string `yaml:"format" mapstructure:"format"`
	Environment string `yaml:"environment" mapstructure:"environment"`
}

// GetDefaultConfig returns the default configuration
func GetDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            5000,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    5 * time.Minute, // cold-start fetch of 25 pages can be slow
			ShutdownTimeout: 30 * time.Second,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"http://localhost:5173", "http://localhost:5000"},
		},
		Upstream: UpstreamConfig{
			BaseURL:        "https://api.data.gov.in/resource",
			ResourceID:     "9ef84268-d588-465a-a308-a864a43d0070",
			APIKey:         "",
			PageSize:       5000,
			MaxPages:       25,
			RequestTimeout: 30 * time.Second,
			MaxAttempts:    1,
			RetryDelay:     500 * time.Millisecond,
			CircuitBreaker: CircuitBreakerConfig{
				Enabled:             true,
				ConsecutiveFailures: 5,
				OpenTimeout:         time.Minute,
			},
		},
		Refresh: RefreshConfig{
			Enabled:           true,
			Interval:          30 * time.Minute,
			RunOnStart:        true,
			CoalesceColdStart: true,
		},
		Snapshot: SnapshotConfig{
			Backend:  "sql",
			RedisKey: "mandi:snapshot:latest",
		},
		Redis: RedisConfig{
			Addr:     "localhost:6379",
			Password: "",
			DB:       0,
		},
		Mongo: MongoConfig{
			URI:        "",
			Database:   "mandi",
			Collection: "mandicaches",
			Timeout:    10 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:          "sqlite",
			DSN:             "mandi.db",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: time.Hour,
			AutoMigrate:     true,
		},
		Auth: AuthConfig{
			JWTSecret:  "",
			TokenTTL:   7 * 24 * time.Hour,
			Issuer:     "mandi-service",
			BcryptCost: 10,
		},
		RateLimit: RateLimitConfig{
			Enabled:         true,
			RequestsPerSec:  20,
			Burst:           40,
			ClientTTL:       10 * time.Minute,
			CleanupInterval: time.Minute,
		},
		Logging: LoggingConfig{
			Level:       "info",
			Format:      "json",
			Environment: "development",
		},
	}
}

// Origins returns the configured origins plus CLIENT_URL when set
func (c CORSConfig) Origins() []string {
	origins := make([]string, 0, len(c.AllowedOrigins)+1)
	origins = append(origins, c.AllowedOrigins...)
	if c.ClientURL != "" {
		origins = append(origins, c.ClientURL)
	}
	return origins
}
