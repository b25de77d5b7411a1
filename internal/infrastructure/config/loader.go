package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Loader handles configuration loading using Viper
type Loader struct {
	v       *viper.Viper
	envFile string
}

// NewLoader creates a new configuration loader instance
func NewLoader() *Loader {
	return &Loader{
		v:       viper.New(),
		envFile: ".env",
	}
}

// WithEnvFile changes the dotenv file read before env vars are bound
func (l *Loader) WithEnvFile(path string) *Loader {
	l.envFile = path
	return l
}

// Load loads configuration from .env, config files and environment variables
func (l *Loader) Load() (*Config, error) {
	// 1. Populate the process env from .env when present
	if err := l.loadDotEnv(); err != nil {
		return nil, err
	}

	// 2. Configure Viper
	if err := l.setupViper(); err != nil {
		return nil, fmt.Errorf("failed to setup viper: %w", err)
	}

	// 3. Read configuration
	if err := l.v.ReadInConfig(); err != nil {
		// If config.yaml doesn't exist, use only env vars and defaults
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 4. Unmarshal over the defaults
	config := GetDefaultConfig()
	if err := l.v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Env vars that need parsing beyond what viper does
	l.overrideWithEnvVars(config)

	return config, nil
}

// loadDotEnv never overrides variables already present in the environment
func (l *Loader) loadDotEnv() error {
	if l.envFile == "" {
		return nil
	}
	if err := godotenv.Load(l.envFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", l.envFile, err)
	}
	return nil
}

// setupViper configures Viper to read files and env vars
func (l *Loader) setupViper() error {
	l.v.SetConfigName("config")
	l.v.SetConfigType("yaml")

	l.v.AddConfigPath("./configs")
	l.v.AddConfigPath("../configs") // when running from cmd/
	l.v.AddConfigPath(".")
	l.v.AddConfigPath("/etc/mandi-service")

	// MANDI_UPSTREAM_PAGE_SIZE -> upstream.page_size
	l.v.AutomaticEnv()
	l.v.SetEnvPrefix("MANDI")
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	l.bindEnvVars()

	return nil
}

// bindEnvVars maps the plain env var names used in deployments to configuration keys
func (l *Loader) bindEnvVars() {
	envMappings := map[string]string{
		"server.port":                    "PORT",
		"cors.client_url":                "CLIENT_URL",
		"upstream.api_key":               "DATA_GOV_API_KEY",
		"upstream.base_url":              "DATA_GOV_BASE_URL",
		"upstream.resource_id":           "DATA_GOV_RESOURCE_ID",
		"refresh.interval":               "REFRESH_INTERVAL",
		"snapshot.backend":               "SNAPSHOT_BACKEND",
		"redis.addr":                     "REDIS_ADDR",
		"redis.password":                 "REDIS_PASSWORD",
		"redis.db":                       "REDIS_DB",
		"mongo.uri":                      "MONGO_URI",
		"database.driver":                "DATABASE_DRIVER",
		"database.dsn":                   "DATABASE_DSN",
		"auth.jwt_secret":                "JWT_SECRET",
		"logging.level":                  "LOG_LEVEL",
		"logging.format":                 "LOG_FORMAT",
		"logging.environment":            "ENVIRONMENT",
		"rate_limit.enabled":             "RATE_LIMIT_ENABLED",
		"rate_limit.requests_per_second": "RATE_LIMIT_RPS",
		"rate_limit.burst":               "RATE_LIMIT_BURST",
	}

	for configKey, envVar := range envMappings {
		_ = l.v.BindEnv(configKey, envVar)
	}
}

// overrideWithEnvVars handles env vars viper cannot map onto slices
func (l *Loader) overrideWithEnvVars(config *Config) {
	// CORS_ORIGINS as a comma separated list
	if origins := splitList(os.Getenv("CORS_ORIGINS")); len(origins) > 0 {
		config.CORS.AllowedOrigins = origins
	}

	if proxies := splitList(os.Getenv("TRUSTED_PROXIES")); len(proxies) > 0 {
		config.RateLimit.TrustedProxies = proxies
	}
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// GetEnvironment determina el entorno actual desde ENV vars
func GetEnvironment() string {
	env := strings.ToLower(os.Getenv("ENV"))
	if env == "" {
		env = strings.ToLower(os.Getenv("ENVIRONMENT"))
	}
	if env == "" {
		env = "development"
	}
	return env
}
