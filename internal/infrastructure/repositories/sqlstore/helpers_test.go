package sqlstore

import (
	"mandi-service/internal/infrastructure/config"
)

func configWithDriver(driver string) config.DatabaseConfig {
	cfg := config.GetDefaultConfig().Database
	cfg.Driver = driver
	cfg.DSN = "file::memory:"
	cfg.MaxOpenConns = 1
	return cfg
}
