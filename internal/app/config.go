package app

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// CatalogPath is an optional file or directory of extra descriptor
	// catalogs, loaded after the stock ones.
	CatalogPath      string `env:"XENOARCH_CATALOG_PATH"`
	SkipStockCatalog bool   `env:"XENOARCH_SKIP_STOCK_CATALOG"`

	LogFormat       string `env:"XENOARCH_LOG_FORMAT" envDefault:"text"`
	LogLevel        string `env:"XENOARCH_LOG_LEVEL" envDefault:"info"`
	HealthcheckPort int    `env:"XENOARCH_PORT" envDefault:"0"`
	WorkerCount     int    `env:"XENOARCH_WORKERS" envDefault:"4"`

	Cooldown         time.Duration `env:"XENOARCH_COOLDOWN" envDefault:"5s"`
	NodesMin         int           `env:"XENOARCH_NODES_MIN" envDefault:"3"`
	NodesMax         int           `env:"XENOARCH_NODES_MAX" envDefault:"9"`
	PointsPerNode    int           `env:"XENOARCH_POINTS_PER_NODE" envDefault:"6500"`
	DangerMultiplier float64       `env:"XENOARCH_POINT_DANGER_MULTIPLIER" envDefault:"1.35"`

	// Seed makes every artifact built by the app reproducible. Zero means a
	// fresh random seed per artifact.
	Seed int64 `env:"XENOARCH_SEED"`
}

// ConfigFromEnv returns a Config populated from XENOARCH_* environment
// variables, falling back to the defaults.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", cfg.LogFormat)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}
	if cfg.NodesMin < 1 || cfg.NodesMax < cfg.NodesMin {
		return nil, fmt.Errorf("invalid node range [%d, %d]", cfg.NodesMin, cfg.NodesMax)
	}
	if cfg.WorkerCount < 1 {
		return nil, fmt.Errorf("worker count must be at least 1, got %d", cfg.WorkerCount)
	}
	if cfg.Cooldown <= 0 {
		return nil, fmt.Errorf("cooldown must be positive, got %s", cfg.Cooldown)
	}
	if cfg.PointsPerNode < 0 || cfg.DangerMultiplier <= 0 {
		return nil, fmt.Errorf("invalid points tuning: per node %d, danger multiplier %g", cfg.PointsPerNode, cfg.DangerMultiplier)
	}
	if cfg.HealthcheckPort < 0 {
		return nil, fmt.Errorf("port must not be negative, got %d", cfg.HealthcheckPort)
	}
	return &cfg, nil
}
