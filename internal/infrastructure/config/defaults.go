package config

import "time"

// Defaults shared with code that builds a Config by hand
const (
	DefaultMaxDepth    = 64
	DefaultRate        = 45.0
	DefaultHistoryPath = "throughput.db"
)

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Catalog defaults
	if cfg.Catalog.MaxDepth == 0 {
		cfg.Catalog.MaxDepth = DefaultMaxDepth
	}

	// Planner defaults
	if cfg.Planner.DefaultRate == 0 {
		cfg.Planner.DefaultRate = DefaultRate
	}

	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Type == "sqlite" && cfg.Database.Path == "" {
		cfg.Database.Path = DefaultHistoryPath
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 5
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 2
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "warn"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}
}
