package config

// MetricsConfig holds planner metrics configuration.
// A one-shot CLI has no scrape endpoint, so metrics are written to a
// node-exporter textfile after each run.
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active
	Enabled bool `mapstructure:"enabled"`

	// TextfilePath is the .prom file written on exit (required when enabled)
	TextfilePath string `mapstructure:"textfile_path" validate:"required_if=Enabled true"`
}
