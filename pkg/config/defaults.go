package config

import "time"

// Default values for configuration fields.
const (
	DefaultCachePath = "data/strata-scan.db"

	DefaultWatchDebounce = 100 * time.Millisecond

	DefaultLoggingLevel  = "info"
	DefaultLoggingFormat = "text"

	DefaultMetricsListen    = "127.0.0.1:9464"
	DefaultMetricsPath      = "/metrics"
	DefaultMetricsNamespace = "strata"
	DefaultMetricsSubsystem = "loader"
)

// ApplyDefaults fills in zero-valued fields with default values.
// Loader.Workers stays zero: the loader resolves zero to one worker per CPU.
func ApplyDefaults(cfg *Config) {
	if cfg.Cache.Path == "" {
		cfg.Cache.Path = DefaultCachePath
	}

	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DefaultWatchDebounce
	}

	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}

	if cfg.Telemetry.Metrics.Listen == "" {
		cfg.Telemetry.Metrics.Listen = DefaultMetricsListen
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}
}

// Default returns a configuration with all defaults applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
