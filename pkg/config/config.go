package config

import "time"

// Config is the root configuration for the strata CLI.
type Config struct {
	Loader    LoaderConfig    `yaml:"loader"`
	Cache     CacheConfig     `yaml:"cache"`
	Watch     WatchConfig     `yaml:"watch"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// LoaderConfig configures the loading pipeline.
type LoaderConfig struct {
	// Workers is the worker pool size for batch loading.
	// Zero selects one worker per CPU.
	Workers int `yaml:"workers"`

	// MaxSize is the maximum document size in bytes. Zero means unlimited.
	MaxSize int64 `yaml:"max_size"`

	// DenyFragments are extra tag fragments appended to the built-in
	// deny-list.
	DenyFragments []string `yaml:"deny_fragments"`
}

// CacheConfig configures the scan-result cache.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// WatchConfig configures watch mode.
type WatchConfig struct {
	// Debounce is the quiet period after a filesystem event before files
	// are reloaded.
	Debounce time.Duration `yaml:"debounce"`

	// Rescan is a cron expression for scheduled full directory re-sweeps.
	// Empty disables scheduled rescans.
	Rescan string `yaml:"rescan"`
}

// TelemetryConfig configures logging and metrics.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json", "text"
}

// MetricsConfig configures the Prometheus endpoint served in watch mode.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Listen    string `yaml:"listen"`
	Path      string `yaml:"path"`
	Namespace string `yaml:"namespace"`
	Subsystem string `yaml:"subsystem"`
}
