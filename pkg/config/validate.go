package config

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
)

// FieldError is a validation error for a specific configuration field.
type FieldError struct {
	Field   string // Dotted path, e.g. "loader.workers"
	Message string
}

// Error returns the message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError collects all validation failures in a configuration.
type ValidationError struct {
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate checks the configuration and returns a ValidationError collecting
// every rule violation, or nil if the configuration is valid.
func Validate(cfg *Config) error {
	var errs []FieldError

	add := func(field, message string) {
		errs = append(errs, FieldError{Field: field, Message: message})
	}

	if cfg.Loader.Workers < 0 {
		add("loader.workers", "must not be negative")
	}
	if cfg.Loader.MaxSize < 0 {
		add("loader.max_size", "must not be negative")
	}
	for i, f := range cfg.Loader.DenyFragments {
		if strings.TrimSpace(f) == "" {
			add(fmt.Sprintf("loader.deny_fragments[%d]", i), "must not be empty")
		}
	}

	if cfg.Cache.Enabled && cfg.Cache.Path == "" {
		add("cache.path", "required when cache is enabled")
	}

	if cfg.Watch.Debounce < 0 {
		add("watch.debounce", "must not be negative")
	}
	if cfg.Watch.Rescan != "" {
		if _, err := cron.ParseStandard(cfg.Watch.Rescan); err != nil {
			add("watch.rescan", fmt.Sprintf("invalid cron expression: %v", err))
		}
	}

	switch cfg.Telemetry.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		add("telemetry.logging.level", fmt.Sprintf("unknown level %q", cfg.Telemetry.Logging.Level))
	}
	switch cfg.Telemetry.Logging.Format {
	case "json", "text":
	default:
		add("telemetry.logging.format", fmt.Sprintf("unknown format %q", cfg.Telemetry.Logging.Format))
	}

	if cfg.Telemetry.Metrics.Enabled {
		if cfg.Telemetry.Metrics.Listen == "" {
			add("telemetry.metrics.listen", "required when metrics are enabled")
		}
		if !strings.HasPrefix(cfg.Telemetry.Metrics.Path, "/") {
			add("telemetry.metrics.path", "must start with /")
		}
	}

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}
