package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"quarry-hq/strata/pkg/config"
	"quarry-hq/strata/pkg/telemetry/logging"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "strata",
	Short: "Strata - safe, parallel YAML loading",
	Long: `Strata loads untrusted YAML documents safely.

Every document passes through a deny-list safety filter that rejects
dangerous tags such as !!python/object before any value is built.
Mappings preserve their source key order, and batch loads run in
parallel with all-or-nothing semantics: either every document loads,
or the whole batch fails with a single diagnostic.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig returns the effective configuration: the --config file when
// given, built-in defaults otherwise.
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.LoadConfigWithEnvOverrides(cfgFile)
	}
	return config.Default(), nil
}

// newLogger builds the CLI logger from configuration. --verbose forces
// debug level regardless of the configured level.
func newLogger(cfg *config.Config) (*slog.Logger, error) {
	level := cfg.Telemetry.Logging.Level
	if verbose {
		level = "debug"
	}
	return logging.New(logging.Config{
		Level:  level,
		Format: cfg.Telemetry.Logging.Format,
	})
}
