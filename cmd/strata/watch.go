package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"quarry-hq/strata/pkg/strata/batch"
	"quarry-hq/strata/pkg/telemetry/metrics"
)

var watchFlags struct {
	recursive bool
	unsafe    bool
	rescan    string
}

var watchCmd = &cobra.Command{
	Use:   "watch <directory>",
	Short: "Watch a directory and reload YAML files on change",
	Long: `Watch a directory for changes and reload its YAML files through
the safe loading pipeline on every change.

Filesystem events are debounced so a burst of writes triggers one
reload. A cron schedule can force periodic full re-sweeps even when no
events arrive. With metrics enabled in the configuration, reload
outcomes are served on a Prometheus endpoint.

Runs until interrupted.

Examples:
  # Watch a directory tree
  strata watch --recursive manifests/

  # Re-sweep every night at 3 AM even without changes
  strata watch --rescan "0 3 * * *" manifests/`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().BoolVarP(&watchFlags.recursive, "recursive", "r", false, "descend into subdirectories")
	watchCmd.Flags().BoolVar(&watchFlags.unsafe, "unsafe", false, "skip the safety filter (trusted input only)")
	watchCmd.Flags().StringVar(&watchFlags.rescan, "rescan", "", "cron expression for scheduled full re-sweeps")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	dir := args[0]
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return fmt.Errorf("not a directory: %s", dir)
	}

	rescan := cfg.Watch.Rescan
	if watchFlags.rescan != "" {
		rescan = watchFlags.rescan
	}
	if rescan != "" {
		if _, err := cron.ParseStandard(rescan); err != nil {
			return fmt.Errorf("invalid rescan schedule %q: %w", rescan, err)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loader := newLoader(cfg, logger, 0)

	var lm *metrics.LoaderMetrics
	if cfg.Telemetry.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		lm = metrics.NewLoaderMetrics(cfg.Telemetry.Metrics.Namespace, cfg.Telemetry.Metrics.Subsystem, registry)
		shutdown := serveMetrics(cfg.Telemetry.Metrics.Listen, cfg.Telemetry.Metrics.Path, registry, logger)
		defer shutdown()
	}

	mode := "safe"
	if watchFlags.unsafe {
		mode = "unsafe"
	}

	reload := func(trigger string) {
		start := time.Now()
		var (
			files []batch.File
			err   error
		)
		if watchFlags.unsafe {
			files, err = loader.LoadDirectoryUnsafe(dir, watchFlags.recursive)
		} else {
			files, err = loader.LoadDirectory(dir, watchFlags.recursive)
		}
		duration := time.Since(start)

		if lm != nil {
			lm.RecordBatch(mode, len(files), duration, err)
		}
		if err != nil {
			logger.Error("reload failed", "trigger", trigger, "error", err)
			return
		}
		logger.Info("reload complete", "trigger", trigger, "files", len(files), "duration", duration)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	if err := addWatchPaths(watcher, dir, watchFlags.recursive); err != nil {
		return err
	}

	var sched *cron.Cron
	if rescan != "" {
		sched = cron.New()
		if _, err := sched.AddFunc(rescan, func() { reload("rescan") }); err != nil {
			return fmt.Errorf("failed to schedule rescan: %w", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	logger.Info("watching directory",
		"path", dir,
		"recursive", watchFlags.recursive,
		"debounce", cfg.Watch.Debounce,
		"rescan", rescan,
	)

	// Initial load before any event arrives.
	reload("startup")

	return watchLoop(ctx, watcher, cfg.Watch.Debounce, reload, logger)
}

// watchLoop processes filesystem events until the context is cancelled.
// Events are debounced: the reload fires once the directory has been
// quiet for the debounce interval.
func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, debounce time.Duration, reload func(string), logger *slog.Logger) error {
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			logger.Info("watch stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevantEvent(event) {
				continue
			}
			logger.Debug("filesystem event", "op", event.Op.String(), "path", event.Name)

			// New subdirectories join the watch so files created inside
			// them are seen.
			if event.Op.Has(fsnotify.Create) && watchFlags.recursive {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watcher.Add(event.Name); err != nil {
						logger.Warn("failed to watch new directory", "path", event.Name, "error", err)
					}
				}
			}

			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)

		case <-timer.C:
			reload("change")
		}
	}
}

// relevantEvent reports whether an event should schedule a reload.
// Only YAML files and directory-level changes count.
func relevantEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	ext := strings.ToLower(filepath.Ext(event.Name))
	if ext == ".yaml" || ext == ".yml" {
		return true
	}
	// Directory creates and removes matter in recursive mode.
	info, err := os.Stat(event.Name)
	return err == nil && info.IsDir()
}

// addWatchPaths registers the directory, and every subdirectory in
// recursive mode, with the watcher.
func addWatchPaths(watcher *fsnotify.Watcher, dir string, recursive bool) error {
	if !recursive {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		return nil
	}
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

// serveMetrics starts the Prometheus endpoint and returns its shutdown
// function.
func serveMetrics(listen, path string, registry *prometheus.Registry, logger *slog.Logger) func() {
	mux := http.NewServeMux()
	mux.Handle(path, metrics.Handler(registry))

	srv := &http.Server{
		Addr:              listen,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("metrics endpoint started", "listen", listen, "path", path)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics endpoint failed", "error", err)
		}
	}()

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}
}
