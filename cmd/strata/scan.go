package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"quarry-hq/strata/pkg/cache"
	"quarry-hq/strata/pkg/strata/batch"
	strataerrors "quarry-hq/strata/pkg/strata/errors"
	"quarry-hq/strata/pkg/strata/filter"
	"quarry-hq/strata/pkg/strata/parser"
)

var scanFlags struct {
	recursive bool
	noCache   bool
	format    string
}

var scanCmd = &cobra.Command{
	Use:   "scan <directory>",
	Short: "Scan YAML files for unsafe tags",
	Long: `Scan every YAML file under a directory through the safety filter
and report the ones that would be rejected.

Unlike load, scan keeps going after a failure and reports every unsafe
or malformed file. Results are cached by content hash, so unchanged
files are not re-scanned on the next run.

Examples:
  # Scan a directory
  strata scan manifests/

  # Scan recursively, ignoring the cache
  strata scan --recursive --no-cache manifests/

  # JSON output for CI/CD
  strata scan --format json manifests/`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().BoolVarP(&scanFlags.recursive, "recursive", "r", false, "descend into subdirectories")
	scanCmd.Flags().BoolVar(&scanFlags.noCache, "no-cache", false, "ignore and bypass the scan cache")
	scanCmd.Flags().StringVar(&scanFlags.format, "format", "text", "output format: text, json")
}

// scanResult is one file's scan outcome.
type scanResult struct {
	Path    string `json:"path"`
	OK      bool   `json:"ok"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message,omitempty"`
	Cached  bool   `json:"cached,omitempty"`
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	paths, err := batch.ListDocuments(args[0], scanFlags.recursive)
	if err != nil {
		return err
	}

	var store *cache.Cache
	if cfg.Cache.Enabled && !scanFlags.noCache {
		store, err = cache.Open(cfg.Cache.Path)
		if err != nil {
			logger.Warn("scan cache unavailable, continuing without it", "error", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	runID := uuid.New().String()
	logger.Debug("scan started", "run_id", runID, "files", len(paths))

	ctx := cmd.Context()
	p := parser.NewParser()
	if cfg.Loader.MaxSize > 0 {
		p = p.WithMaxSize(cfg.Loader.MaxSize)
	}
	f := filter.New(filter.NewDenyList(cfg.Loader.DenyFragments...))

	results := make([]scanResult, 0, len(paths))
	flagged := 0
	for _, path := range paths {
		r := scanFile(ctx, store, p, f, path, runID)
		if !r.OK {
			flagged++
		}
		results = append(results, r)
	}

	if scanFlags.format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			if r.OK {
				continue
			}
			fmt.Printf("%s: [%s] %s\n", r.Path, r.Kind, r.Message)
		}
		fmt.Printf("scanned %d files: %d safe, %d flagged\n", len(results), len(results)-flagged, flagged)
	}

	if flagged > 0 {
		return fmt.Errorf("%d of %d files flagged", flagged, len(results))
	}
	return nil
}

// scanFile checks one file, consulting and updating the cache when open.
func scanFile(ctx context.Context, store *cache.Cache, p *parser.Parser, f *filter.Filter, path, runID string) scanResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return scanResult{
			Path:    path,
			Kind:    string(strataerrors.KindFileNotFound),
			Message: err.Error(),
		}
	}

	hash := cache.HashDocument(data)
	if store != nil {
		if hit, err := store.Get(ctx, hash); err == nil && hit != nil {
			return scanResult{Path: path, OK: hit.OK, Kind: hit.Kind, Message: hit.Message, Cached: true}
		}
	}

	r := scanResult{Path: path, OK: true}
	if err := checkDocument(p, f, data, path); err != nil {
		r.OK = false
		var serr *strataerrors.Error
		if errors.As(err, &serr) {
			r.Kind = string(serr.Kind)
			r.Message = serr.Message
		} else {
			r.Message = err.Error()
		}
	}

	if store != nil {
		_ = store.Put(ctx, cache.Result{
			Hash:    hash,
			Path:    path,
			OK:      r.OK,
			Kind:    r.Kind,
			Message: r.Message,
			RunID:   runID,
		})
	}
	return r
}

// checkDocument runs the filter stages without realizing any value.
func checkDocument(p *parser.Parser, f *filter.Filter, data []byte, path string) error {
	if err := f.QuickScan(string(data)); err != nil {
		return err
	}
	tree, err := p.ParseBytes(data, path)
	if err != nil {
		return err
	}
	return f.DeepScan(tree)
}
