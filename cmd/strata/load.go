package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"quarry-hq/strata/pkg/config"
	"quarry-hq/strata/pkg/strata/batch"
	"quarry-hq/strata/pkg/strata/filter"
	"quarry-hq/strata/pkg/strata/parser"
)

var loadFlags struct {
	unsafe    bool
	all       bool
	dir       bool
	recursive bool
	workers   int
	compact   bool
}

var loadCmd = &cobra.Command{
	Use:   "load [path...]",
	Short: "Load YAML documents and print them as JSON",
	Long: `Load YAML documents through the safety filter and print the
realized values as JSON. Mapping keys keep their source order.

With no arguments (or "-") the document is read from stdin. Multiple
file arguments are loaded in parallel with all-or-nothing semantics.

Examples:
  # Load a single file
  strata load config.yaml

  # Load from stdin
  cat config.yaml | strata load

  # Load every document in a multi-document stream
  strata load --all stream.yaml

  # Load a directory of YAML files
  strata load --dir manifests/ --recursive

  # Skip the safety filter (trusted input only)
  strata load --unsafe legacy.yaml`,
	RunE: runLoad,
}

func init() {
	rootCmd.AddCommand(loadCmd)

	loadCmd.Flags().BoolVar(&loadFlags.unsafe, "unsafe", false, "skip the safety filter (trusted input only)")
	loadCmd.Flags().BoolVar(&loadFlags.all, "all", false, "load every document in a multi-document stream")
	loadCmd.Flags().BoolVarP(&loadFlags.dir, "dir", "d", false, "treat the argument as a directory of YAML files")
	loadCmd.Flags().BoolVarP(&loadFlags.recursive, "recursive", "r", false, "descend into subdirectories (with --dir)")
	loadCmd.Flags().IntVarP(&loadFlags.workers, "workers", "w", 0, "worker pool size (0 = one per CPU)")
	loadCmd.Flags().BoolVar(&loadFlags.compact, "compact", false, "compact JSON output")
}

func runLoad(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	loader := newLoader(cfg, logger, loadFlags.workers)

	switch {
	case loadFlags.dir:
		if len(args) != 1 {
			return fmt.Errorf("--dir expects exactly one directory argument")
		}
		return loadDir(loader, args[0])

	case len(args) == 0 || (len(args) == 1 && args[0] == "-"):
		return loadStdin(loader)

	case len(args) == 1:
		return loadFile(loader, args[0])

	default:
		return loadFiles(loader, args)
	}
}

// newLoader builds a batch loader from configuration. A non-zero workers
// argument wins over the configured pool size.
func newLoader(cfg *config.Config, logger *slog.Logger, workers int) *batch.Loader {
	if workers == 0 {
		workers = cfg.Loader.Workers
	}

	p := parser.NewParser()
	if cfg.Loader.MaxSize > 0 {
		p = p.WithMaxSize(cfg.Loader.MaxSize)
	}

	return batch.NewLoader().
		WithWorkers(workers).
		WithParser(p).
		WithDenyList(filter.NewDenyList(cfg.Loader.DenyFragments...)).
		WithLogger(logger.With("component", "loader"))
}

func loadStdin(loader *batch.Loader) error {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}
	return loadText(loader, string(data), "<stdin>")
}

func loadFile(loader *batch.Loader, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return loadText(loader, string(data), path)
}

func loadText(loader *batch.Loader, text, name string) error {
	if loadFlags.all {
		var (
			values []any
			err    error
		)
		if loadFlags.unsafe {
			values, err = loader.LoadAllUnsafe(text, name)
		} else {
			values, err = loader.LoadAll(text, name)
		}
		if err != nil {
			return err
		}
		return printJSON(values)
	}

	var (
		value any
		err   error
	)
	if loadFlags.unsafe {
		value, err = loader.LoadOneUnsafe(text, name)
	} else {
		value, err = loader.LoadOne(text, name)
	}
	if err != nil {
		return err
	}
	return printJSON(value)
}

func loadFiles(loader *batch.Loader, paths []string) error {
	sources := make([]batch.Source, len(paths))
	for i, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", p, err)
		}
		sources[i] = batch.Source{Name: p, Text: string(data)}
	}

	var (
		values []any
		err    error
	)
	if loadFlags.unsafe {
		values, err = loader.LoadManyUnsafe(sources)
	} else {
		values, err = loader.LoadMany(sources)
	}
	if err != nil {
		return err
	}

	out := make([]loadedFile, len(paths))
	for i, p := range paths {
		out[i] = loadedFile{Path: p, Value: values[i]}
	}
	return printJSON(out)
}

func loadDir(loader *batch.Loader, path string) error {
	var (
		files []batch.File
		err   error
	)
	if loadFlags.unsafe {
		files, err = loader.LoadDirectoryUnsafe(path, loadFlags.recursive)
	} else {
		files, err = loader.LoadDirectory(path, loadFlags.recursive)
	}
	if err != nil {
		return err
	}

	out := make([]loadedFile, len(files))
	for i, f := range files {
		out[i] = loadedFile{Path: f.Path, Value: f.Value}
	}
	return printJSON(out)
}

// loadedFile is the JSON output shape for multi-file loads.
type loadedFile struct {
	Path  string `json:"path"`
	Value any    `json:"value"`
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	if !loadFlags.compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
