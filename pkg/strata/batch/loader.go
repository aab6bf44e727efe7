package batch

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"quarry-hq/strata/pkg/strata/ast"
	"quarry-hq/strata/pkg/strata/convert"
	strataerrors "quarry-hq/strata/pkg/strata/errors"
	"quarry-hq/strata/pkg/strata/filter"
	"quarry-hq/strata/pkg/strata/parser"
)

// Source is one independent text input for a batch.
type Source struct {
	Name string // Used in error locations; may be empty for inline text
	Text string
}

// File pairs a discovered file path with its realized value.
type File struct {
	Path  string
	Value any
}

// Loader runs the parse/filter/convert pipeline over many inputs at once.
// A Loader is safe for concurrent use; each call gets its own converter.
type Loader struct {
	workers int
	parser  *parser.Parser
	filter  *filter.Filter
	logger  *slog.Logger
}

// NewLoader creates a loader with the default parser, the default deny-list
// and one worker per CPU.
func NewLoader() *Loader {
	return &Loader{
		workers: runtime.GOMAXPROCS(0),
		parser:  parser.NewParser(),
		filter:  filter.New(nil),
		logger:  slog.Default().With("component", "batch"),
	}
}

// WithWorkers sets the worker pool size for the parallel phase.
// Values below one select one worker per CPU.
func (l *Loader) WithWorkers(n int) *Loader {
	if n < 1 {
		n = runtime.GOMAXPROCS(0)
	}
	l.workers = n
	return l
}

// WithDenyList replaces the deny-list used by the safety filter.
func (l *Loader) WithDenyList(deny *filter.DenyList) *Loader {
	l.filter = filter.New(deny)
	return l
}

// WithParser replaces the document parser.
func (l *Loader) WithParser(p *parser.Parser) *Loader {
	l.parser = p
	return l
}

// WithLogger replaces the loader's logger.
func (l *Loader) WithLogger(logger *slog.Logger) *Loader {
	l.logger = logger
	return l
}

// LoadOne parses, safety-filters and realizes a single document.
// Empty input loads as nil.
func (l *Loader) LoadOne(text, name string) (any, error) {
	return l.loadOne(text, name, true)
}

// LoadOneUnsafe is LoadOne without the safety filter stages.
func (l *Loader) LoadOneUnsafe(text, name string) (any, error) {
	return l.loadOne(text, name, false)
}

// LoadAll parses every document in text, split on the standard "---"
// boundary, and realizes them in order. The whole call fails on the first
// document that fails.
func (l *Loader) LoadAll(text, name string) ([]any, error) {
	return l.loadAll(text, name, true)
}

// LoadAllUnsafe is LoadAll without the safety filter stages.
func (l *Loader) LoadAllUnsafe(text, name string) ([]any, error) {
	return l.loadAll(text, name, false)
}

func (l *Loader) loadOne(text, name string, safe bool) (any, error) {
	tree, err := l.parseFiltered(text, name, safe)
	if err != nil {
		return nil, err
	}
	return convert.NewConverter().Convert(tree)
}

func (l *Loader) loadAll(text, name string, safe bool) ([]any, error) {
	if safe {
		if err := l.filter.QuickScan(text); err != nil {
			return nil, err
		}
	}

	trees, err := l.parser.ParseAll(text, name)
	if err != nil {
		return nil, err
	}

	conv := convert.NewConverter()
	values := make([]any, 0, len(trees))
	for _, tree := range trees {
		if safe {
			if err := l.filter.DeepScan(tree); err != nil {
				return nil, err
			}
		}
		v, err := conv.Convert(tree)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// LoadMany parses, safety-filters and realizes the given inputs. The result
// is aligned index-for-index with the input. On any failure the whole call
// fails with that item's diagnostic and no partial result.
func (l *Loader) LoadMany(sources []Source) ([]any, error) {
	return l.loadMany(sources, true)
}

// LoadManyUnsafe is LoadMany without the safety filter stage. Concurrency,
// ordering and all-or-nothing failure semantics are unchanged.
func (l *Loader) LoadManyUnsafe(sources []Source) ([]any, error) {
	return l.loadMany(sources, false)
}

// LoadDirectory discovers YAML files under path and loads them like
// LoadMany, returning (path, value) pairs. File reads happen inside the
// parallel phase, overlapped with parsing.
func (l *Loader) LoadDirectory(path string, recursive bool) ([]File, error) {
	return l.loadDirectory(path, recursive, true)
}

// LoadDirectoryUnsafe is LoadDirectory without the safety filter stage.
func (l *Loader) LoadDirectoryUnsafe(path string, recursive bool) ([]File, error) {
	return l.loadDirectory(path, recursive, false)
}

func (l *Loader) loadMany(sources []Source, safe bool) ([]any, error) {
	start := time.Now()

	trees := make([]*ast.Node, len(sources))

	// Phase one: parse + filter, fully parallel. The group is deliberately
	// context-free: every task runs to completion and Wait surfaces the
	// first recorded error once all are done.
	g := new(errgroup.Group)
	g.SetLimit(l.workers)
	for i, src := range sources {
		g.Go(func() error {
			tree, err := l.parseFiltered(src.Text, src.Name, safe)
			if err != nil {
				return err
			}
			trees[i] = tree
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Phase two: realize serially, in input order.
	values, err := realize(trees)
	if err != nil {
		return nil, err
	}

	l.logger.Debug("batch loaded",
		"documents", len(sources),
		"workers", l.workers,
		"safe", safe,
		"duration", time.Since(start),
	)
	return values, nil
}

func (l *Loader) loadDirectory(path string, recursive, safe bool) ([]File, error) {
	start := time.Now()

	paths, err := ListDocuments(path, recursive)
	if err != nil {
		return nil, err
	}

	trees := make([]*ast.Node, len(paths))

	g := new(errgroup.Group)
	g.SetLimit(l.workers)
	for i, p := range paths {
		g.Go(func() error {
			data, err := os.ReadFile(p)
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					return strataerrors.NewFileNotFound(p)
				}
				return strataerrors.NewParse(ast.Location{File: p}, "failed to read file: "+err.Error())
			}

			tree, err := l.parseFilteredBytes(data, p, safe)
			if err != nil {
				return err
			}
			trees[i] = tree
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	values, err := realize(trees)
	if err != nil {
		return nil, err
	}

	results := make([]File, len(paths))
	for i, p := range paths {
		results[i] = File{Path: p, Value: values[i]}
	}

	l.logger.Debug("directory loaded",
		"path", path,
		"recursive", recursive,
		"files", len(paths),
		"safe", safe,
		"duration", time.Since(start),
	)
	return results, nil
}

// parseFiltered runs the per-item pipeline stages: quick scan, parse, deep
// scan. In unsafe mode both filter stages are skipped.
func (l *Loader) parseFiltered(text, name string, safe bool) (*ast.Node, error) {
	if safe {
		if err := l.filter.QuickScan(text); err != nil {
			return nil, err
		}
	}

	tree, err := l.parser.ParseOne(text, name)
	if err != nil {
		return nil, err
	}

	if safe {
		if err := l.filter.DeepScan(tree); err != nil {
			return nil, err
		}
	}
	return tree, nil
}

func (l *Loader) parseFilteredBytes(data []byte, name string, safe bool) (*ast.Node, error) {
	if safe {
		if err := l.filter.QuickScan(string(data)); err != nil {
			return nil, err
		}
	}

	tree, err := l.parser.ParseBytes(data, name)
	if err != nil {
		return nil, err
	}

	if safe {
		if err := l.filter.DeepScan(tree); err != nil {
			return nil, err
		}
	}
	return tree, nil
}

// realize converts collected trees on a single goroutine, in order.
func realize(trees []*ast.Node) ([]any, error) {
	conv := convert.NewConverter()
	values := make([]any, len(trees))
	for i, tree := range trees {
		v, err := conv.Convert(tree)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}
