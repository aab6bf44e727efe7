package batch

import (
	"os"
	"path/filepath"
	"strings"

	strataerrors "quarry-hq/strata/pkg/strata/errors"
)

// ListDocuments returns the paths of YAML documents under path. Regular
// files with a .yaml or .yml extension (case-insensitive) are collected; if
// recursive, subdirectories are descended into with the same rule.
//
// It fails immediately if path is not a directory. An empty directory yields
// an empty list, not an error. Enumeration order is whatever the underlying
// filesystem API yields.
func ListDocuments(path string, recursive bool) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return nil, strataerrors.NewFileNotFound(path)
	}

	files := make([]string, 0)
	if err := collectDocuments(path, recursive, &files); err != nil {
		return nil, err
	}
	return files, nil
}

func collectDocuments(dir string, recursive bool, files *[]string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return strataerrors.NewFileNotFound(dir)
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		if entry.IsDir() {
			if recursive {
				if err := collectDocuments(path, recursive, files); err != nil {
					return err
				}
			}
			continue
		}

		if isYAMLFile(entry.Name()) {
			*files = append(*files, path)
		}
	}

	return nil
}

func isYAMLFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
