package batch

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	strataerrors "quarry-hq/strata/pkg/strata/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll() failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	return path
}

func TestListDocuments(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", "a: 1")
	writeFile(t, dir, "b.yml", "b: 2")
	writeFile(t, dir, "notes.txt", "not yaml")
	writeFile(t, dir, "upper.YAML", "c: 3")
	writeFile(t, dir, "sub/nested.yaml", "d: 4")

	got, err := ListDocuments(dir, false)
	if err != nil {
		t.Fatalf("ListDocuments() failed: %v", err)
	}

	want := []string{
		filepath.Join(dir, "a.yaml"),
		filepath.Join(dir, "b.yml"),
		filepath.Join(dir, "upper.YAML"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ListDocuments() = %v, want %v", got, want)
	}
}

func TestListDocuments_Recursive(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", "a: 1")
	writeFile(t, dir, "sub/b.yaml", "b: 2")
	writeFile(t, dir, "sub/deeper/c.yml", "c: 3")
	writeFile(t, dir, "sub/readme.md", "not yaml")

	got, err := ListDocuments(dir, true)
	if err != nil {
		t.Fatalf("ListDocuments() failed: %v", err)
	}

	want := []string{
		filepath.Join(dir, "a.yaml"),
		filepath.Join(dir, "sub", "b.yaml"),
		filepath.Join(dir, "sub", "deeper", "c.yml"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ListDocuments() = %v, want %v", got, want)
	}
}

func TestListDocuments_EmptyDirectory(t *testing.T) {
	got, err := ListDocuments(t.TempDir(), true)
	if err != nil {
		t.Fatalf("ListDocuments() failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ListDocuments() = %v, want empty", got)
	}
}

func TestListDocuments_MissingPath(t *testing.T) {
	_, err := ListDocuments("/does/not/exist", false)
	if !strataerrors.IsKind(err, strataerrors.KindFileNotFound) {
		t.Errorf("error = %v, want file_not_found", err)
	}
}

func TestListDocuments_NotADirectory(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "plain.yaml", "a: 1")

	_, err := ListDocuments(file, false)
	if !strataerrors.IsKind(err, strataerrors.KindFileNotFound) {
		t.Errorf("error = %v, want file_not_found", err)
	}
}
