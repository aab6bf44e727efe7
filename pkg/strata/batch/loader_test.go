package batch

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"quarry-hq/strata/pkg/strata/convert"
	strataerrors "quarry-hq/strata/pkg/strata/errors"
)

func sources(texts ...string) []Source {
	out := make([]Source, len(texts))
	for i, t := range texts {
		out[i] = Source{Name: fmt.Sprintf("doc-%d", i), Text: t}
	}
	return out
}

func TestLoader_LoadMany_OrderMatchesInput(t *testing.T) {
	values, err := NewLoader().WithWorkers(4).LoadMany(sources(
		"index: 0",
		"index: 1",
		"index: 2",
		"index: 3",
		"index: 4",
	))
	if err != nil {
		t.Fatalf("LoadMany() failed: %v", err)
	}
	if len(values) != 5 {
		t.Fatalf("len(values) = %d, want 5", len(values))
	}

	for i, v := range values {
		m, ok := v.(*convert.Map)
		if !ok {
			t.Fatalf("values[%d] = %T, want *convert.Map", i, v)
		}
		if got, _ := m.Get("index"); got != int64(i) {
			t.Errorf("values[%d] index = %v, want %d", i, got, i)
		}
	}
}

func TestLoader_LoadMany_AllOrNothing(t *testing.T) {
	values, err := NewLoader().LoadMany(sources(
		"good: 1",
		"bad: nested: mapping",
		"also good: 3",
	))
	if err == nil {
		t.Fatal("LoadMany() succeeded, want failure")
	}
	if values != nil {
		t.Errorf("values = %v, want nil on failure", values)
	}
	if !strataerrors.IsKind(err, strataerrors.KindParse) {
		t.Errorf("error kind = %q, want parse", strataerrors.KindOf(err))
	}
	if !strings.Contains(err.Error(), "doc-1") {
		t.Errorf("error does not name the failing source: %v", err)
	}
}

func TestLoader_LoadMany_UnsafeTag(t *testing.T) {
	srcs := sources(
		"safe: true",
		"cmd: !!python/object/apply:os.system [echo]",
	)

	_, err := NewLoader().LoadMany(srcs)
	if !strataerrors.IsKind(err, strataerrors.KindUnsafeTag) {
		t.Errorf("error kind = %q, want unsafe_tag", strataerrors.KindOf(err))
	}
}

func TestLoader_LoadMany_Empty(t *testing.T) {
	values, err := NewLoader().LoadMany(nil)
	if err != nil {
		t.Fatalf("LoadMany(nil) failed: %v", err)
	}
	if len(values) != 0 {
		t.Errorf("len(values) = %d, want 0", len(values))
	}
}

func TestLoader_LoadManyUnsafe_SkipsRawScan(t *testing.T) {
	// The raw pre-scan rejects the pattern even inside a quoted string; the
	// unsafe variant loads it as plain text.
	srcs := sources(`note: "mentions !!python/object in prose"`)

	if _, err := NewLoader().LoadMany(srcs); !strataerrors.IsKind(err, strataerrors.KindUnsafeTag) {
		t.Fatalf("safe load error = %v, want unsafe_tag", err)
	}

	values, err := NewLoader().LoadManyUnsafe(srcs)
	if err != nil {
		t.Fatalf("LoadManyUnsafe() failed: %v", err)
	}
	m := values[0].(*convert.Map)
	if v, _ := m.Get("note"); v != "mentions !!python/object in prose" {
		t.Errorf("note = %v, want the quoted string", v)
	}
}

func TestLoader_LoadOne(t *testing.T) {
	v, err := NewLoader().LoadOne("count: 3", "")
	if err != nil {
		t.Fatalf("LoadOne() failed: %v", err)
	}
	m := v.(*convert.Map)
	if got, _ := m.Get("count"); got != int64(3) {
		t.Errorf("count = %v, want 3", got)
	}
}

func TestLoader_LoadAll(t *testing.T) {
	values, err := NewLoader().LoadAll("a: 1\n---\nb: 2\n", "stream.yaml")
	if err != nil {
		t.Fatalf("LoadAll() failed: %v", err)
	}
	if len(values) != 2 {
		t.Fatalf("len(values) = %d, want 2", len(values))
	}
	if keys := values[1].(*convert.Map).Keys(); !reflect.DeepEqual(keys, []any{"b"}) {
		t.Errorf("second doc keys = %v, want [b]", keys)
	}
}

func TestLoader_LoadAll_FailsOnAnyUnsafeDocument(t *testing.T) {
	_, err := NewLoader().LoadAll("a: 1\n---\nb: !!python/name:os.system\n", "")
	if !strataerrors.IsKind(err, strataerrors.KindUnsafeTag) {
		t.Errorf("error kind = %q, want unsafe_tag", strataerrors.KindOf(err))
	}
}

func TestLoader_LoadDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "one.yaml", "n: 1")
	writeFile(t, dir, "two.yaml", "n: 2")
	writeFile(t, dir, "skip.txt", "n: 3")

	files, err := NewLoader().LoadDirectory(dir, false)
	if err != nil {
		t.Fatalf("LoadDirectory() failed: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("len(files) = %d, want 2", len(files))
	}

	for i, want := range []int64{1, 2} {
		m := files[i].Value.(*convert.Map)
		if v, _ := m.Get("n"); v != want {
			t.Errorf("files[%d] n = %v, want %d", i, v, want)
		}
	}
}

func TestLoader_LoadDirectory_AllOrNothing(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.yaml", "ok: true")
	writeFile(t, dir, "unsafe.yaml", "x: !!python/object:a.B {}")

	files, err := NewLoader().LoadDirectory(dir, false)
	if err == nil {
		t.Fatal("LoadDirectory() succeeded, want failure")
	}
	if files != nil {
		t.Errorf("files = %v, want nil on failure", files)
	}
}

func TestLoader_LoadDirectory_MissingPath(t *testing.T) {
	_, err := NewLoader().LoadDirectory("/does/not/exist", false)
	if !strataerrors.IsKind(err, strataerrors.KindFileNotFound) {
		t.Errorf("error = %v, want file_not_found", err)
	}
}

func TestLoader_WithWorkers_SingleWorker(t *testing.T) {
	values, err := NewLoader().WithWorkers(1).LoadMany(sources("a: 1", "b: 2", "c: 3"))
	if err != nil {
		t.Fatalf("LoadMany() failed: %v", err)
	}
	if len(values) != 3 {
		t.Errorf("len(values) = %d, want 3", len(values))
	}
}
