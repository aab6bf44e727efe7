package cache

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "scan.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCache_PutGet(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()

	in := Result{
		Hash:      HashDocument([]byte("a: 1")),
		Path:      "manifests/a.yaml",
		OK:        false,
		Kind:      "unsafe_tag",
		Message:   "unsafe tag detected: !!python/object",
		RunID:     "run-1",
		ScannedAt: time.Now().UTC().Truncate(time.Second),
	}
	if err := c.Put(ctx, in); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}

	got, err := c.Get(ctx, in.Hash)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if got == nil {
		t.Fatal("Get() = nil, want hit")
	}
	if got.Path != in.Path || got.OK != in.OK || got.Kind != in.Kind || got.Message != in.Message || got.RunID != in.RunID {
		t.Errorf("Get() = %+v, want %+v", got, in)
	}
}

func TestCache_Miss(t *testing.T) {
	c := openTestCache(t)

	got, err := c.Get(context.Background(), HashDocument([]byte("never stored")))
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if got != nil {
		t.Errorf("Get() = %+v, want nil miss", got)
	}
}

func TestCache_Upsert(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()
	hash := HashDocument([]byte("x: 1"))

	if err := c.Put(ctx, Result{Hash: hash, Path: "old.yaml", OK: false, Kind: "parse", Message: "bad", RunID: "run-1"}); err != nil {
		t.Fatalf("first Put() failed: %v", err)
	}
	if err := c.Put(ctx, Result{Hash: hash, Path: "new.yaml", OK: true, RunID: "run-2"}); err != nil {
		t.Fatalf("second Put() failed: %v", err)
	}

	got, err := c.Get(ctx, hash)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if !got.OK || got.Path != "new.yaml" || got.RunID != "run-2" {
		t.Errorf("Get() = %+v, want the replaced entry", got)
	}
	if got.Kind != "" || got.Message != "" {
		t.Errorf("stale diagnostic survived upsert: %+v", got)
	}
}

func TestCache_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "scan.db")
	c, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer c.Close()

	if err := c.Put(context.Background(), Result{Hash: "h", Path: "p", OK: true, RunID: "r"}); err != nil {
		t.Errorf("Put() failed: %v", err)
	}
}

func TestCache_CloseTwice(t *testing.T) {
	c := openTestCache(t)
	if err := c.Close(); err != nil {
		t.Fatalf("first Close() failed: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("second Close() failed: %v", err)
	}
}

func TestHashDocument(t *testing.T) {
	a := HashDocument([]byte("a: 1"))
	b := HashDocument([]byte("a: 1"))
	other := HashDocument([]byte("a: 2"))

	if a != b {
		t.Error("equal content hashed differently")
	}
	if a == other {
		t.Error("different content collided")
	}
	if len(a) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(a))
	}
}
