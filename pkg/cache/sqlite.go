package cache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// Result is one cached scan outcome.
type Result struct {
	Hash      string // Hex SHA-256 of the document content
	Path      string // Path last seen for this content
	OK        bool
	Kind      string // Diagnostic kind when not OK
	Message   string // Diagnostic message when not OK
	RunID     string // Scan run that produced this entry
	ScannedAt time.Time
}

// Cache is a SQLite-backed scan-result store.
// Safe for concurrent use; database/sql serializes access per connection.
type Cache struct {
	db        *sql.DB
	closeOnce sync.Once

	getStmt *sql.Stmt
	putStmt *sql.Stmt
}

const schema = `
CREATE TABLE IF NOT EXISTS scan_results (
	hash       TEXT PRIMARY KEY,
	path       TEXT NOT NULL,
	ok         INTEGER NOT NULL,
	kind       TEXT NOT NULL DEFAULT '',
	message    TEXT NOT NULL DEFAULT '',
	run_id     TEXT NOT NULL,
	scanned_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_scan_results_run ON scan_results(run_id);
`

// Open opens (creating if necessary) a scan cache at the given path.
// The database uses WAL mode for concurrent read performance.
func Open(path string) (*Cache, error) {
	if path == "" {
		return nil, fmt.Errorf("cache path cannot be empty")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize cache schema: %w", err)
	}

	getStmt, err := db.Prepare(`SELECT hash, path, ok, kind, message, run_id, scanned_at FROM scan_results WHERE hash = ?`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare get statement: %w", err)
	}

	putStmt, err := db.Prepare(`INSERT INTO scan_results (hash, path, ok, kind, message, run_id, scanned_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(hash) DO UPDATE SET
			path = excluded.path,
			ok = excluded.ok,
			kind = excluded.kind,
			message = excluded.message,
			run_id = excluded.run_id,
			scanned_at = excluded.scanned_at`)
	if err != nil {
		getStmt.Close()
		db.Close()
		return nil, fmt.Errorf("failed to prepare put statement: %w", err)
	}

	return &Cache{db: db, getStmt: getStmt, putStmt: putStmt}, nil
}

// Get returns the cached result for a content hash, or nil on a miss.
func (c *Cache) Get(ctx context.Context, hash string) (*Result, error) {
	var (
		r  Result
		ok int
	)
	err := c.getStmt.QueryRowContext(ctx, hash).
		Scan(&r.Hash, &r.Path, &ok, &r.Kind, &r.Message, &r.RunID, &r.ScannedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache entry: %w", err)
	}
	r.OK = ok != 0
	return &r, nil
}

// Put stores or replaces the result for its content hash.
func (c *Cache) Put(ctx context.Context, r Result) error {
	ok := 0
	if r.OK {
		ok = 1
	}
	if r.ScannedAt.IsZero() {
		r.ScannedAt = time.Now().UTC()
	}

	_, err := c.putStmt.ExecContext(ctx, r.Hash, r.Path, ok, r.Kind, r.Message, r.RunID, r.ScannedAt)
	if err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}

// Close releases the database. Safe to call more than once.
func (c *Cache) Close() error {
	var err error
	c.closeOnce.Do(func() {
		if c.getStmt != nil {
			c.getStmt.Close()
		}
		if c.putStmt != nil {
			c.putStmt.Close()
		}
		err = c.db.Close()
	})
	return err
}

// HashDocument returns the hex SHA-256 of document content, the cache key.
func HashDocument(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
