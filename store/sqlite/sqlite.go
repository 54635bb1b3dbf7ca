/*
Package sqlite provides a SQLite-backed store.ResultStore.

PURPOSE:
  Keeps calculated results across restarts of a single server process.

KEY TABLES:
  results: one row per calculation, result_json holds the tagged
           severance.Result ({"kind": ..., "result": {...}})

INDEXES:
  idx_results_expires_at: Sweep deletes by expiry

TIMESTAMPS:
  Stored as fixed-width UTC text (nanosecond precision) so that string
  comparison in SQL orders the same way as time comparison in Go.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety, and a single open connection so that
  ":memory:" databases are shared by every query.

USAGE:
  s, err := sqlite.New("./data/results.db")
  if err != nil {
      log.Fatal(err)
  }
  defer s.Close()

SEE ALSO:
  - store/store.go: ResultStore contract
  - store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/warp/severance-engine/severance"
	"github.com/warp/severance-engine/store"
)

const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store implements store.ResultStore using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS results (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		result_json TEXT NOT NULL,
		grand_total TEXT NOT NULL,
		created_at TEXT NOT NULL,
		expires_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_results_expires_at
		ON results(expires_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// RESULT STORE (store.ResultStore interface)
// =============================================================================

func (s *Store) Save(ctx context.Context, rec store.Record) error {
	payload, err := severance.MarshalResult(rec.Result)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO results (id, kind, result_json, grand_total, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		rec.ID,
		string(rec.Kind),
		string(payload),
		rec.Result.GrandTotal().StringFixed(2),
		formatTime(rec.CreatedAt),
		formatTime(rec.ExpiresAt),
	)
	if err != nil {
		if isPrimaryKeyViolation(err) {
			return store.ErrDuplicateID
		}
		return fmt.Errorf("failed to save result: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string, now time.Time) (store.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		rec       store.Record
		kind      string
		payload   string
		createdAt string
		expiresAt string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, kind, result_json, created_at, expires_at
		FROM results
		WHERE id = ?
	`, id).Scan(&rec.ID, &kind, &payload, &createdAt, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Record{}, store.ErrNotFound
	}
	if err != nil {
		return store.Record{}, fmt.Errorf("failed to load result %s: %w", id, err)
	}

	rec.Kind = severance.Kind(kind)
	if rec.CreatedAt, err = parseTime(createdAt); err != nil {
		return store.Record{}, err
	}
	if rec.ExpiresAt, err = parseTime(expiresAt); err != nil {
		return store.Record{}, err
	}
	if rec.Expired(now) {
		return store.Record{}, store.ErrExpired
	}
	if rec.Result, err = severance.UnmarshalResult([]byte(payload)); err != nil {
		return store.Record{}, fmt.Errorf("failed to decode result %s: %w", id, err)
	}
	return rec, nil
}

func (s *Store) Sweep(ctx context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM results WHERE expires_at <= ?", formatTime(now))
	if err != nil {
		return 0, fmt.Errorf("failed to sweep results: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// Count returns the number of stored rows, expired or not.
func (s *Store) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM results").Scan(&n)
	return n, err
}

var _ store.ResultStore = (*Store)(nil)

// Helper functions

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid stored timestamp %q: %w", s, err)
	}
	return t, nil
}

func isPrimaryKeyViolation(err error) bool {
	var se sqlite3.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey || se.ExtendedCode == sqlite3.ErrConstraintUnique
}
