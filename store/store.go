/*
Package store defines persistence for calculated termination results.

PURPOSE:
  A calculation is returned to the caller immediately, but the record is
  also kept for a limited time so the receipt can be fetched again (JSON
  or PDF) by id. Records are immutable once saved.

LIFECYCLE:
  Save   - insert a record; a duplicate id is rejected
  Get    - fetch by id; an expired record reads as ErrExpired
  Sweep  - physically remove everything expired at the given instant

  Callers pass "now" explicitly so expiry is testable without sleeping.

IMPLEMENTATIONS:
  store.Memory   - map + RWMutex, for tests and single-process dev
  sqlite.Store   - database/sql over mattn/go-sqlite3
  redis.Store    - go-redis with native key TTL (Sweep is a no-op)

SEE ALSO:
  - api/sweeper.go: runs Sweep on an interval
*/
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/warp/severance-engine/severance"
)

var (
	ErrNotFound    = errors.New("record not found")
	ErrExpired     = fmt.Errorf("record expired: %w", ErrNotFound)
	ErrDuplicateID = errors.New("duplicate record id")
)

// IsNotFound returns true for missing and expired records alike.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Record is one stored calculation.
type Record struct {
	ID        string
	Kind      severance.Kind
	Result    severance.Result
	CreatedAt time.Time
	ExpiresAt time.Time
}

// NewRecord wraps a result with a fresh id and an expiry ttl after now.
func NewRecord(res severance.Result, now time.Time, ttl time.Duration) Record {
	now = now.UTC()
	return Record{
		ID:        uuid.NewString(),
		Kind:      res.Kind(),
		Result:    res,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// Expired reports whether the record is no longer readable at now.
func (r Record) Expired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}

// ResultStore persists records until they expire.
type ResultStore interface {
	Save(ctx context.Context, rec Record) error
	Get(ctx context.Context, id string, now time.Time) (Record, error)
	// Sweep deletes records expired at now and returns how many were removed.
	Sweep(ctx context.Context, now time.Time) (int, error)
	Close() error
}
