// Package redis provides a store.ResultStore backed by Redis keys with a
// native TTL, for deployments that run more than one server process.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/warp/severance-engine/severance"
	"github.com/warp/severance-engine/store"
)

// DefaultPrefix namespaces result keys.
const DefaultPrefix = "severance:result:"

// Connect builds a client from a redis:// URL or a bare host:port and pings it.
func Connect(ctx context.Context, redisURL string) (*goredis.Client, error) {
	var client *goredis.Client
	if strings.HasPrefix(redisURL, "redis://") || strings.HasPrefix(redisURL, "rediss://") {
		opt, err := goredis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		client = goredis.NewClient(opt)
	} else {
		client = goredis.NewClient(&goredis.Options{Addr: redisURL})
	}
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// Store keeps each record under prefix+id with a TTL equal to the time left
// until the record's expiry.
type Store struct {
	client *goredis.Client
	prefix string
}

// New wraps client. An empty prefix selects DefaultPrefix.
func New(client *goredis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{client: client, prefix: prefix}
}

type envelope struct {
	ID        string          `json:"id"`
	Kind      severance.Kind  `json:"kind"`
	CreatedAt time.Time       `json:"createdAt"`
	ExpiresAt time.Time       `json:"expiresAt"`
	Result    json.RawMessage `json:"result"`
}

func (s *Store) key(id string) string { return s.prefix + id }

// Save writes the record with SET NX and a TTL of ExpiresAt - CreatedAt, so
// the caller's clock decides expiry as it does for the other stores. A record
// with no lifetime left is refused with store.ErrExpired.
func (s *Store) Save(ctx context.Context, rec store.Record) error {
	ttl := rec.ExpiresAt.Sub(rec.CreatedAt)
	if ttl <= 0 {
		return fmt.Errorf("redis save %s: %w", rec.ID, store.ErrExpired)
	}

	result, err := severance.MarshalResult(rec.Result)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(envelope{
		ID:        rec.ID,
		Kind:      rec.Kind,
		CreatedAt: rec.CreatedAt,
		ExpiresAt: rec.ExpiresAt,
		Result:    result,
	})
	if err != nil {
		return err
	}

	ok, err := s.client.SetNX(ctx, s.key(rec.ID), raw, ttl).Result()
	if err != nil {
		return fmt.Errorf("redis save %s: %w", rec.ID, err)
	}
	if !ok {
		return store.ErrDuplicateID
	}
	return nil
}

// Get also applies the logical expiry so that callers passing a future "now"
// see the same behaviour as the other stores.
func (s *Store) Get(ctx context.Context, id string, now time.Time) (store.Record, error) {
	raw, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return store.Record{}, store.ErrNotFound
		}
		return store.Record{}, fmt.Errorf("redis get %s: %w", id, err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return store.Record{}, fmt.Errorf("decode record %s: %w", id, err)
	}
	rec := store.Record{ID: env.ID, Kind: env.Kind, CreatedAt: env.CreatedAt, ExpiresAt: env.ExpiresAt}
	if rec.Expired(now) {
		return store.Record{}, store.ErrExpired
	}
	if rec.Result, err = severance.UnmarshalResult(env.Result); err != nil {
		return store.Record{}, fmt.Errorf("decode record %s: %w", id, err)
	}
	return rec, nil
}

// Sweep is a no-op: Redis evicts keys when their TTL elapses.
func (s *Store) Sweep(context.Context, time.Time) (int, error) {
	return 0, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

var _ store.ResultStore = (*Store)(nil)
