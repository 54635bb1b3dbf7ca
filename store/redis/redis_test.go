package redis_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/severance-engine/store"
	"github.com/warp/severance-engine/store/redis"
	"github.com/warp/severance-engine/store/storetest"
)

// These tests need a live server: REDIS_URL=redis://localhost:6379/15 go test ./store/redis
func redisURL(t *testing.T) string {
	t.Helper()
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	return url
}

func newStore(t *testing.T) *redis.Store {
	t.Helper()
	client, err := redis.Connect(context.Background(), redisURL(t))
	require.NoError(t, err)

	s := redis.New(client, "severance-test:"+uuid.NewString()+":")
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_Contract(t *testing.T) {
	redisURL(t)
	storetest.Run(t, func(t *testing.T) store.ResultStore {
		return newStore(t)
	}, storetest.Options{NativeTTL: true})
}

func TestStore_TTLFollowsRecordClock(t *testing.T) {
	// GIVEN: A record stamped by a caller clock two hours behind the wall clock
	s := newStore(t)
	ctx := context.Background()
	past := time.Now().Add(-2 * time.Hour)
	rec := store.NewRecord(storetest.Severance(t), past, time.Hour)

	// WHEN: Saving it
	require.NoError(t, s.Save(ctx, rec))

	// THEN: It is readable on that clock and expired an hour later
	_, err := s.Get(ctx, rec.ID, past)
	assert.NoError(t, err)
	_, err = s.Get(ctx, rec.ID, past.Add(time.Hour))
	assert.ErrorIs(t, err, store.ErrExpired)
}

func TestStore_RefusesRecordWithoutLifetime(t *testing.T) {
	// Save returns before any command is sent, so no server is needed.
	client := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:0"})
	s := redis.New(client, "")
	t.Cleanup(func() { s.Close() })

	rec := store.NewRecord(storetest.Severance(t), time.Now(), 0)

	err := s.Save(context.Background(), rec)
	assert.ErrorIs(t, err, store.ErrExpired)
	assert.True(t, store.IsNotFound(err))
}

func TestConnect_RejectsBadURL(t *testing.T) {
	_, err := redis.Connect(context.Background(), "redis://:badport:x")
	assert.Error(t, err)
}
