package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/layer-3/walletlink/ports"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStoreContract(t *testing.T, s ports.Store) {
	ctx := context.Background()
	key := uuid.New().String()

	consumed, err := s.IsConsumed(ctx, key)
	require.NoError(t, err)
	assert.False(t, consumed)

	created, err := s.MarkConsumed(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = s.MarkConsumed(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.False(t, created, "second mark must report replay")

	consumed, err = s.IsConsumed(ctx, key)
	require.NoError(t, err)
	assert.True(t, consumed)
}

func TestMemoryStore(t *testing.T) {
	testStoreContract(t, NewMemoryStore())
}

func TestMemoryStoreExpiry(t *testing.T) {
	now := time.Now()
	s := &MemoryStore{
		consumed: make(map[string]time.Time),
		now:      func() time.Time { return now },
	}
	ctx := context.Background()

	created, err := s.MarkConsumed(ctx, "sig", time.Minute)
	require.NoError(t, err)
	assert.True(t, created)

	now = now.Add(2 * time.Minute)

	consumed, err := s.IsConsumed(ctx, "sig")
	require.NoError(t, err)
	assert.False(t, consumed)

	created, err = s.MarkConsumed(ctx, "sig", time.Minute)
	require.NoError(t, err)
	assert.True(t, created, "expired key can be consumed again")
}

func TestRedisStore(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set")
	}

	opts, err := redis.ParseURL(redisURL)
	require.NoError(t, err)
	client := redis.NewClient(opts)
	defer client.Close()

	require.NoError(t, client.Ping(context.Background()).Err())
	testStoreContract(t, NewRedisStore(client))
}
