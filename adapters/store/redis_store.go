package store

import (
	"context"
	"fmt"
	"time"

	"github.com/layer-3/walletlink/ports"
	"github.com/redis/go-redis/v9"
)

// RedisStore is a Redis implementation of the Store interface
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a new Redis store
func NewRedisStore(client *redis.Client) ports.Store {
	return &RedisStore{
		client: client,
		prefix: "walletlink:consumed:",
	}
}

// MarkConsumed records key in Redis only if it is not already present
func (s *RedisStore) MarkConsumed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	created, err := s.client.SetNX(ctx, s.prefix+key, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark signature consumed: %w", err)
	}
	return created, nil
}

// IsConsumed checks if key is present in Redis
func (s *RedisStore) IsConsumed(ctx context.Context, key string) (bool, error) {
	val, err := s.client.Exists(ctx, s.prefix+key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check consumed signature: %w", err)
	}
	return val > 0, nil
}
