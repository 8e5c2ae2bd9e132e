package ports

import (
	"context"
	"time"
)

// Store remembers consumed wallet signatures so a callback cannot be replayed
type Store interface {
	// MarkConsumed records key for ttl and reports whether it was newly recorded
	MarkConsumed(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// IsConsumed reports whether key is recorded and not yet expired
	IsConsumed(ctx context.Context, key string) (bool, error)
}
