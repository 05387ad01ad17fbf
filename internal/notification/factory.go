package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/Mivy_Go/internal/logger"
)

// NewStore returns a Redis store when redisURL is set and reachable,
// otherwise the in-process store. The returned close func is never nil.
func NewStore(ctx context.Context, redisURL string, ttl time.Duration) (Store, func() error, error) {
	if redisURL == "" {
		logger.Info(LogMsgMemoryBackend, "ttl", ttl)
		return NewMemoryStore(MemoryStoreCapacity, ttl), func() error { return nil }, nil
	}

	client, err := Connect(redisURL)
	if err != nil {
		return nil, nil, err
	}
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("redis ping failed: %w", err)
	}

	logger.Info(LogMsgRedisBackend, "addr", client.Options().Addr, "ttl", ttl)
	store := NewRedisStore(client, ttl)
	return store, store.Close, nil
}
