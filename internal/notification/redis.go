package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/osse101/Mivy_Go/internal/logger"
)

// Connect builds a Redis client from a redis:// URL or a bare host:port
func Connect(redisURL string) (*redis.Client, error) {
	if strings.HasPrefix(redisURL, "redis://") || strings.HasPrefix(redisURL, "rediss://") {
		opt, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		return redis.NewClient(opt), nil
	}
	return redis.NewClient(&redis.Options{Addr: redisURL}), nil
}

// RedisStore keeps details as JSON strings with a native key expiry
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed store
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, fid int64) (*Details, error) {
	if err := checkFid(fid); err != nil {
		return nil, err
	}
	raw, err := s.client.Get(ctx, Key(fid)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var out Details
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *RedisStore) Set(ctx context.Context, fid int64, details Details) error {
	if err := checkFid(fid); err != nil {
		return err
	}
	raw, err := json.Marshal(details)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, Key(fid), raw, s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, fid int64) error {
	if err := checkFid(fid); err != nil {
		return err
	}
	return s.client.Del(ctx, Key(fid)).Err()
}

// List scans the key prefix. Entries that expire mid-scan are skipped.
func (s *RedisStore) List(ctx context.Context) ([]Entry, error) {
	log := logger.FromContext(ctx)
	out := []Entry{}

	iter := s.client.Scan(ctx, 0, KeyPrefix+"*", ScanBatchSize).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		fid, ok := parseKey(key)
		if !ok {
			continue
		}
		raw, err := s.client.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, err
		}
		var d Details
		if err := json.Unmarshal(raw, &d); err != nil {
			log.Warn(LogMsgSkipCorrupt, "key", key, "error", err)
			continue
		}
		out = append(out, Entry{Fid: fid, Details: d})
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Close releases the Redis connection pool
func (s *RedisStore) Close() error {
	return s.client.Close()
}
