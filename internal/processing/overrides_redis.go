package processing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const overrideKeyPrefix = "force_provider:"

// RedisOverrideStore keeps session overrides in Redis so they survive
// restarts and are shared across instances.
type RedisOverrideStore struct {
	client *redis.Client
}

// NewRedisOverrideStore connects to Redis and verifies connectivity.
func NewRedisOverrideStore(ctx context.Context, addr string) (*RedisOverrideStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return &RedisOverrideStore{client: client}, nil
}

func (s *RedisOverrideStore) Get(ctx context.Context, sessionID string) (string, bool, error) {
	val, err := s.client.Get(ctx, overrideKeyPrefix+sessionID).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get override: %w", err)
	}
	return val, true, nil
}

func (s *RedisOverrideStore) Set(ctx context.Context, sessionID, provider string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultOverrideTTL
	}
	provider = strings.ToLower(strings.TrimSpace(provider))
	if err := s.client.Set(ctx, overrideKeyPrefix+sessionID, provider, ttl).Err(); err != nil {
		return fmt.Errorf("redis set override: %w", err)
	}
	return nil
}

func (s *RedisOverrideStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, overrideKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("redis clear override: %w", err)
	}
	return nil
}

func (s *RedisOverrideStore) ClearAll(ctx context.Context) (int, error) {
	var cleared int
	iter := s.client.Scan(ctx, 0, overrideKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return cleared, fmt.Errorf("redis clear overrides: %w", err)
		}
		cleared++
	}
	if err := iter.Err(); err != nil {
		return cleared, fmt.Errorf("redis scan overrides: %w", err)
	}
	return cleared, nil
}

// Close releases the underlying Redis connection.
func (s *RedisOverrideStore) Close() error {
	return s.client.Close()
}

var _ OverrideStore = (*RedisOverrideStore)(nil)
