package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/drinkslane/backend/internal/domain"
)

// RedisSlot keeps the cache slot under a single Redis key, for
// deployments where several instances should share one warm catalog.
// Redis expiry is a coarse backstop; the cache layer still enforces the
// precise TTL and version checks on read.
type RedisSlot struct {
	client *redis.Client
	key    string
	expiry time.Duration
}

// NewRedisSlot creates a slot on the given client and key. expiry <= 0
// stores without Redis-side expiry.
func NewRedisSlot(client *redis.Client, key string, expiry time.Duration) *RedisSlot {
	return &RedisSlot{
		client: client,
		key:    key,
		expiry: expiry,
	}
}

// Load reads the slot key. A missing key is ErrCacheMiss.
func (s *RedisSlot) Load(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrCacheMiss
		}
		return nil, err
	}
	return data, nil
}

// Store replaces the slot key wholesale.
func (s *RedisSlot) Store(ctx context.Context, data []byte) error {
	return s.client.Set(ctx, s.key, data, s.expiry).Err()
}

// Clear deletes the slot key.
func (s *RedisSlot) Clear(ctx context.Context) error {
	return s.client.Del(ctx, s.key).Err()
}
