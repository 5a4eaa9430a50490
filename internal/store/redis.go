package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"tradewallet/internal/model"
)

// RedisStore is the volatile session mirror. Redis keeps the value in
// memory across restarts of this process but not across restarts of the
// host, which is exactly the lifetime the mirror needs. An unreachable
// server maps to ErrStorageUnavailable so callers can treat the mirror as
// best-effort.
type RedisStore struct {
	client *redis.Client
}

// OpenRedis connects to the given address. The connection is verified
// lazily; a dead server surfaces per-operation.
func OpenRedis(addr string) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %w", model.ErrStorageUnavailable, err)
	}
	return value, nil
}

func (s *RedisStore) Put(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("%w: %w", model.ErrStorageUnavailable, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: %w", model.ErrStorageUnavailable, err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
