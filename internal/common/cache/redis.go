package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisClient[T any] struct {
	rdb redis.UniversalClient
}

// NewRedisClient stores values as JSON. A stored value that no longer decodes into T
// is reported as a miss so the next GetOrSet overwrites it.
func NewRedisClient[T any](rdb redis.UniversalClient) Client[T] {
	return &redisClient[T]{rdb: rdb}
}

func (r *redisClient[T]) Get(ctx context.Context, key string) (result T, err error) {
	raw, err := r.rdb.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return result, ErrNotExists
	case err != nil:
		return result, fmt.Errorf("redis get %s: %w", key, err)
	}

	if err = json.Unmarshal(raw, &result); err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %s holds %v", ErrNotExists, key, err)
	}
	return result, nil
}

func (r *redisClient[T]) Set(ctx context.Context, key string, object T, ttl time.Duration) error {
	raw, err := json.Marshal(object)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	if err = r.rdb.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (r *redisClient[T]) GetOrSet(ctx context.Context, opts GetOrSetOpts[T]) (T, error) {
	return getOrSet[T](ctx, r, opts)
}

func (r *redisClient[T]) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.rdb.Del(ctx, keys...).Err()
}
