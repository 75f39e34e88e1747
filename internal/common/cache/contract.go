package cache

import (
	"context"
	"errors"
	"strings"
	"time"
)

//go:generate mockgen -source=contract.go -destination=mock/contract.go -package=mock

// Client stores values of type T under string keys with an optional ttl.
type Client[T any] interface {
	Get(ctx context.Context, key string) (T, error)
	Set(ctx context.Context, key string, object T, ttl time.Duration) error
	GetOrSet(ctx context.Context, opts GetOrSetOpts[T]) (T, error)
	Delete(ctx context.Context, keys ...string) error
}

var (
	ErrNotExists           = errors.New("key not exists on cache storage")
	ErrCallbackNotProvided = errors.New("callback not provided")
)

type GetOrSetOpts[T any] struct {
	Key      string
	TTL      time.Duration
	Callback func() (T, error)
}

// Key joins parts with ':' after the given namespace.
func Key(namespace string, parts ...string) string {
	return strings.Join(append([]string{namespace}, parts...), ":")
}

// getOrSet is the read-through shared by the Client implementations. Only a cache miss
// calls the callback; any other read error is returned as is.
func getOrSet[T any](ctx context.Context, c Client[T], opts GetOrSetOpts[T]) (result T, err error) {
	if opts.Callback == nil {
		return result, ErrCallbackNotProvided
	}

	result, err = c.Get(ctx, opts.Key)
	if !errors.Is(err, ErrNotExists) {
		return result, err
	}

	if result, err = opts.Callback(); err != nil {
		return result, err
	}

	return result, c.Set(ctx, opts.Key, result, opts.TTL)
}
