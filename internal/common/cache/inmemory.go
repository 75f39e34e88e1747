package cache

import (
	"context"
	"sync"
	"time"
)

const inMemorySweepInterval = time.Minute

// InMemoryClient is the process local Client used when redis is not configured. Values
// are kept as is, not encoded.
type InMemoryClient[T any] struct {
	mu      sync.RWMutex
	entries map[string]entry[T]

	done      chan struct{}
	closeOnce sync.Once
}

type entry[T any] struct {
	value     T
	expiresAt time.Time
}

func (e entry[T]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

func NewInMemoryClient[T any]() *InMemoryClient[T] {
	m := &InMemoryClient[T]{
		entries: map[string]entry[T]{},
		done:    make(chan struct{}),
	}

	go m.sweep(inMemorySweepInterval)
	return m
}

func (m *InMemoryClient[T]) Get(_ context.Context, key string) (result T, err error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok || e.expired(time.Now()) {
		return result, ErrNotExists
	}
	return e.value, nil
}

// Set stores object. A zero ttl never expires.
func (m *InMemoryClient[T]) Set(_ context.Context, key string, object T, ttl time.Duration) error {
	e := entry[T]{value: object}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}

	m.mu.Lock()
	m.entries[key] = e
	m.mu.Unlock()
	return nil
}

func (m *InMemoryClient[T]) GetOrSet(ctx context.Context, opts GetOrSetOpts[T]) (T, error) {
	return getOrSet[T](ctx, m, opts)
}

func (m *InMemoryClient[T]) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	for _, k := range keys {
		delete(m.entries, k)
	}
	m.mu.Unlock()
	return nil
}

func (m *InMemoryClient[T]) sweep(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			m.mu.Lock()
			for k, e := range m.entries {
				if e.expired(now) {
					delete(m.entries, k)
				}
			}
			m.mu.Unlock()
		case <-m.done:
			return
		}
	}
}

// Close stops the sweeper. Safe to call more than once.
func (m *InMemoryClient[T]) Close() {
	m.closeOnce.Do(func() {
		close(m.done)
	})
}
