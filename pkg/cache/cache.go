package cache

import (
	"sync"
	"time"
)

// TTLCache is a process-wide memoized value with a time-to-live.
// The clock is injected so tests can control expiry instead of sleeping.
type TTLCache[T any] struct {
	mu        sync.Mutex
	value     T
	fetchedAt time.Time
	hasValue  bool
	ttl       time.Duration
	now       func() time.Time
}

// New creates a TTLCache. If now is nil, time.Now is used.
func New[T any](ttl time.Duration, now func() time.Time) *TTLCache[T] {
	if now == nil {
		now = time.Now
	}
	return &TTLCache[T]{ttl: ttl, now: now}
}

// Get returns the cached value and whether it is still fresh.
func (c *TTLCache[T]) Get() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.hasValue || c.now().Sub(c.fetchedAt) > c.ttl {
		var zero T
		return zero, false
	}
	return c.value, true
}

// Set stores a value and stamps it with the injected clock.
func (c *TTLCache[T]) Set(v T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = v
	c.fetchedAt = c.now()
	c.hasValue = true
}

// Invalidate drops the cached value regardless of age.
func (c *TTLCache[T]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hasValue = false
}
