package cache

import (
	"sync"
	"time"
)

// TTL is a single-value in-process cache with explicit expiry. The clock is
// injectable so expiry can be tested without sleeping. The zero value is not
// usable; use NewTTL.
//
// The cache is process-local and unsynchronized across instances: callers
// accept up to one TTL of staleness.
type TTL[T any] struct {
	mu    sync.Mutex
	value T
	setAt time.Time
	ok    bool

	ttl time.Duration
	now func() time.Time
}

// NewTTL returns a TTL cache holding values for the given duration. A nil
// now func defaults to time.Now.
func NewTTL[T any](ttl time.Duration, now func() time.Time) *TTL[T] {
	if now == nil {
		now = time.Now
	}
	return &TTL[T]{ttl: ttl, now: now}
}

// Get returns the cached value and whether it is still fresh.
func (c *TTL[T]) Get() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.ok || c.now().Sub(c.setAt) >= c.ttl {
		var zero T
		return zero, false
	}
	return c.value, true
}

// Set stores a value, restarting the expiry window.
func (c *TTL[T]) Set(v T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = v
	c.setAt = c.now()
	c.ok = true
}

// Clear drops the cached value.
func (c *TTL[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ok = false
}
