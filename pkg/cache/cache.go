// Package cache provides a small expiring key/value store. One instance is
// constructed per concern (forecast, geocoding, advice) and injected into
// whatever needs it; there is no package-level default.
//
// Entries are never counted or bounded. Growth is limited in practice by the
// key space (coordinates, farm ids), which is a known limitation.
package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value    V
	storedAt time.Time
}

// TTL is a mutex-guarded map with per-instance time-to-live. A Get past
// expiry evicts the entry as a side effect.
type TTL[V any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry[V]
	now     func() time.Time
}

func New[V any](ttl time.Duration) *TTL[V] {
	return &TTL[V]{
		ttl:     ttl,
		entries: make(map[string]entry[V]),
		now:     time.Now,
	}
}

// NewWithClock is for tests that need to control expiry.
func NewWithClock[V any](ttl time.Duration, now func() time.Time) *TTL[V] {
	c := New[V](ttl)
	c.now = now
	return c
}

func (c *TTL[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if c.now().Sub(e.storedAt) > c.ttl {
		delete(c.entries, key)
		var zero V
		return zero, false
	}
	return e.value, true
}

func (c *TTL[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[V]{value: value, storedAt: c.now()}
}
