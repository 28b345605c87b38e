// Package cache provides a small time-boxed cache with lazy expiry. Entries
// are judged stale on read against an injected clock; nothing evicts in the
// background.
package cache

import (
	"sync"
	"time"
)

// Clock supplies the current time. Inject a fake in tests to drive expiry
// deterministically.
type Clock func() time.Time

// TTL is a concurrency-safe map of string keys to values of type T, where
// each entry becomes invisible once it has been resident for ttl or longer.
type TTL[T any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     Clock
	entries map[string]entry[T]
}

type entry[T any] struct {
	value    T
	storedAt time.Time
}

// NewTTL builds a cache with the given time-to-live. A nil clock uses the
// wall clock.
func NewTTL[T any](ttl time.Duration, now Clock) *TTL[T] {
	if now == nil {
		now = time.Now
	}
	return &TTL[T]{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]entry[T]),
	}
}

// Get returns the cached value for key, if present and fresh. A stale entry
// is removed and treated as absent.
func (c *TTL[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ent, ok := c.entries[key]
	if !ok {
		var zero T
		return zero, false
	}
	if c.now().Sub(ent.storedAt) >= c.ttl {
		delete(c.entries, key)
		var zero T
		return zero, false
	}
	return ent.value, true
}

// Set stores value under key, replacing any prior entry and resetting its age.
func (c *TTL[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[T]{value: value, storedAt: c.now()}
}

// Delete removes the entry for key, if any.
func (c *TTL[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Clear drops every entry.
func (c *TTL[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry[T])
}
