package cache

import (
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

func TestTTLCacheHitWithinWindow(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	c := NewTTL[string](5*time.Minute, clock.Now)

	c.Set("k", "v")
	clock.Advance(4 * time.Minute)

	got, ok := c.Get("k")
	if !ok || got != "v" {
		t.Fatalf("expected hit within window, got %q ok=%v", got, ok)
	}
}

func TestTTLCacheExpiresLazily(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	c := NewTTL[int](5*time.Minute, clock.Now)

	c.Set("k", 42)
	clock.Advance(5 * time.Minute)

	if _, ok := c.Get("k"); ok {
		t.Fatal("entry at exactly ttl age must read as absent")
	}
	// A refresh resets the age.
	c.Set("k", 43)
	clock.Advance(4 * time.Minute)
	if got, ok := c.Get("k"); !ok || got != 43 {
		t.Fatalf("expected refreshed entry, got %d ok=%v", got, ok)
	}
}

func TestTTLCacheDeleteAndClear(t *testing.T) {
	c := NewTTL[int](time.Minute, nil)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Fatal("deleted entry should be absent")
	}
	c.Clear()
	if _, ok := c.Get("b"); ok {
		t.Fatal("cleared entry should be absent")
	}
}
