package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestCache_SetGetLen(t *testing.T) {
	c := New[string, string]()
	defer c.Close()

	if l := c.Len(); l != 0 {
		t.Errorf("Expected initial length 0, got %d", l)
	}

	c.Set("greeting", "Hello")
	val, ok := c.Get("greeting")
	if !ok {
		t.Errorf("Expected 'greeting' to be found")
	}
	if val != "Hello" {
		t.Errorf("Expected value 'Hello', got '%s'", val)
	}
	if l := c.Len(); l != 1 {
		t.Errorf("Expected length 1 after Set, got %d", l)
	}

	if _, ok := c.Get("nonexistent"); ok {
		t.Errorf("Expected 'nonexistent' to not be found")
	}
}

func TestCache_TTLExpiration(t *testing.T) {
	c := New[string, string](
		WithDefaultTTL[string, string](40*time.Millisecond),
		WithJanitorInterval[string, string](10*time.Millisecond),
	)
	defer c.Close()

	c.Set("slow", "expires later")
	c.SetWithTTL("fast", "expires first", 10*time.Millisecond)

	if _, ok := c.Get("fast"); !ok {
		t.Errorf("'fast' should exist immediately after set")
	}

	time.Sleep(20 * time.Millisecond)

	if val, ok := c.Get("fast"); ok {
		t.Errorf("'fast' should have expired, but got value: %s", val)
	}
	if _, ok := c.Get("slow"); !ok {
		t.Errorf("'slow' should still exist within its default TTL")
	}

	time.Sleep(40 * time.Millisecond)

	if _, ok := c.Get("slow"); ok {
		t.Errorf("'slow' should have expired by now")
	}
	if l := c.Len(); l != 0 {
		t.Errorf("Expected length 0 after janitor runs, got %d", l)
	}
}

func TestCache_Touch(t *testing.T) {
	c := New[string, int]()
	defer c.Close()

	c.SetWithTTL("k", 1, 20*time.Millisecond)
	if !c.Touch("k", 200*time.Millisecond) {
		t.Fatalf("Touch on live key should succeed")
	}

	time.Sleep(40 * time.Millisecond)
	if _, ok := c.Get("k"); !ok {
		t.Errorf("'k' should survive past its original TTL after Touch")
	}

	if c.Touch("missing", time.Second) {
		t.Errorf("Touch on missing key should fail")
	}
}

func TestCache_Keys(t *testing.T) {
	c := New[string, int]()
	defer c.Close()

	c.Set("a", 1)
	c.Set("b", 2)
	c.SetWithTTL("gone", 3, time.Nanosecond)
	time.Sleep(time.Millisecond)

	keys := c.Keys()
	if len(keys) != 2 {
		t.Fatalf("Expected 2 live keys, got %d: %v", len(keys), keys)
	}
}

func TestCache_DeleteExpired(t *testing.T) {
	c := New[string, int]()
	defer c.Close()

	c.SetWithTTL("a", 1, time.Nanosecond)
	c.SetWithTTL("b", 2, time.Nanosecond)
	c.Set("keep", 3)
	time.Sleep(time.Millisecond)

	if removed := c.DeleteExpired(); removed != 2 {
		t.Errorf("Expected 2 removals, got %d", removed)
	}
	if l := c.Len(); l != 1 {
		t.Errorf("Expected 1 remaining item, got %d", l)
	}
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := New[string, int](WithJanitorInterval[string, int](time.Millisecond))
	defer c.Close()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("key-%d", j%7)
				c.SetWithTTL(key, n, time.Duration(j%3)*time.Millisecond)
				c.Get(key)
				c.Keys()
			}
		}(i)
	}
	wg.Wait()
}

func TestCache_CloseIdempotent(t *testing.T) {
	c := New[string, int](WithJanitorInterval[string, int](time.Millisecond))
	c.Close()
	c.Close() // must not panic

	c.Set("still-works", 1)
	if _, ok := c.Get("still-works"); !ok {
		t.Errorf("cache should remain usable after Close")
	}
}
