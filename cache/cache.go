package cache

import (
	"sync"
	"time"
)

type item[V any] struct {
	value     V
	expiresAt int64 // UnixNano, 0 means no expiration
}

func (it item[V]) expired(now int64) bool {
	return it.expiresAt != 0 && now > it.expiresAt
}

// Cache is a thread-safe, generic key/value store with per-item TTL and an
// optional background janitor that evicts expired items.
type Cache[K comparable, V any] struct {
	mu         sync.RWMutex
	items      map[K]item[V]
	defaultTTL time.Duration

	janitor   *time.Ticker
	stopCh    chan struct{}
	closeOnce sync.Once
}

// Option configures a Cache.
type Option[K comparable, V any] func(*Cache[K, V])

// WithDefaultTTL sets the TTL applied by Set. Zero means items never expire.
func WithDefaultTTL[K comparable, V any](ttl time.Duration) Option[K, V] {
	return func(c *Cache[K, V]) {
		c.defaultTTL = ttl
	}
}

// WithJanitorInterval starts a background janitor that evicts expired items
// at the given interval. Without this option, expired items are dropped
// lazily on access.
func WithJanitorInterval[K comparable, V any](interval time.Duration) Option[K, V] {
	return func(c *Cache[K, V]) {
		if interval > 0 {
			c.janitor = time.NewTicker(interval)
		}
	}
}

// New creates a Cache with the given options.
func New[K comparable, V any](opts ...Option[K, V]) *Cache[K, V] {
	c := &Cache[K, V]{
		items:  make(map[K]item[V]),
		stopCh: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.janitor != nil {
		go c.runJanitor()
	}
	return c
}

func (c *Cache[K, V]) runJanitor() {
	for {
		select {
		case <-c.janitor.C:
			c.DeleteExpired()
		case <-c.stopCh:
			return
		}
	}
}

// Set stores value under key with the default TTL.
func (c *Cache[K, V]) Set(key K, value V) {
	c.SetWithTTL(key, value, c.defaultTTL)
}

// SetWithTTL stores value under key with an explicit TTL. A zero ttl means
// the item never expires.
func (c *Cache[K, V]) SetWithTTL(key K, value V, ttl time.Duration) {
	var expiresAt int64
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl).UnixNano()
	}
	c.mu.Lock()
	c.items[key] = item[V]{value: value, expiresAt: expiresAt}
	c.mu.Unlock()
}

// Get returns the value for key and whether it was present and unexpired.
// An expired item found on the way is removed.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	it, ok := c.items[key]
	c.mu.RUnlock()

	var zero V
	if !ok {
		return zero, false
	}
	if it.expired(time.Now().UnixNano()) {
		c.Delete(key)
		return zero, false
	}
	return it.value, true
}

// Touch extends the TTL of an existing, unexpired item. Returns false when
// the key is absent or already expired.
func (c *Cache[K, V]) Touch(key K, ttl time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	it, ok := c.items[key]
	if !ok || it.expired(time.Now().UnixNano()) {
		return false
	}
	if ttl > 0 {
		it.expiresAt = time.Now().Add(ttl).UnixNano()
	} else {
		it.expiresAt = 0
	}
	c.items[key] = it
	return true
}

// Delete removes key from the cache.
func (c *Cache[K, V]) Delete(key K) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

// Len returns the number of stored items, including not-yet-evicted expired
// ones.
func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Keys returns the keys of all unexpired items, in no particular order.
func (c *Cache[K, V]) Keys() []K {
	now := time.Now().UnixNano()
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]K, 0, len(c.items))
	for key, it := range c.items {
		if !it.expired(now) {
			keys = append(keys, key)
		}
	}
	return keys
}

// DeleteExpired evicts every expired item and returns how many were removed.
func (c *Cache[K, V]) DeleteExpired() int {
	now := time.Now().UnixNano()
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, it := range c.items {
		if it.expired(now) {
			delete(c.items, key)
			removed++
		}
	}
	return removed
}

// Close stops the janitor goroutine, if one was started. The cache remains
// usable afterwards.
func (c *Cache[K, V]) Close() {
	c.closeOnce.Do(func() {
		close(c.stopCh)
		if c.janitor != nil {
			c.janitor.Stop()
		}
	})
}
