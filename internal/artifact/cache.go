package artifact

import (
	"sync"
	"time"
)

// MemoryCache is a concurrency-safe in-memory Store, used in front of a
// slower backing store or on its own in tests.
type MemoryCache struct {
	mu    sync.RWMutex
	items map[string]*cacheEntry
}

type cacheEntry struct {
	data    []byte
	expires time.Time // zero means no expiry
}

// NewMemoryCache creates an empty cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{items: make(map[string]*cacheEntry)}
}

// Get returns the cached blob unless it has expired.
func (c *MemoryCache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	entry, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !entry.expires.IsZero() && time.Now().After(entry.expires) {
		c.mu.Lock()
		delete(c.items, key)
		c.mu.Unlock()
		return nil, false
	}
	return entry.data, true
}

// Put stores the blob. A zero ttl keeps it until replaced.
func (c *MemoryCache) Put(key string, data []byte, ttl time.Duration) error {
	entry := &cacheEntry{data: data}
	if ttl > 0 {
		entry.expires = time.Now().Add(ttl)
	}
	c.mu.Lock()
	c.items[key] = entry
	c.mu.Unlock()
	return nil
}

// Tiered chains a fast cache in front of a backing store: reads fill the
// cache, writes go to both.
type Tiered struct {
	Cache *MemoryCache
	Back  Store
}

// Get checks the cache first, falling back to the backing store and
// filling the cache on a hit.
func (t *Tiered) Get(key string) ([]byte, bool) {
	if data, ok := t.Cache.Get(key); ok {
		return data, true
	}
	data, ok := t.Back.Get(key)
	if ok {
		_ = t.Cache.Put(key, data, 0)
	}
	return data, ok
}

// Put writes through to both layers.
func (t *Tiered) Put(key string, data []byte, ttl time.Duration) error {
	_ = t.Cache.Put(key, data, ttl)
	return t.Back.Put(key, data, ttl)
}
