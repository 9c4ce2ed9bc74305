package secrets

import (
	"sync"
	"time"
)

type cacheEntry struct {
	value     string
	expiresAt time.Time
}

// InMemoryCache is a mutex-guarded Cache with per-entry expiry and an
// optional size bound. When full, the entry closest to expiry is evicted.
type InMemoryCache struct {
	entries    map[string]cacheEntry
	maxSize    int
	defaultTTL time.Duration
	now        func() time.Time
	mu         sync.Mutex
}

var _ Cache = (*InMemoryCache)(nil)

// NewInMemoryCache creates a cache with the given default TTL.
// A maxSize of 0 leaves the cache unbounded.
func NewInMemoryCache(defaultTTL time.Duration, maxSize int) *InMemoryCache {
	return &InMemoryCache{
		entries:    make(map[string]cacheEntry),
		maxSize:    maxSize,
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
}

// Get returns the value for key if present and not expired.
func (c *InMemoryCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return "", false
	}
	if !c.now().Before(entry.expiresAt) {
		delete(c.entries, key)
		return "", false
	}
	return entry.value, true
}

// Set stores value under key for ttl, or for the default TTL when ttl is 0.
func (c *InMemoryCache) Set(key, value string, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	now := c.now()

	if _, exists := c.entries[key]; !exists && c.maxSize > 0 && len(c.entries) >= c.maxSize {
		c.purgeExpired(now)
		if len(c.entries) >= c.maxSize {
			c.evictSoonest()
		}
	}

	c.entries[key] = cacheEntry{value: value, expiresAt: now.Add(ttl)}
}

// Delete removes key from the cache.
func (c *InMemoryCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Clear removes every entry.
func (c *InMemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
}

// Size returns the number of unexpired entries.
func (c *InMemoryCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.purgeExpired(c.now())
	return len(c.entries)
}

func (c *InMemoryCache) purgeExpired(now time.Time) {
	for key, entry := range c.entries {
		if !now.Before(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
}

func (c *InMemoryCache) evictSoonest() {
	var (
		victim string
		oldest time.Time
		found  bool
	)
	for key, entry := range c.entries {
		if !found || entry.expiresAt.Before(oldest) {
			victim, oldest, found = key, entry.expiresAt, true
		}
	}
	if found {
		delete(c.entries, victim)
	}
}
