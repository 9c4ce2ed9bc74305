package secrets

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock is advanced manually by tests.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newTestCache(ttl time.Duration, maxSize int) (*InMemoryCache, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	cache := NewInMemoryCache(ttl, maxSize)
	cache.now = clock.Now
	return cache, clock
}

func TestInMemoryCache_GetSet(t *testing.T) {
	cache, clock := newTestCache(5*time.Minute, 0)

	_, ok := cache.Get("missing")
	assert.False(t, ok)

	cache.Set("token", "s3cr3t", 0)
	value, ok := cache.Get("token")
	assert.True(t, ok)
	assert.Equal(t, "s3cr3t", value)

	clock.now = clock.now.Add(4 * time.Minute)
	_, ok = cache.Get("token")
	assert.True(t, ok, "entry should live for the default TTL")

	clock.now = clock.now.Add(time.Minute)
	_, ok = cache.Get("token")
	assert.False(t, ok, "entry should expire at the default TTL")
	assert.Equal(t, 0, cache.Size())
}

func TestInMemoryCache_ExplicitTTL(t *testing.T) {
	cache, clock := newTestCache(time.Hour, 0)

	cache.Set("short", "v", time.Second)
	clock.now = clock.now.Add(2 * time.Second)

	_, ok := cache.Get("short")
	assert.False(t, ok)
}

func TestInMemoryCache_Eviction(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(c *InMemoryCache, clock *fakeClock)
		wantKeys []string
		goneKeys []string
	}{
		{
			name: "evicts the entry closest to expiry",
			setup: func(c *InMemoryCache, clock *fakeClock) {
				c.Set("a", "1", 3*time.Minute)
				c.Set("b", "2", time.Minute)
				c.Set("c", "3", 0)
			},
			wantKeys: []string{"a", "c"},
			goneKeys: []string{"b"},
		},
		{
			name: "purges expired entries before evicting",
			setup: func(c *InMemoryCache, clock *fakeClock) {
				c.Set("a", "1", time.Second)
				c.Set("b", "2", time.Hour)
				clock.now = clock.now.Add(2 * time.Second)
				c.Set("c", "3", 0)
			},
			wantKeys: []string{"b", "c"},
			goneKeys: []string{"a"},
		},
		{
			name: "overwriting an existing key does not evict",
			setup: func(c *InMemoryCache, clock *fakeClock) {
				c.Set("a", "1", time.Minute)
				c.Set("b", "2", time.Hour)
				c.Set("a", "updated", time.Hour)
			},
			wantKeys: []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache, clock := newTestCache(10*time.Minute, 2)
			tt.setup(cache, clock)

			for _, key := range tt.wantKeys {
				_, ok := cache.Get(key)
				assert.True(t, ok, "expected %q to be cached", key)
			}
			for _, key := range tt.goneKeys {
				_, ok := cache.Get(key)
				assert.False(t, ok, "expected %q to be evicted", key)
			}
		})
	}
}

func TestInMemoryCache_DeleteClear(t *testing.T) {
	cache, _ := newTestCache(time.Minute, 0)
	cache.Set("a", "1", 0)
	cache.Set("b", "2", 0)

	cache.Delete("a")
	_, ok := cache.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, cache.Size())

	cache.Clear()
	assert.Equal(t, 0, cache.Size())
}

func TestInMemoryCache_Concurrent(t *testing.T) {
	cache := NewInMemoryCache(time.Minute, 50)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 200 {
				key := fmt.Sprintf("key-%d-%d", i, j%20)
				cache.Set(key, "v", 0)
				cache.Get(key)
			}
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, cache.Size(), 50)
}
