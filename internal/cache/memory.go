package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache implements TokenCache in memory with TTL eviction.
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache creates a new memory cache.
func NewMemoryCache(defaultTTL time.Duration, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get retrieves a token slice from the cache.
func (c *MemoryCache) Get(key string) ([]string, bool) {
	if val, found := c.cache.Get(key); found {
		return val.([]string), true
	}
	return nil, false
}

// Set stores a token slice with the default TTL.
func (c *MemoryCache) Set(key string, tokens []string) {
	c.cache.SetDefault(key, tokens)
}
