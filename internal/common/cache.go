package common

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// CacheKeyBlogs holds the full blog list. Any blog write must flush it.
const CacheKeyBlogs = "blogs:all"

// Cache is an in-process key/value cache with per-entry expiry.
type Cache struct {
	c *cache.Cache
}

// NewCache creates a cache whose entries live for expirationTime unless Set says otherwise.
// Expired entries are swept every cleanupTime; zero disables the sweep.
func NewCache(expirationTime, cleanupTime time.Duration) *Cache {
	return &Cache{c: cache.New(expirationTime, cleanupTime)}
}

func (c *Cache) Set(key string, value any, expiration ...time.Duration) {
	d := cache.DefaultExpiration
	if len(expiration) > 0 {
		d = expiration[0]
	}
	c.c.Set(key, value, d)
}

func (c *Cache) Get(key string) (any, bool) {
	return c.c.Get(key)
}

func (c *Cache) Flush() {
	c.c.Flush()
}
