package dataset

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	// DefaultCacheSize bounds the number of memoized query results.
	DefaultCacheSize = 256

	// DefaultCacheTTL is how long a memoized query result stays valid.
	DefaultCacheTTL = 5 * time.Minute
)

// QueryCache memoizes query results with a TTL so repeated identical
// queries from editor tooling do not recompute projections. The dataset
// itself is immutable after load; the TTL exists so a cleared cache and
// an expired one behave the same for the stats endpoints.
type QueryCache struct {
	lru *expirable.LRU[string, any]
	ttl time.Duration
}

// CacheStats is the snapshot returned by the cache inspection endpoint.
type CacheStats struct {
	Entries    int      `json:"entries"`
	Keys       []string `json:"keys"`
	TTLSeconds int      `json:"ttlSeconds"`
}

// NewQueryCache creates a cache with the given capacity and TTL. Zero or
// negative values fall back to the defaults.
func NewQueryCache(size int, ttl time.Duration) *QueryCache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &QueryCache{
		lru: expirable.NewLRU[string, any](size, nil, ttl),
		ttl: ttl,
	}
}

// Get returns the memoized value for key, if present and unexpired.
func (c *QueryCache) Get(key string) (any, bool) {
	return c.lru.Get(key)
}

// Add memoizes a query result.
func (c *QueryCache) Add(key string, value any) {
	c.lru.Add(key, value)
}

// Stats snapshots the live entries.
func (c *QueryCache) Stats() CacheStats {
	return CacheStats{
		Entries:    c.lru.Len(),
		Keys:       c.lru.Keys(),
		TTLSeconds: int(c.ttl.Seconds()),
	}
}

// Clear drops every entry and returns how many were dropped.
func (c *QueryCache) Clear() int {
	n := c.lru.Len()
	c.lru.Purge()
	return n
}
