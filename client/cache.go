package client

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// QueryCache is the storage the query layer reads through. Injected so
// callers can share one cache across clients or plug in their own;
// there is no package-level singleton.
type QueryCache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
	Delete(key string)
	Keys() []string
}

// LRUCache wraps an expirable LRU. Eviction and TTL bookkeeping are
// the library's problem, not ours.
type LRUCache struct {
	lru *expirable.LRU[string, any]
}

const (
	// DefaultCacheSize bounds the number of cached queries.
	DefaultCacheSize = 512
	// DefaultCacheTTL is how long an entry stays fresh.
	DefaultCacheTTL = 5 * time.Minute
)

// NewLRUCache builds a cache with the given capacity and TTL. Zero
// values fall back to the defaults.
func NewLRUCache(size int, ttl time.Duration) *LRUCache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &LRUCache{lru: expirable.NewLRU[string, any](size, nil, ttl)}
}

func (c *LRUCache) Get(key string) (any, bool) { return c.lru.Get(key) }

func (c *LRUCache) Set(key string, value any) { c.lru.Add(key, value) }

func (c *LRUCache) Delete(key string) { c.lru.Remove(key) }

func (c *LRUCache) Keys() []string { return c.lru.Keys() }

// InvalidateDomain drops every cached entry under the given domain and
// returns how many were removed. Entries in other domains are never
// touched.
func InvalidateDomain(cache QueryCache, domain string) int {
	n := 0
	for _, key := range cache.Keys() {
		if matchesDomain(key, domain) {
			cache.Delete(key)
			n++
		}
	}
	return n
}
