package memdex

import (
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/elastic/go-freelru"
)

// lookupCache memoizes recent Get results in a fixed-capacity LRU.
// Set and Delete invalidate the affected key, so a cached entry is
// always the live value. The tree is externally locked, so the cache
// inherits that synchronization; the counters are atomic only so that
// CacheStats can be read under a shared lock.
type lookupCache struct {
	lru *freelru.LRU[string, []byte]

	hits   atomic.Uint64
	misses atomic.Uint64
}

// hashKey feeds freelru's bucket selection.
func hashKey(key string) uint32 {
	return uint32(xxhash.Sum64String(key))
}

func newLookupCache(capacity uint32) (*lookupCache, error) {
	lru, err := freelru.New[string, []byte](capacity, hashKey)
	if err != nil {
		return nil, err
	}
	return &lookupCache{lru: lru}, nil
}

func (c *lookupCache) get(key []byte) ([]byte, bool) {
	value, ok := c.lru.Get(string(key))
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return value, ok
}

func (c *lookupCache) add(key, value []byte) {
	c.lru.Add(string(key), value)
}

func (c *lookupCache) invalidate(key []byte) {
	c.lru.Remove(string(key))
}

func (c *lookupCache) stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}
