// Package client is a small SDK for the folio REST API. Reads are cached
// with a TTL and degrade to stale data or empty results instead of erroring;
// mutations report their errors and leave the cache alone.
package client

import (
	"sync"
	"time"
)

// DefaultTTL is the freshness window for cached reads.
const DefaultTTL = 5 * time.Minute

type entry struct {
	data      any
	fetchedAt time.Time
}

// cacheStore holds one cached fetch per entity kind.
type cacheStore struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry
}

func newCacheStore(ttl time.Duration) *cacheStore {
	return &cacheStore{ttl: ttl, entries: make(map[string]entry)}
}

// get returns the cached value for kind along with whether it is still
// fresh and whether it exists at all.
func (c *cacheStore) get(kind string) (data any, fresh, present bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[kind]
	if !ok {
		return nil, false, false
	}
	return e.data, time.Since(e.fetchedAt) < c.ttl, true
}

func (c *cacheStore) put(kind string, data any) {
	c.mu.Lock()
	c.entries[kind] = entry{data: data, fetchedAt: time.Now()}
	c.mu.Unlock()
}

// Invalidate clears all cached reads so the next call refetches.
func (c *cacheStore) invalidate() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}
