package cache

import (
	"sync"
	"time"

	"datalens/domain/dataset"
)

// Cache is a TTL cache for loaded datasets keyed by (name, split). Entries
// expire strictly after the TTL; there is no LRU since a single session
// only revisits a handful of dataset/split combinations. Expired entries
// are evicted on access.
type Cache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry
	now     func() time.Time
}

type entry struct {
	ds       *dataset.Dataset
	storedAt time.Time
}

// New creates a cache with the given TTL.
func New(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

func key(name, split string) string {
	return name + "@" + split
}

// Get returns the cached dataset for (name, split) if present and fresh.
func (c *Cache) Get(name, split string) (*dataset.Dataset, bool) {
	k := key(name, split)

	c.mu.RLock()
	e, ok := c.entries[k]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if c.now().Sub(e.storedAt) >= c.ttl {
		c.mu.Lock()
		// Re-check under the write lock; a Put may have refreshed it.
		if e, ok = c.entries[k]; ok && c.now().Sub(e.storedAt) >= c.ttl {
			delete(c.entries, k)
			ok = false
		}
		c.mu.Unlock()
		if !ok {
			return nil, false
		}
	}
	return e.ds, true
}

// Put stores a dataset for (name, split), resetting its TTL.
func (c *Cache) Put(name, split string, ds *dataset.Dataset) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key(name, split)] = entry{ds: ds, storedAt: c.now()}
}

// Len returns the number of stored entries, fresh or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Flush drops all entries.
func (c *Cache) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}
