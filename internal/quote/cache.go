// Package quote fetches current price snapshots for stocks and
// cryptocurrencies from external providers, backed by a TTL cache and
// per-provider pacing of outbound calls.
package quote

import (
	"sync"
	"time"
)

// DefaultTTL is how long a cached price snapshot remains valid.
const DefaultTTL = 5 * time.Minute

// Snapshot is a point-in-time price quote for a single asset.
type Snapshot struct {
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
}

type cacheEntry struct {
	snapshot  Snapshot
	fetchedAt time.Time
}

// Cache is a TTL cache of price snapshots keyed by asset identifier.
// Entries are never evicted; the map grows for the life of the process,
// bounded in practice by the number of distinct assets quoted.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]cacheEntry
}

// NewCache creates a price snapshot cache with the given TTL.
// A zero or negative TTL falls back to DefaultTTL.
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

// GetOrFetch returns the cached snapshot for key when one exists and is
// younger than the TTL. Otherwise it invokes fetch: a successful result is
// stored with the current timestamp and returned; a failure is returned as
// not-ok and never cached, so the next call retries immediately.
//
// The lock is not held while fetch runs, so a slow provider call for one
// key never blocks lookups for other keys. Concurrent misses on the same
// key may each invoke fetch; the last result wins.
func (c *Cache) GetOrFetch(key string, fetch func() (Snapshot, error)) (Snapshot, bool) {
	c.mu.Lock()
	if entry, found := c.entries[key]; found && c.now().Sub(entry.fetchedAt) < c.ttl {
		c.mu.Unlock()
		return entry.snapshot, true
	}
	c.mu.Unlock()

	snapshot, err := fetch()
	if err != nil {
		return Snapshot{}, false
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{snapshot: snapshot, fetchedAt: c.now()}
	c.mu.Unlock()
	return snapshot, true
}

// Fresh reports whether a usable entry exists for key, i.e. one younger
// than the TTL.
func (c *Cache) Fresh(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, found := c.entries[key]
	return found && c.now().Sub(entry.fetchedAt) < c.ttl
}

// Contains reports whether any entry exists for key, fresh or stale.
func (c *Cache) Contains(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, found := c.entries[key]
	return found
}

// Len returns the number of stored entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
