package chargers

import (
	"sync"
	"time"
)

type cacheEntry struct {
	record   ChargerRecord
	cachedAt time.Time
}

// recordCache holds the last resolved record per charger id. Expiry is
// checked lazily on read, there is no eviction goroutine. Concurrent writes
// to the same id are last-write-wins, staleness is bounded by the TTL.
type recordCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]cacheEntry
}

func newRecordCache(ttl time.Duration) *recordCache {
	return &recordCache{
		ttl:     ttl,
		entries: map[string]cacheEntry{},
	}
}

func (c *recordCache) get(id string, now time.Time) (ChargerRecord, bool) {
	c.mu.RLock()
	entry, ok := c.entries[id]
	c.mu.RUnlock()
	if !ok {
		return ChargerRecord{}, false
	}
	if now.Sub(entry.cachedAt) >= c.ttl {
		c.mu.Lock()
		// re-check, a fresh write may have landed in between
		if current, ok := c.entries[id]; ok && now.Sub(current.cachedAt) >= c.ttl {
			delete(c.entries, id)
		}
		c.mu.Unlock()
		return ChargerRecord{}, false
	}
	return entry.record, true
}

func (c *recordCache) set(id string, record ChargerRecord, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[id] = cacheEntry{record: record, cachedAt: now}
}

func (c *recordCache) invalidate(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
}
