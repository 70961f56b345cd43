package dataset

import (
	"sync"
	"time"
)

// cacheEntry is one memoized table.
type cacheEntry struct {
	table    *Table
	loadedAt time.Time
}

// CacheStats reports memoization counters.
type CacheStats struct {
	Entries int   `json:"entries"`
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
}

// tableCache memoizes tables by dataset name. Entries never expire.
type tableCache struct {
	mu      sync.RWMutex
	entries map[Name]cacheEntry
	hits    int64
	misses  int64
}

func newTableCache() *tableCache {
	return &tableCache{entries: make(map[Name]cacheEntry)}
}

func (c *tableCache) get(name Name) (*Table, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[name]
	if !ok {
		c.misses++
		return nil, false
	}
	c.hits++
	return e.table, true
}

// put stores t unless another goroutine stored name first; the stored table
// is returned either way so concurrent loads agree.
func (c *tableCache) put(name Name, t *Table) *Table {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[name]; ok {
		return e.table
	}
	c.entries[name] = cacheEntry{table: t, loadedAt: time.Now()}
	return t
}

func (c *tableCache) loadedAt(name Name) (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[name]
	return e.loadedAt, ok
}

func (c *tableCache) stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return CacheStats{Entries: len(c.entries), Hits: c.hits, Misses: c.misses}
}
