package sheets

import (
	"sync"
	"time"
)

type cacheKey struct {
	spreadsheetID string
	sheet         string
	rng           string
}

type cacheEntry struct {
	rows      [][]string
	fetchedAt time.Time
}

// rowCache holds recently fetched rows keyed by (spreadsheet, sheet, range).
// Entries expire after a fixed TTL, and any mutation of a sheet drops every
// cached range for it. Unlike the cooperative single-threaded environment
// this design comes from, gateway calls here can run in parallel, so the map
// is mutex-guarded.
type rowCache struct {
	mu      sync.Mutex
	entries map[cacheKey]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

func newRowCache(ttl time.Duration) *rowCache {
	return &rowCache{
		entries: make(map[cacheKey]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// get returns the cached rows, or false when the entry is absent or older
// than the TTL. Expired entries are dropped on the spot.
func (c *rowCache) get(spreadsheetID, sheet, rng string) ([][]string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey{spreadsheetID, sheet, rng}
	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.fetchedAt) >= c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return entry.rows, true
}

func (c *rowCache) put(spreadsheetID, sheet, rng string, rows [][]string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[cacheKey{spreadsheetID, sheet, rng}] = cacheEntry{rows: rows, fetchedAt: c.now()}
}

// invalidate removes every cached range of the sheet. A write to A2:B2 must
// evict a cached A:Z read of the same sheet.
func (c *rowCache) invalidate(spreadsheetID, sheet string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.entries {
		if key.spreadsheetID == spreadsheetID && key.sheet == sheet {
			delete(c.entries, key)
		}
	}
}
