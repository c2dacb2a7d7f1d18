package sheets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowCache_HitAndExpiry(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cache := newRowCache(30 * time.Second)
	cache.now = func() time.Time { return now }

	rows := [][]string{{"날짜", "시간"}, {"2025-06-01", "12:00"}}
	cache.put("ss", "거래", "A:Z", rows)

	got, ok := cache.get("ss", "거래", "A:Z")
	require.True(t, ok)
	assert.Equal(t, rows, got)

	// Still fresh just under the TTL.
	now = now.Add(29 * time.Second)
	_, ok = cache.get("ss", "거래", "A:Z")
	assert.True(t, ok)

	// Exactly at the TTL the entry is stale.
	now = now.Add(time.Second)
	_, ok = cache.get("ss", "거래", "A:Z")
	assert.False(t, ok)
}

func TestRowCache_MissOnDifferentKey(t *testing.T) {
	cache := newRowCache(30 * time.Second)
	cache.put("ss", "거래", "A:Z", [][]string{{"x"}})

	_, ok := cache.get("ss", "거래", "A:A")
	assert.False(t, ok, "range is part of the cache key")

	_, ok = cache.get("other", "거래", "A:Z")
	assert.False(t, ok, "spreadsheet is part of the cache key")
}

func TestRowCache_InvalidateDropsAllRangesOfSheet(t *testing.T) {
	cache := newRowCache(30 * time.Second)
	cache.put("ss", "거래", "A:Z", [][]string{{"a"}})
	cache.put("ss", "거래", "A:A", [][]string{{"a"}})
	cache.put("ss", "RP", "A:Z", [][]string{{"b"}})

	cache.invalidate("ss", "거래")

	_, ok := cache.get("ss", "거래", "A:Z")
	assert.False(t, ok)
	_, ok = cache.get("ss", "거래", "A:A")
	assert.False(t, ok)

	// Other sheets keep their entries.
	_, ok = cache.get("ss", "RP", "A:Z")
	assert.True(t, ok)
}
