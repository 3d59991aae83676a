package picker

import (
	"sync"
	"time"
)

// PreviewCache caches preview command output keyed by the rendered command.
// Moving the cursor back and forth over the list would otherwise re-run
// every preview command.
//
// Entries have a TTL so previews of live sessions (capture-pane) do not go
// stale for long.
type PreviewCache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry // keyed by rendered command
	ttl     time.Duration
	hits    int64
	misses  int64
}

type cacheEntry struct {
	output   string
	failed   bool
	cachedAt time.Time
}

// NewPreviewCache creates a cache with the given TTL.
// A TTL of 0 disables caching.
func NewPreviewCache(ttl time.Duration) *PreviewCache {
	return &PreviewCache{
		entries: make(map[string]*cacheEntry),
		ttl:     ttl,
	}
}

// Lookup returns the cached output for command and whether the command
// failed, if a fresh entry exists.
func (c *PreviewCache) Lookup(command string) (output string, failed bool, ok bool) {
	if c == nil || c.ttl <= 0 {
		return "", false, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, found := c.entries[command]
	if !found || time.Since(entry.cachedAt) > c.ttl {
		c.misses++
		return "", false, false
	}
	c.hits++
	return entry.output, entry.failed, true
}

// Store saves the output of command.
func (c *PreviewCache) Store(command, output string, failed bool) {
	if c == nil || c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[command] = &cacheEntry{
		output:   output,
		failed:   failed,
		cachedAt: time.Now(),
	}
}

// CacheStats is a snapshot of cache counters.
type CacheStats struct {
	Entries int
	Hits    int64
	Misses  int64
}

// Stats returns cache statistics.
func (c *PreviewCache) Stats() CacheStats {
	if c == nil {
		return CacheStats{}
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return CacheStats{Entries: len(c.entries), Hits: c.hits, Misses: c.misses}
}
