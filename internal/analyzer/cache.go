package analyzer

import (
	"fmt"
	"sync"
)

// resultCache memoizes completed analyses keyed by (source, limit, mode).
// Entries are whole *Result values inserted after computation finishes, so a
// concurrent reader can never observe a half-populated result.
type resultCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	source string
	result *Result
}

func newResultCache() *resultCache {
	return &resultCache{entries: make(map[string]cacheEntry)}
}

func cacheKey(opts Options) string {
	return fmt.Sprintf("%s|%d|%s", opts.Source, opts.Limit, opts.Mode)
}

func (c *resultCache) get(opts Options) (*Result, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[cacheKey(opts)]
	return e.result, ok
}

func (c *resultCache) put(opts Options, res *Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey(opts)] = cacheEntry{source: opts.Source, result: res}
}

// invalidate removes entries scoped to the given source. Unfiltered entries
// ("" source) cover every handle, so they are dropped on any invalidation.
// An empty source argument clears the whole cache.
func (c *resultCache) invalidate(source string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if source == "" {
		c.entries = make(map[string]cacheEntry)
		return
	}
	for key, e := range c.entries {
		if e.source == source || e.source == "" {
			delete(c.entries, key)
		}
	}
}
