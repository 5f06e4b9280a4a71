package recurrence

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"sync"
	"time"
)

// cacheEntry is one cached expansion result.
type cacheEntry struct {
	occurrences []Occurrence
	expiresAt   time.Time
	accessedAt  time.Time
}

// expansionCache caches ExpandOccurrences results keyed by the full input:
// rule string, base occurrence and window. Entries expire after a TTL and
// the least recently accessed ones are evicted when the cache overflows.
type expansionCache struct {
	mu          sync.RWMutex
	entries     map[string]*cacheEntry
	ttl         time.Duration
	maxEntries  int
	stopCleanup chan struct{}
}

func newExpansionCache(config CacheConfig) *expansionCache {
	c := &expansionCache{
		entries:     make(map[string]*cacheEntry),
		ttl:         config.TTL,
		maxEntries:  config.MaxEntries,
		stopCleanup: make(chan struct{}),
	}
	go c.cleanupLoop(config.CleanupInterval)
	return c
}

// key digests every input that affects an expansion result.
func (c *expansionCache) key(ruleStr string, base BaseOccurrence, windowStart, windowEnd time.Time) string {
	h := sha256.New()
	h.Write([]byte(ruleStr))
	h.Write([]byte(base.Start.Format(time.RFC3339Nano)))
	if end, ok := base.End.Get(); ok {
		h.Write([]byte(end.Format(time.RFC3339Nano)))
	}
	h.Write([]byte(base.Type))
	h.Write([]byte(windowStart.Format(time.RFC3339Nano)))
	h.Write([]byte(windowEnd.Format(time.RFC3339Nano)))
	return fmt.Sprintf("%x", h.Sum(nil))
}

func (c *expansionCache) get(ruleStr string, base BaseOccurrence, windowStart, windowEnd time.Time) ([]Occurrence, bool) {
	key := c.key(ruleStr, base, windowStart, windowEnd)
	now := time.Now()

	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		return nil, false
	}
	if now.After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}

	c.mu.Lock()
	entry.accessedAt = now
	c.mu.Unlock()
	return entry.occurrences, true
}

func (c *expansionCache) set(ruleStr string, base BaseOccurrence, windowStart, windowEnd time.Time, occs []Occurrence) {
	key := c.key(ruleStr, base, windowStart, windowEnd)
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = &cacheEntry{
		occurrences: occs,
		expiresAt:   now.Add(c.ttl),
		accessedAt:  now,
	}
	if len(c.entries) > c.maxEntries {
		c.evict()
	}
}

// evict removes expired entries, then the least recently accessed ones
// until the cache is back under maxEntries. Caller holds the write lock.
func (c *expansionCache) evict() {
	now := time.Now()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
	if len(c.entries) <= c.maxEntries {
		return
	}

	type keyAccess struct {
		key        string
		accessedAt time.Time
	}
	byAccess := make([]keyAccess, 0, len(c.entries))
	for key, entry := range c.entries {
		byAccess = append(byAccess, keyAccess{key: key, accessedAt: entry.accessedAt})
	}
	sort.Slice(byAccess, func(i, j int) bool {
		return byAccess[i].accessedAt.Before(byAccess[j].accessedAt)
	})

	for i := 0; i < len(byAccess) && len(c.entries) > c.maxEntries; i++ {
		delete(c.entries, byAccess[i].key)
	}
}

func (c *expansionCache) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			c.evict()
			c.mu.Unlock()
		case <-c.stopCleanup:
			return
		}
	}
}

func (c *expansionCache) close() {
	close(c.stopCleanup)
	c.mu.Lock()
	c.entries = make(map[string]*cacheEntry)
	c.mu.Unlock()
}

func (c *expansionCache) stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	now := time.Now()
	expired := 0
	for _, entry := range c.entries {
		if now.After(entry.expiresAt) {
			expired++
		}
	}
	return CacheStats{
		TotalEntries:   len(c.entries),
		ExpiredEntries: expired,
		ActiveEntries:  len(c.entries) - expired,
	}
}

// CacheStats describes the state of the expansion cache.
type CacheStats struct {
	TotalEntries   int
	ExpiredEntries int
	ActiveEntries  int
}
