package recurrence

import (
	"time"
)

// Config holds engine configuration.
type Config struct {
	// CacheEnabled turns on caching of ExpandOccurrences results.
	CacheEnabled bool
	Cache        CacheConfig

	// MaxOccurrences caps the number of occurrences produced by a single
	// expansion, as a guard against pathological rules over very large
	// windows. Zero means no cap.
	MaxOccurrences int
}

// CacheConfig holds configuration for the expansion cache.
type CacheConfig struct {
	TTL             time.Duration // how long entries stay valid
	MaxEntries      int           // maximum entries before eviction
	CleanupInterval time.Duration // how often expired entries are swept
}

// DefaultCacheConfig provides sensible defaults for expansion caching. A
// calendar viewport re-requests the same window many times while the user
// scrolls, so even a short TTL pays off.
var DefaultCacheConfig = CacheConfig{
	TTL:             15 * time.Minute,
	MaxEntries:      1000,
	CleanupInterval: 5 * time.Minute,
}

// DefaultConfig is the production default: caching on, expansion capped.
var DefaultConfig = Config{
	CacheEnabled:   true,
	Cache:          DefaultCacheConfig,
	MaxOccurrences: 5000,
}

// DisabledCacheConfig turns off caching entirely; useful in tests and in
// callers that never repeat a window.
var DisabledCacheConfig = Config{
	CacheEnabled:   false,
	MaxOccurrences: 5000,
}
