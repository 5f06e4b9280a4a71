package recurrence

// Engine expands recurrence rules. The zero-cost construction path is
// NewEngine; NewEngineWithConfig tunes caching and expansion limits.
type Engine struct {
	cache  *expansionCache
	config Config
}

// NewEngine creates an engine with DefaultConfig.
func NewEngine() *Engine {
	return NewEngineWithConfig(DefaultConfig)
}

// NewEngineWithConfig creates an engine with custom configuration.
func NewEngineWithConfig(config Config) *Engine {
	var cache *expansionCache
	if config.CacheEnabled {
		cache = newExpansionCache(config.Cache)
	}
	return &Engine{
		cache:  cache,
		config: config,
	}
}

// Close stops the cache cleanup goroutine, if caching is enabled. The
// engine must not be used after Close.
func (e *Engine) Close() {
	if e.cache != nil {
		e.cache.close()
	}
}

// CacheStats returns statistics for the expansion cache. All counts are
// zero when caching is disabled.
func (e *Engine) CacheStats() CacheStats {
	if e.cache == nil {
		return CacheStats{}
	}
	return e.cache.stats()
}
