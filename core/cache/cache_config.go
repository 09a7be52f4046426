package cache

type CacheConfig struct {
	// KeepContent stores file bodies so changes can be diffed, not just counted.
	KeepContent bool
}

func DefaultCacheConfig() *CacheConfig {
	return &CacheConfig{KeepContent: false}
}

type CacheMetrics struct {
	Snapshots int64
	Files     int64
	Changed   int64
	Unchanged int64
}
