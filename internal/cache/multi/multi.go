package multi

import (
	"go.uber.org/zap"

	"go-champ-stats/internal/interfaces"
	"go-champ-stats/internal/models"
)

// Ensure MultiCache implements interfaces.Cache
var _ interfaces.Cache = (*MultiCache)(nil)

// MultiCache is a composite over the enabled cache levels. Reads try each
// level in order; writes go to every level.
type MultiCache struct {
	caches []interfaces.Cache
	logger *zap.Logger
}

// NewMultiCache creates a new MultiCache instance with provided cache levels
func NewMultiCache(caches []interfaces.Cache, logger *zap.Logger) interfaces.Cache {
	return &MultiCache{
		caches: caches,
		logger: logger,
	}
}

// Get retrieves a fresh entry from the first level that has one
func (mc *MultiCache) Get(key string) (*models.CacheEntry, bool) {
	for _, cache := range mc.caches {
		if entry, found := cache.Get(key); found {
			return entry, true
		}
	}
	return nil, false
}

// GetStale retrieves a possibly-stale entry from the first level that has one
func (mc *MultiCache) GetStale(key string) (*models.CacheEntry, bool) {
	for _, cache := range mc.caches {
		if entry, found := cache.GetStale(key); found {
			return entry, true
		}
	}
	return nil, false
}

// Set stores a positive entry in every level
func (mc *MultiCache) Set(key string, val []byte, ttl models.TTL) {
	if len(mc.caches) == 0 {
		mc.logger.Warn("No caches available for set operation", zap.String("key", key))
		return
	}

	for _, cache := range mc.caches {
		cache.Set(key, val, ttl)
	}
}

// SetNegative stores a negative entry in every level
func (mc *MultiCache) SetNegative(key string, ttl models.TTL) {
	for _, cache := range mc.caches {
		cache.SetNegative(key, ttl)
	}
}

// Delete removes the entry from every level
func (mc *MultiCache) Delete(key string) {
	for _, cache := range mc.caches {
		cache.Delete(key)
	}
}

// Clear resets every level
func (mc *MultiCache) Clear() {
	for _, cache := range mc.caches {
		cache.Clear()
	}
}
