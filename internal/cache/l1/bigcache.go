package l1

import (
	"context"
	"encoding/json"
	"time"

	"github.com/allegro/bigcache/v3"
	"go.uber.org/zap"

	"go-champ-stats/internal/interfaces"
	"go-champ-stats/internal/metrics"
	"go-champ-stats/internal/models"
)

// Ensure BigCache implements interfaces.Cache
var _ interfaces.Cache = (*BigCache)(nil)

// BigCache implements the in-memory cache level using BigCache
type BigCache struct {
	cache  *bigcache.BigCache
	logger *zap.Logger
}

// NewBigCache creates a new BigCache instance with the given hard size cap in MB
func NewBigCache(sizeMB int, logger *zap.Logger) (interfaces.Cache, error) {
	config := bigcache.DefaultConfig(2 * time.Hour) // eviction backstop, entries carry their own TTL
	config.HardMaxCacheSize = sizeMB
	config.Verbose = false
	config.MaxEntrySize = 1024 * 1024

	cache, err := bigcache.New(context.Background(), config)
	if err != nil {
		return nil, err
	}

	return &BigCache{
		cache:  cache,
		logger: logger,
	}, nil
}

// Get retrieves an entry that is still within its fresh window
func (bc *BigCache) Get(key string) (*models.CacheEntry, bool) {
	entry, found := bc.load(key)
	if !found {
		return nil, false
	}

	if !entry.IsFresh() {
		return nil, false
	}

	return entry, true
}

// GetStale retrieves an entry regardless of freshness (stale-if-error)
func (bc *BigCache) GetStale(key string) (*models.CacheEntry, bool) {
	return bc.load(key)
}

// load reads and decodes an entry, dropping corrupted or fully expired ones
func (bc *BigCache) load(key string) (*models.CacheEntry, bool) {
	data, err := bc.cache.Get(key)
	if err != nil {
		return nil, false
	}

	var entry models.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		bc.logger.Warn("Failed to unmarshal L1 cache entry", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheError("l1", "decode")
		bc.cache.Delete(key) // Remove corrupted entry
		return nil, false
	}

	if entry.IsExpired() {
		bc.cache.Delete(key)
		return nil, false
	}

	return &entry, true
}

// Set stores a positive entry with the given TTL
func (bc *BigCache) Set(key string, val []byte, ttl models.TTL) {
	bc.store(key, models.NewCacheEntry(val, ttl))
}

// SetNegative records that the upstream had no data for this key
func (bc *BigCache) SetNegative(key string, ttl models.TTL) {
	bc.store(key, models.NewNegativeEntry(ttl.Fresh))
}

func (bc *BigCache) store(key string, entry models.CacheEntry) {
	data, err := json.Marshal(entry)
	if err != nil {
		bc.logger.Error("Failed to marshal cache entry", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheError("l1", "encode")
		return
	}

	if err := bc.cache.Set(key, data); err != nil {
		bc.logger.Error("Failed to set cache entry", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheError("l1", "upstream")
		return
	}
}

// Delete removes an entry from the cache
func (bc *BigCache) Delete(key string) {
	if err := bc.cache.Delete(key); err != nil {
		return
	}
}

// Clear drops every entry, used when a new match starts
func (bc *BigCache) Clear() {
	if err := bc.cache.Reset(); err != nil {
		bc.logger.Error("Failed to reset L1 cache", zap.Error(err))
		metrics.RecordCacheError("l1", "reset")
	}
}

// Close closes the cache
func (bc *BigCache) Close() error {
	return bc.cache.Close()
}
