package l2

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"go-champ-stats/internal/config"
	"go-champ-stats/internal/interfaces"
	"go-champ-stats/internal/metrics"
	"go-champ-stats/internal/models"
)

// Ensure RedisCache implements interfaces.Cache
var _ interfaces.Cache = (*RedisCache)(nil)

// RedisCache implements the persistent cache level on Redis. It lets cached
// stats survive application restarts during a play session.
type RedisCache struct {
	client       interfaces.RedisClient
	readTimeout  time.Duration
	writeTimeout time.Duration
	logger       *zap.Logger
}

// NewRedisCache creates a new RedisCache instance with the provided client
func NewRedisCache(cfg *config.RedisConfig, client interfaces.RedisClient, logger *zap.Logger) interfaces.Cache {
	return &RedisCache{
		client:       client,
		readTimeout:  time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
		writeTimeout: time.Duration(cfg.WriteTimeoutSeconds) * time.Second,
		logger:       logger,
	}
}

// Get retrieves an entry that is still within its fresh window
func (rc *RedisCache) Get(key string) (*models.CacheEntry, bool) {
	entry, found := rc.load(key)
	if !found || !entry.IsFresh() {
		return nil, false
	}
	return entry, true
}

// GetStale retrieves an entry regardless of freshness
func (rc *RedisCache) GetStale(key string) (*models.CacheEntry, bool) {
	return rc.load(key)
}

func (rc *RedisCache) load(key string) (*models.CacheEntry, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), rc.readTimeout)
	defer cancel()

	data, err := rc.client.Get(ctx, key).Result()
	if err != nil {
		return nil, false
	}

	var entry models.CacheEntry
	if err := json.Unmarshal([]byte(data), &entry); err != nil {
		rc.logger.Error("Failed to unmarshal L2 cache entry", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheError("l2", "decode")
		rc.client.Del(context.Background(), key)
		return nil, false
	}

	if entry.IsExpired() {
		rc.client.Del(context.Background(), key)
		return nil, false
	}

	return &entry, true
}

// Set stores a positive entry with the given TTL
func (rc *RedisCache) Set(key string, val []byte, ttl models.TTL) {
	rc.store(key, models.NewCacheEntry(val, ttl), ttl.Fresh+ttl.Stale)
}

// SetNegative records that the upstream had no data for this key
func (rc *RedisCache) SetNegative(key string, ttl models.TTL) {
	rc.store(key, models.NewNegativeEntry(ttl.Fresh), ttl.Fresh)
}

func (rc *RedisCache) store(key string, entry models.CacheEntry, expiration time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), rc.writeTimeout)
	defer cancel()

	data, err := json.Marshal(entry)
	if err != nil {
		rc.logger.Error("Failed to marshal L2 cache entry", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheError("l2", "encode")
		return
	}

	if err := rc.client.Set(ctx, key, data, expiration).Err(); err != nil {
		rc.logger.Error("Failed to set L2 cache entry", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheError("l2", "upstream")
	}
}

// Delete removes an entry
func (rc *RedisCache) Delete(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), rc.writeTimeout)
	defer cancel()

	if err := rc.client.Del(ctx, key).Err(); err != nil {
		rc.logger.Error("Failed to delete L2 cache entry", zap.String("key", key), zap.Error(err))
	}
}

// Clear flushes the database. The configured redis DB is dedicated to this
// application.
func (rc *RedisCache) Clear() {
	ctx, cancel := context.WithTimeout(context.Background(), rc.writeTimeout)
	defer cancel()

	if err := rc.client.FlushDB(ctx).Err(); err != nil {
		rc.logger.Error("Failed to flush L2 cache", zap.Error(err))
		metrics.RecordCacheError("l2", "reset")
	}
}

// Close closes the redis connection
func (rc *RedisCache) Close() error {
	return rc.client.Close()
}
