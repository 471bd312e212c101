// Package store is the typed layer over the byte-oriented cache levels.
// Values are JSON snapshots; a decode failure reads as a miss so a format
// change cannot surface corrupted records.
package store

import (
	"encoding/json"

	"go.uber.org/zap"

	"go-champ-stats/internal/interfaces"
	"go-champ-stats/internal/metrics"
	"go-champ-stats/internal/models"
)

// State classifies the outcome of a typed lookup
type State int

const (
	Miss        State = iota // nothing usable cached
	Hit                      // fresh positive entry
	NegativeHit              // fresh "upstream had no data" entry
)

// Get returns a fresh typed value for key, distinguishing negative entries
// from plain misses.
func Get[T any](c interfaces.Cache, key string, logger *zap.Logger) (T, State) {
	var zero T

	entry, found := c.Get(key)
	if !found {
		return zero, Miss
	}
	if entry.Negative {
		return zero, NegativeHit
	}

	var val T
	if err := json.Unmarshal(entry.Data, &val); err != nil {
		logger.Warn("Failed to decode cached value", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheError("store", "decode")
		return zero, Miss
	}
	return val, Hit
}

// GetStale returns a typed value regardless of freshness, for last-resort
// fallback after every fetch attempt failed. Negative entries never serve
// as stale values.
func GetStale[T any](c interfaces.Cache, key string, logger *zap.Logger) (T, bool) {
	var zero T

	entry, found := c.GetStale(key)
	if !found || entry.Negative {
		return zero, false
	}

	var val T
	if err := json.Unmarshal(entry.Data, &val); err != nil {
		logger.Warn("Failed to decode stale cached value", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheError("store", "decode")
		return zero, false
	}
	return val, true
}

// Set stores a typed value under key
func Set[T any](c interfaces.Cache, key string, val T, ttl models.TTL, logger *zap.Logger) {
	data, err := json.Marshal(val)
	if err != nil {
		logger.Error("Failed to encode value for cache", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheError("store", "encode")
		return
	}
	c.Set(key, data, ttl)
}

// SetNegative records that the upstream had no data for key
func SetNegative(c interfaces.Cache, key string, ttl models.TTL) {
	c.SetNegative(key, ttl)
}
