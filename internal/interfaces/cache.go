package interfaces

import (
	"go-champ-stats/internal/models"
)

//go:generate mockgen -package=mock -source=cache.go -destination=mock/cache.go

// Cache interface defines the contract for cache implementations
type Cache interface {
	Get(key string) (*models.CacheEntry, bool)      // fresh entries only
	GetStale(key string) (*models.CacheEntry, bool) // stale-if-error, anything not yet expired
	Set(key string, val []byte, ttl models.TTL)
	SetNegative(key string, ttl models.TTL) // records "upstream had no data"
	Delete(key string)
	Clear() // wholesale reset, e.g. when a new match starts
}
