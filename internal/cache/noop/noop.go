package noop

import (
	"go-champ-stats/internal/interfaces"
	"go-champ-stats/internal/models"
)

// Ensure NoOpCache implements interfaces.Cache
var _ interfaces.Cache = (*NoOpCache)(nil)

// NoOpCache is the stand-in for a disabled cache level
type NoOpCache struct{}

// NewNoOpCache creates a new NoOpCache instance
func NewNoOpCache() interfaces.Cache {
	return &NoOpCache{}
}

// Get always misses
func (n *NoOpCache) Get(key string) (*models.CacheEntry, bool) {
	return nil, false
}

// GetStale always misses
func (n *NoOpCache) GetStale(key string) (*models.CacheEntry, bool) {
	return nil, false
}

// Set does nothing
func (n *NoOpCache) Set(key string, val []byte, ttl models.TTL) {}

// SetNegative does nothing
func (n *NoOpCache) SetNegative(key string, ttl models.TTL) {}

// Delete does nothing
func (n *NoOpCache) Delete(key string) {}

// Clear does nothing
func (n *NoOpCache) Clear() {}
