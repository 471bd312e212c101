package noop

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"go-champ-stats/internal/models"
)

func TestNoOpCache(t *testing.T) {
	cache := NewNoOpCache()
	assert.NotNil(t, cache)

	ttl := models.TTL{Fresh: time.Minute, Stale: time.Minute}

	// Set then Get still misses
	cache.Set("key", []byte("value"), ttl)
	entry, found := cache.Get("key")
	assert.False(t, found)
	assert.Nil(t, entry)

	// SetNegative then Get still misses
	cache.SetNegative("key", ttl)
	entry, found = cache.GetStale("key")
	assert.False(t, found)
	assert.Nil(t, entry)

	// Delete and Clear don't panic
	cache.Delete("key")
	cache.Clear()
}
