package models

import "time"

// TTL represents cache time-to-live configuration
type TTL struct {
	Fresh time.Duration // How long the data is considered fresh
	Stale time.Duration // How long stale data can be served (stale-if-error)
}

// CacheEntry is the stored form of a cached result. Entries are replaced
// wholesale on refresh and never mutated in place.
type CacheEntry struct {
	Data      []byte `json:"data,omitempty"`
	Negative  bool   `json:"negative,omitempty"` // explicit "upstream had no data" marker
	CreatedAt int64  `json:"created_at"`
	StaleAt   int64  `json:"stale_at"`
	ExpiresAt int64  `json:"expires_at"`
}

// NewCacheEntry creates a positive entry stamped at the current time.
func NewCacheEntry(data []byte, ttl TTL) CacheEntry {
	now := time.Now().Unix()
	return CacheEntry{
		Data:      data,
		CreatedAt: now,
		StaleAt:   now + int64(ttl.Fresh.Seconds()),
		ExpiresAt: now + int64(ttl.Fresh.Seconds()) + int64(ttl.Stale.Seconds()),
	}
}

// NewNegativeEntry creates an entry recording that the upstream genuinely had
// no data for this key. Negative entries have no stale window.
func NewNegativeEntry(ttl time.Duration) CacheEntry {
	now := time.Now().Unix()
	return CacheEntry{
		Negative:  true,
		CreatedAt: now,
		StaleAt:   now + int64(ttl.Seconds()),
		ExpiresAt: now + int64(ttl.Seconds()),
	}
}

// IsFresh reports whether the entry is still within its fresh window
func (e *CacheEntry) IsFresh() bool {
	return time.Now().Unix() < e.StaleAt
}

// IsExpired reports whether the entry is past its stale window too
func (e *CacheEntry) IsExpired() bool {
	return time.Now().Unix() >= e.ExpiresAt
}
