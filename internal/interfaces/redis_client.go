package interfaces

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

//go:generate mockgen -source=redis_client.go -destination=mock/redis_client.go -package=mock

// RedisClient defines the interface for Redis client operations used by the
// persistent cache level
type RedisClient interface {
	// Get retrieves a value by key
	Get(ctx context.Context, key string) *redis.StringCmd

	// Set stores a value with expiration
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd

	// Del deletes one or more keys
	Del(ctx context.Context, keys ...string) *redis.IntCmd

	// FlushDB clears the whole database (cache reset)
	FlushDB(ctx context.Context) *redis.StatusCmd

	// Ping tests connectivity
	Ping(ctx context.Context) *redis.StatusCmd

	// Close closes the client connection
	Close() error
}
