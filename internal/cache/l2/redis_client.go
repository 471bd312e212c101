package l2

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"go-champ-stats/internal/config"
	"go-champ-stats/internal/interfaces"
)

// Ensure redisClient implements interfaces.RedisClient
var _ interfaces.RedisClient = (*redisClient)(nil)

// redisClient wraps redis.Client to implement the RedisClient interface
type redisClient struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisClient creates a connected client from the configured URL
func NewRedisClient(cfg *config.RedisConfig, logger *zap.Logger) (interfaces.RedisClient, error) {
	parsedURL, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	host := parsedURL.Hostname()
	port := parsedURL.Port()
	if port == "" {
		port = "6379"
	}

	opts := &redis.Options{
		Addr:         fmt.Sprintf("%s:%s", host, port),
		DialTimeout:  time.Duration(cfg.ConnectTimeoutSeconds) * time.Second,
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSeconds) * time.Second,
		PoolSize:     cfg.PoolSize,
	}

	if parsedURL.User != nil {
		if password, ok := parsedURL.User.Password(); ok {
			opts.Password = password
		}
	}

	if parsedURL.Path != "" && len(parsedURL.Path) > 1 {
		if db, err := strconv.Atoi(parsedURL.Path[1:]); err == nil {
			opts.DB = db
		}
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), opts.DialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", opts.Addr, err)
	}

	logger.Info("Connected to redis",
		zap.String("address", opts.Addr),
		zap.Int("db", opts.DB),
		zap.Int("pool_size", opts.PoolSize))

	return &redisClient{
		client: client,
		logger: logger,
	}, nil
}

// Get retrieves a value by key
func (r *redisClient) Get(ctx context.Context, key string) *redis.StringCmd {
	return r.client.Get(ctx, key)
}

// Set stores a value with expiration
func (r *redisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	return r.client.Set(ctx, key, value, expiration)
}

// Del deletes one or more keys
func (r *redisClient) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	return r.client.Del(ctx, keys...)
}

// FlushDB clears the database
func (r *redisClient) FlushDB(ctx context.Context) *redis.StatusCmd {
	return r.client.FlushDB(ctx)
}

// Ping tests connectivity
func (r *redisClient) Ping(ctx context.Context) *redis.StatusCmd {
	return r.client.Ping(ctx)
}

// Close closes the client connection
func (r *redisClient) Close() error {
	return r.client.Close()
}
