package main

import (
	"os"
	"strings"

	"go.uber.org/zap"

	"go-champ-stats/internal/config"
)

// GetRedisURL returns the Redis URL with the following priority:
// 1. STATS_REDIS_URL environment variable
// 2. STATS_REDIS_URL_FILE file content
// 3. Configured value
func GetRedisURL(cfg *config.RedisConfig, logger *zap.Logger) string {
	if redisURL := os.Getenv("STATS_REDIS_URL"); redisURL != "" {
		logger.Debug("Using Redis URL from environment variable")
		return redisURL
	}

	if connectionFile := os.Getenv("STATS_REDIS_URL_FILE"); connectionFile != "" {
		if content, err := os.ReadFile(connectionFile); err == nil {
			if redisURL := strings.TrimSpace(string(content)); redisURL != "" {
				logger.Debug("Using Redis URL from connection file", zap.String("file", connectionFile))
				return redisURL
			}
		} else {
			logger.Debug("Redis connection file not readable", zap.String("file", connectionFile))
		}
	}

	return cfg.URL
}
