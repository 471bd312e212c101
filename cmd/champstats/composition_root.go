package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"go-champ-stats/internal/cache"
	"go-champ-stats/internal/cache/l1"
	"go-champ-stats/internal/cache/l2"
	"go-champ-stats/internal/cache/multi"
	"go-champ-stats/internal/cache/noop"
	"go-champ-stats/internal/config"
	"go-champ-stats/internal/ddragon"
	"go-champ-stats/internal/httpserver"
	"go-champ-stats/internal/interfaces"
	"go-champ-stats/internal/limiter"
	"go-champ-stats/internal/stats"
	"go-champ-stats/internal/upstream"
)

// directoryLoadTimeout bounds the startup fetch of champion reference data
const directoryLoadTimeout = 30 * time.Second

// CompositionRoot holds all application dependencies and provides a
// centralized place for dependency injection and service initialization.
type CompositionRoot struct {
	// Configuration
	Config *config.Config
	Logger *zap.Logger

	// Cache components
	L1Cache    interfaces.Cache
	L2Cache    interfaces.Cache
	Cache      interfaces.Cache
	KeyBuilder interfaces.KeyBuilder

	// Upstream components
	Limiter   *limiter.TokenBucket
	Client    *upstream.Client
	Directory interfaces.ChampionDirectory

	// Services
	StatsService *stats.Service
	HTTPServer   *httpserver.Server
}

// NewCompositionRoot creates and initializes all application dependencies.
//
// Initialization order:
// 1. Logger (needed by all other components)
// 2. Configuration
// 3. Cache components (L1, L2, multi, KeyBuilder)
// 4. Upstream components (rate limiter, HTTP client, champion directory)
// 5. Stats service
// 6. HTTP server
func NewCompositionRoot() (*CompositionRoot, error) {
	root := &CompositionRoot{}

	if err := root.initLogger(); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := root.loadConfig(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := root.initCacheComponents(); err != nil {
		return nil, fmt.Errorf("failed to initialize cache components: %w", err)
	}

	if err := root.initUpstreamComponents(); err != nil {
		return nil, fmt.Errorf("failed to initialize upstream components: %w", err)
	}

	root.initServices()
	root.initHTTPServer()

	return root, nil
}

// initLogger initializes the application logger
func (r *CompositionRoot) initLogger() error {
	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	r.Logger = logger
	return nil
}

// loadConfig loads the application configuration. A missing config file is
// fine; every setting has a default.
func (r *CompositionRoot) loadConfig() error {
	configPath := os.Getenv("STATS_CONFIG_FILE")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(configPath, r.Logger)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			r.Logger.Info("No config file found, using defaults", zap.String("path", configPath))
			r.Config = config.Default()
			return nil
		}
		return err
	}

	r.Config = cfg
	return nil
}

// initCacheComponents initializes all cache-related components
func (r *CompositionRoot) initCacheComponents() error {
	if err := r.initL1Cache(); err != nil {
		return fmt.Errorf("failed to initialize L1 cache: %w", err)
	}
	r.initL2Cache()

	levels := make([]interfaces.Cache, 0, 2)
	for _, level := range []interfaces.Cache{r.L1Cache, r.L2Cache} {
		if _, isNoop := level.(*noop.NoOpCache); !isNoop {
			levels = append(levels, level)
		}
	}
	switch len(levels) {
	case 0:
		r.Cache = noop.NewNoOpCache()
		r.Logger.Warn("All cache levels disabled, every request hits upstream")
	case 1:
		r.Cache = levels[0]
	default:
		r.Cache = multi.NewMultiCache(levels, r.Logger)
	}

	r.KeyBuilder = cache.NewKeyBuilder()
	return nil
}

// initL1Cache initializes the L1 cache (BigCache)
func (r *CompositionRoot) initL1Cache() error {
	if !r.Config.Cache.BigCache.Enabled {
		r.L1Cache = noop.NewNoOpCache()
		r.Logger.Info("BigCache (L1) disabled")
		return nil
	}

	l1Cache, err := l1.NewBigCache(r.Config.Cache.BigCache.SizeMB, r.Logger)
	if err != nil {
		return err
	}
	r.L1Cache = l1Cache
	r.Logger.Info("BigCache (L1) initialized", zap.Int("size_mb", r.Config.Cache.BigCache.SizeMB))
	return nil
}

// initL2Cache initializes the optional Redis level. A connection failure is
// downgraded to "no L2" so the app still starts without Redis around.
func (r *CompositionRoot) initL2Cache() {
	if !r.Config.Cache.Redis.Enabled {
		r.L2Cache = noop.NewNoOpCache()
		r.Logger.Info("Redis (L2) disabled")
		return
	}

	redisCfg := r.Config.Cache.Redis
	redisCfg.URL = GetRedisURL(&r.Config.Cache.Redis, r.Logger)

	client, err := l2.NewRedisClient(&redisCfg, r.Logger)
	if err != nil {
		r.Logger.Warn("Failed to connect to Redis, falling back to no L2 cache",
			zap.Error(err))
		r.L2Cache = noop.NewNoOpCache()
		return
	}

	r.L2Cache = l2.NewRedisCache(&redisCfg, client, r.Logger)
	r.Logger.Info("Redis (L2) initialized")
}

// initUpstreamComponents initializes the rate limiter, the upstream client
// and the champion reference directory.
func (r *CompositionRoot) initUpstreamComponents() error {
	r.Limiter = limiter.New(r.Config.Limiter.Burst, r.Config.RefillPeriod(), r.Logger)
	r.Client = upstream.NewClient(&r.Config.Upstream, r.Limiter, r.Logger)

	ctx, cancel := context.WithTimeout(context.Background(), directoryLoadTimeout)
	defer cancel()

	directory, err := ddragon.Load(ctx, os.Getenv("STATS_DDRAGON_URL"), r.Logger)
	if err != nil {
		return fmt.Errorf("failed to load champion directory: %w", err)
	}
	r.Directory = directory
	return nil
}

// initServices initializes the stats service
func (r *CompositionRoot) initServices() {
	r.StatsService = stats.NewService(
		r.Client,
		r.Cache,
		r.KeyBuilder,
		r.Directory,
		r.Config,
		r.Logger,
	)
}

// initHTTPServer initializes the HTTP server
func (r *CompositionRoot) initHTTPServer() {
	r.HTTPServer = httpserver.NewServer(
		r.StatsService,
		r.Logger,
	)
}

// Cleanup performs cleanup of all resources
func (r *CompositionRoot) Cleanup() error {
	var errs []error

	if r.Logger != nil {
		if err := r.Logger.Sync(); err != nil {
			errs = append(errs, fmt.Errorf("failed to sync logger: %w", err))
		}
	}

	if l1Cache, ok := r.L1Cache.(*l1.BigCache); ok {
		if err := l1Cache.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close L1 cache: %w", err))
		}
	}

	if l2Cache, ok := r.L2Cache.(*l2.RedisCache); ok {
		if err := l2Cache.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close L2 cache: %w", err))
		}
	}

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
