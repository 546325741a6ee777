package cache

import (
	"context"
	"fmt"

	"github.com/couchcryptid/heat-risk-predictor/internal/config"
)

// Cache stores scores keyed by artifact version and measurement record.
type Cache interface {
	Get(ctx context.Context, key string) (float64, bool, error)
	Put(ctx context.Context, key string, score float64) error
}

// Open builds the cache named by cfg.CacheBackend. The none backend yields a
// nil Cache so every submission is scored. The returned close func is never nil.
func Open(ctx context.Context, cfg *config.Config) (Cache, func() error, error) {
	noop := func() error { return nil }

	switch cfg.CacheBackend {
	case config.CacheNone:
		return nil, noop, nil
	case config.CacheMemory:
		return NewMemoryCache(cfg.CacheSize, cfg.CacheTTL), noop, nil
	case config.CacheRedis:
		r, err := NewRedisCache(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.CacheTTL)
		if err != nil {
			return nil, noop, err
		}
		return r, r.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown cache backend %q", cfg.CacheBackend)
	}
}
