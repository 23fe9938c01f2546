package rates

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"landed-cost/internal/config"
	"landed-cost/internal/logging"
)

// Build wires the configured sources into a cached chain. The returned
// close function releases the cache connection.
func Build(ctx context.Context, cfg config.RatesConfig) (*CachedSource, func() error, error) {
	client := &http.Client{Timeout: cfg.Timeout()}

	mig := NewMigSource(WithHTTPClient(client), WithMarkup(cfg.MarkupPercent))
	static := NewStaticSource(cfg.Static)

	registry := NewRegistry()
	registry.Register(mig)
	registry.Register(NewBioSource(NewChain(cfg.Timeout(), mig, static), "", client))
	registry.Register(static)

	sources, err := registry.Select(cfg.Sources...)
	if err != nil {
		return nil, nil, err
	}

	var (
		cache   Cache = NewMemoryCache()
		closeFn       = func() error { return nil }
	)
	if cfg.RedisAddr != "" {
		redisCache := NewRedisCache(cfg.RedisAddr, cfg.RedisPassword)
		if err := redisCache.Ping(ctx); err != nil {
			logging.Warn("redis unavailable, using in-memory rate cache",
				zap.String("addr", cfg.RedisAddr), zap.Error(err))
			redisCache.Close()
		} else {
			cache = redisCache
			closeFn = redisCache.Close
		}
	}

	chain := NewChain(cfg.Timeout(), sources...)
	logging.Debug("rate sources configured",
		zap.String("chain", chain.Name()), zap.Duration("ttl", cfg.CacheTTL()))

	return NewCachedSource(chain, cache, cfg.CacheTTL()), closeFn, nil
}
