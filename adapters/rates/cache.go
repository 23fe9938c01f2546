package rates

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"landed-cost/internal/errors"
)

// Cache stores fetch results with a TTL
type Cache interface {
	// Get returns a cached result; ok is false on a miss
	Get(ctx context.Context, key string) (result *FetchResult, ok bool, err error)

	// Set stores a result for ttl
	Set(ctx context.Context, key string, result *FetchResult, ttl time.Duration) error
}

// MemoryCache is an in-process cache
type MemoryCache struct {
	entries map[string]*cachedResult
	mu      sync.RWMutex
	now     func() time.Time
}

type cachedResult struct {
	result    *FetchResult
	expiresAt time.Time
}

// NewMemoryCache creates an in-process cache
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]*cachedResult),
		now:     time.Now,
	}
}

func (c *MemoryCache) Get(ctx context.Context, key string) (*FetchResult, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cached, ok := c.entries[key]
	if !ok || !c.now().Before(cached.expiresAt) {
		return nil, false, nil
	}
	return cached.result, true, nil
}

func (c *MemoryCache) Set(ctx context.Context, key string, result *FetchResult, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = &cachedResult{
		result:    result,
		expiresAt: c.now().Add(ttl),
	}
	return nil
}

// RedisCache shares fetched rates between service instances
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache creates a redis-backed cache
func NewRedisCache(addr, password string) *RedisCache {
	return NewRedisCacheWithClient(redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	}))
}

// NewRedisCacheWithClient wraps an existing client
func NewRedisCacheWithClient(client *redis.Client) *RedisCache {
	return &RedisCache{client: client, prefix: "landed-cost:rates:"}
}

// Ping verifies connectivity
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Get(ctx context.Context, key string) (*FetchResult, bool, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if stderrors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Network("redis get", err)
	}

	var result FetchResult
	if err := json.Unmarshal(val, &result); err != nil {
		return nil, false, errors.Parsing("cached rates", err)
	}
	return &result, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, result *FetchResult, ttl time.Duration) error {
	data, err := json.Marshal(result)
	if err != nil {
		return errors.Internal("marshal rates", err)
	}
	if err := c.client.Set(ctx, c.prefix+key, data, ttl).Err(); err != nil {
		return errors.Network("redis set", err)
	}
	return nil
}

// Close closes the redis client
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// CachedSource wraps a source with a cache. When the inner source fails it
// serves the last successful result, however old.
type CachedSource struct {
	inner Source
	cache Cache
	ttl   time.Duration

	mu       sync.RWMutex
	lastGood *FetchResult
}

// NewCachedSource creates a caching wrapper
func NewCachedSource(inner Source, cache Cache, ttl time.Duration) *CachedSource {
	return &CachedSource{
		inner: inner,
		cache: cache,
		ttl:   ttl,
	}
}

// Name returns the inner source name
func (s *CachedSource) Name() string {
	return s.inner.Name()
}

// Fetch serves from cache when fresh, otherwise refreshes
func (s *CachedSource) Fetch(ctx context.Context) (*FetchResult, error) {
	key := s.inner.Name()

	if cached, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		return cached, nil
	}

	result, err := s.inner.Fetch(ctx)
	if err != nil {
		s.mu.RLock()
		stale := s.lastGood
		s.mu.RUnlock()
		if stale != nil {
			return stale, nil
		}
		return nil, err
	}

	s.mu.Lock()
	s.lastGood = result
	s.mu.Unlock()

	// a cache write failure only costs a refetch next time
	_ = s.cache.Set(ctx, key, result, s.ttl)
	return result, nil
}

// Refresh bypasses the cache
func (s *CachedSource) Refresh(ctx context.Context) (*FetchResult, error) {
	result, err := s.inner.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.lastGood = result
	s.mu.Unlock()

	_ = s.cache.Set(ctx, s.inner.Name(), result, s.ttl)
	return result, nil
}
