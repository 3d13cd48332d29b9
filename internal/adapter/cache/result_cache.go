// Package cache provides a Redis-backed search result cache. Caching is
// best-effort: Redis failures are logged and treated as misses so the
// search path never depends on cache availability.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/airline-ops/schedule-search-service/internal/domain"
)

const keyPrefix = "schedule-search:"

// ResultCache stores assembled search results in Redis with a fixed TTL.
type ResultCache struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// NewResultCache connects to Redis at addr and verifies the connection.
func NewResultCache(ctx context.Context, addr string, ttl time.Duration, log zerolog.Logger) (*ResultCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &ResultCache{
		client: client,
		ttl:    ttl,
		log:    log,
	}, nil
}

// Get returns a cached search result, or false on a miss or any Redis or
// decode failure.
func (c *ResultCache) Get(ctx context.Context, key string) (*domain.SearchResult, bool) {
	payload, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Str("key", key).Msg("cache get failed")
		}
		return nil, false
	}

	var result domain.SearchResult
	if err := json.Unmarshal(payload, &result); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache entry corrupt, dropping")
		c.client.Del(ctx, keyPrefix+key)
		return nil, false
	}
	return &result, true
}

// Set stores a search result. Failures are logged, not returned.
func (c *ResultCache) Set(ctx context.Context, key string, result *domain.SearchResult) {
	payload, err := json.Marshal(result)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache encode failed")
		return
	}
	if err := c.client.Set(ctx, keyPrefix+key, payload, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}
}

// Close releases the Redis connection.
func (c *ResultCache) Close() error {
	return c.client.Close()
}
