package usage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	cacheKeyPrefix = "usage:query:"
	cacheHitsKey   = "usage:query:hits"

	// DefaultCacheTTL bounds how stale a cached search response may get.
	DefaultCacheTTL = 24 * time.Hour
)

// QueryCache caches search responses in Redis so repeated questions skip
// the billable vendor round trip.
type QueryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewQueryCache instantiates the cache helper. A non-positive ttl falls
// back to the 24-hour default.
func NewQueryCache(client *redis.Client, ttl time.Duration) *QueryCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &QueryCache{client: client, ttl: ttl}
}

// Key derives the cache key for a query string.
func (c *QueryCache) Key(query string) string {
	sum := sha256.Sum256([]byte(query))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}

// FetchJSON loads a cached response or populates it using the loader. A
// cache hit bumps the hit counter; misses store the loaded value with TTL.
func (c *QueryCache) FetchJSON(ctx context.Context, query string, dest any, loader func(context.Context) (any, error)) (bool, error) {
	if loader == nil {
		return false, errors.New("usage: cache loader required")
	}
	if c == nil || c.client == nil {
		value, err := loader(ctx)
		if err != nil {
			return false, err
		}
		return false, roundTrip(value, dest)
	}

	key := c.Key(query)
	payload, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		if err := c.client.Incr(ctx, cacheHitsKey).Err(); err != nil {
			return false, err
		}
		return true, json.Unmarshal(payload, dest)
	}
	if !errors.Is(err, redis.Nil) {
		return false, err
	}

	value, err := loader(ctx)
	if err != nil {
		return false, err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return false, err
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return false, err
	}
	return false, json.Unmarshal(data, dest)
}

// Hits returns the total cache hit count.
func (c *QueryCache) Hits(ctx context.Context) (int64, error) {
	if c == nil || c.client == nil {
		return 0, nil
	}
	hits, err := c.client.Get(ctx, cacheHitsKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return hits, err
}

func roundTrip(value, dest any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}
