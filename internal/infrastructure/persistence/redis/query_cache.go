package redis

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// QueryCache is a cache-aside JSON cache for computed read models: the
// report aggregations and individual book details. Reports walk every sale
// on each request, so a short TTL removes most of that load during busy
// hours while keeping staleness bounded.
//
// Cache failures are deliberately soft: a miss or a Redis outage falls
// through to recomputation, never to a request error.
type QueryCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewQueryCache(client *redis.Client, ttl time.Duration) *QueryCache {
	return &QueryCache{client: client, ttl: ttl}
}

const cacheKeyPrefix = "cache:"

// Get unmarshals the cached entry into dest. The second return is false on
// a miss or any cache error.
func (c *QueryCache) Get(ctx context.Context, name string, dest interface{}) bool {
	data, err := c.client.Get(ctx, cacheKeyPrefix+name).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("query cache read failed: %v", err)
		}
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		log.Printf("query cache entry corrupt, dropping: %v", err)
		c.client.Del(ctx, cacheKeyPrefix+name)
		return false
	}
	return true
}

// Set stores a computed entry. Errors are logged and swallowed.
func (c *QueryCache) Set(ctx context.Context, name string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("query cache marshal failed: %v", err)
		return
	}
	if err := c.client.Set(ctx, cacheKeyPrefix+name, data, c.ttl).Err(); err != nil {
		log.Printf("query cache write failed: %v", err)
	}
}

// InvalidateAll drops every cached entry. Called after each registered sale
// (stock and report output change) and after any catalog mutation.
func (c *QueryCache) InvalidateAll(ctx context.Context) {
	iter := c.client.Scan(ctx, 0, cacheKeyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Printf("query cache scan failed: %v", err)
		return
	}
	if len(keys) > 0 {
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			log.Printf("query cache invalidation failed: %v", err)
		}
	}
}
