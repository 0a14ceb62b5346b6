package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a small JSON read-through over redis, used to hold provider search
// batches so the discovery feed does not burn the Unsplash quota on every
// request. A nil *Cache is valid and does nothing, so the rest of the code
// never checks whether redis is configured.
type Cache struct {
	client *redis.Client
}

// New connects to redis. An empty address or a failed ping returns nil, which
// disables caching without failing startup.
func New(addr string) *Cache {
	if addr == "" {
		log.Println("[Cache] REDIS_ADDR not set, provider caching disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("[Cache] redis unreachable at %s, caching disabled: %v", addr, err)
		return nil
	}
	log.Println("[Cache] Connected to redis")
	return &Cache{client: client}
}

// GetJSON loads a cached value into out, reporting whether it was present.
func (c *Cache) GetJSON(ctx context.Context, key string, out interface{}) bool {
	if c == nil {
		return false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("[Cache] get %s: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		log.Printf("[Cache] decode %s: %v", key, err)
		return false
	}
	return true
}

// SetJSON stores a value with a TTL. Failures are logged and ignored.
func (c *Cache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		log.Printf("[Cache] encode %s: %v", key, err)
		return
	}
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		log.Printf("[Cache] set %s: %v", key, err)
	}
}
