// FilePath: internal/cache/cache.go
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/urbansense/wastehub/internal/config"
	nuts "github.com/vaudience/go-nuts"
)

// ResponseCache keeps rendered read-path payloads in redis for a few
// seconds. Every dashboard surface polls independently on a 5-10s interval
// with no client-side dedup, so the hot endpoints are served from here
// between refreshes. Cache failures are logged and treated as misses.
type ResponseCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New connects to redis and verifies the connection.
func New(cfg config.RedisConfig) (*ResponseCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("error connecting to redis: %w", err)
	}

	nuts.L.Infof("[Cache] Connected to redis at %s:%d", cfg.Host, cfg.Port)
	return &ResponseCache{rdb: rdb, ttl: cfg.TTLOrDefault()}, nil
}

// Get returns the cached payload for key, or ok=false on miss or error.
func (c *ResponseCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	payload, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		nuts.L.Warnf("[Cache] Get %s failed: %v", key, err)
		return nil, false
	}
	return payload, true
}

// Set stores a payload under key for the configured TTL. Failures are not
// propagated; the next reader just hits the store.
func (c *ResponseCache) Set(ctx context.Context, key string, payload []byte) {
	if c == nil {
		return
	}
	if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		nuts.L.Warnf("[Cache] Set %s failed: %v", key, err)
	}
}

// Close releases the redis connection.
func (c *ResponseCache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
