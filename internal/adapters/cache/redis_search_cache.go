package cache

import (
	"context"
	"crawl-route-service/internal/domain"
	"crawl-route-service/internal/platform/obs"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSearchCache keeps ranked venue lists as JSON with a TTL.
type RedisSearchCache struct {
	Client *redis.Client
	Prefix string
}

func NewRedisSearchCache(client *redis.Client) *RedisSearchCache {
	return &RedisSearchCache{Client: client, Prefix: "crawl:search:"}
}

func (c *RedisSearchCache) Get(ctx context.Context, key string) (_ []domain.Venue, _ bool, err error) {
	defer obs.Time(ctx, "search.cache.Get")(&err)

	b, err := c.Client.Get(ctx, c.Prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get search cache %q: %w", key, err)
	}

	var venues []domain.Venue
	if err := json.Unmarshal(b, &venues); err != nil {
		return nil, false, fmt.Errorf("decode search cache %q: %w", key, err)
	}

	return venues, true, nil
}

func (c *RedisSearchCache) Put(ctx context.Context, key string, venues []domain.Venue, ttl time.Duration) (err error) {
	defer obs.Time(ctx, "search.cache.Put")(&err)

	if venues == nil {
		venues = []domain.Venue{}
	}

	b, err := json.Marshal(venues)
	if err != nil {
		return fmt.Errorf("encode search cache %q: %w", key, err)
	}

	if err := c.Client.Set(ctx, c.Prefix+key, b, ttl).Err(); err != nil {
		return fmt.Errorf("put search cache %q: %w", key, err)
	}

	return nil
}
