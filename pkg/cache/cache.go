package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache TTLs
const (
	TTLContent = 5 * time.Minute  // published content payloads
	TTLList    = 30 * time.Second // content listings (refreshed often)
	TTLDefault = 5 * time.Minute
)

// Cache key prefixes
const (
	PrefixContent = "content:"
	PrefixList    = "content-list:"
)

// Service content cache backed by redis. All methods tolerate a nil client
// so the backend runs degraded without redis rather than failing.
type Service interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error

	GetContent(ctx context.Context, kind, id string) ([]byte, error)
	SetContent(ctx context.Context, kind, id string, data interface{}) error
	InvalidateContent(ctx context.Context, kind, id string) error
	InvalidateLists(ctx context.Context, kind string) error

	IsAvailable() bool
	Ping(ctx context.Context) error
}

type redisCache struct {
	client *redis.Client
}

// NewService creates a cache service on top of a redis client
func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

func (c *redisCache) IsAvailable() bool {
	return c.client != nil
}

func (c *redisCache) Ping(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	return c.client.Ping(ctx).Err()
}

func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	if c.client == nil {
		return fmt.Errorf("redis not available")
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}

func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, data, ttl).Err()
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func contentKey(kind, id string) string {
	return PrefixContent + kind + ":" + id
}

func listPrefix(kind string) string {
	return PrefixList + kind + ":"
}

func (c *redisCache) GetContent(ctx context.Context, kind, id string) ([]byte, error) {
	if c.client == nil {
		return nil, fmt.Errorf("redis not available")
	}
	return c.client.Get(ctx, contentKey(kind, id)).Bytes()
}

func (c *redisCache) SetContent(ctx context.Context, kind, id string, data interface{}) error {
	if c.client == nil {
		return nil
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, contentKey(kind, id), jsonData, TTLContent).Err()
}

// InvalidateContent drops the cached payload and listings for one item.
// Called after every committed workflow transition or rollback.
func (c *redisCache) InvalidateContent(ctx context.Context, kind, id string) error {
	if c.client == nil {
		return nil
	}
	if err := c.client.Del(ctx, contentKey(kind, id)).Err(); err != nil {
		return err
	}
	return c.InvalidateLists(ctx, kind)
}

func (c *redisCache) InvalidateLists(ctx context.Context, kind string) error {
	if c.client == nil {
		return nil
	}
	return c.deleteByPattern(ctx, listPrefix(kind)+"*")
}

func (c *redisCache) deleteByPattern(ctx context.Context, pattern string) error {
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
