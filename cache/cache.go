package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

type Cache struct {
	client *redis.Client
}

// NewCache wraps a connected Redis client.
func NewCache(client *redis.Client) (*Cache, error) {
	if client == nil {
		return nil, errors.New("Redis client is not initialized")
	}
	return &Cache{client: client}, nil
}

func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil {
		return errors.New("Redis client is not initialized")
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// Incr increments a counter. The expiration is set when the counter is created.
func (c *Cache) Incr(ctx context.Context, key string, expiration time.Duration) (int64, error) {
	if c.client == nil {
		return 0, errors.New("Redis client is not initialized")
	}
	n, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		if err := c.client.Expire(ctx, key, expiration).Err(); err != nil {
			return n, err
		}
	}
	return n, nil
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if c.client == nil {
		return errors.New("Redis client is not initialized")
	}
	return c.client.Set(ctx, key, value, expiration).Err()
}

// Get returns "" with a nil error when the key does not exist.
func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	if c.client == nil {
		return "", errors.New("Redis client is not initialized")
	}
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

// GetJSON decodes a cached value into dest and reports whether it was found.
func (c *Cache) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	raw, err := c.Get(ctx, key)
	if err != nil || raw == "" {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON stores value encoded as JSON.
func (c *Cache) SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, data, expiration)
}

// Ping checks the Redis connection, used by the health endpoint.
func (c *Cache) Ping(ctx context.Context) error {
	if c.client == nil {
		return errors.New("Redis client is not initialized")
	}
	return c.client.Ping(ctx).Err()
}
