// Package cache is an explicit key/TTL/tag cache over redis for catalog
// reads. Writes to companies or problems invalidate by tag so every cached
// page for the touched company drops at once.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type Cache struct {
	client *redis.Client
}

func NewRedisClient(addr, pass string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: pass,
		DB:       db,
	})
}

// New wraps a redis client. A nil client yields a no-op cache so the
// service runs without redis configured.
func New(client *redis.Client) *Cache {
	if client == nil {
		return nil
	}
	return &Cache{client: client}
}

func Ping(ctx context.Context, c *redis.Client) error {
	return c.Ping(ctx).Err()
}

// Get unmarshals the cached value for key into dest. The bool reports a hit.
func (c *Cache) Get(ctx context.Context, key string, dest any) (bool, error) {
	if c == nil {
		return false, nil
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores val under key for ttl and registers key under each tag so
// Invalidate can drop it later.
func (c *Cache) Set(ctx context.Context, key string, val any, ttl time.Duration, tags ...string) error {
	if c == nil {
		return nil
	}
	raw, err := json.Marshal(val)
	if err != nil {
		return err
	}

	pipe := c.client.TxPipeline()
	pipe.Set(ctx, key, raw, ttl)
	for _, tag := range tags {
		tagKey := tagKey(tag)
		pipe.SAdd(ctx, tagKey, key)
		// tag sets outlive their members slightly so membership is never
		// dropped before the keys themselves expire
		pipe.Expire(ctx, tagKey, ttl+time.Minute)
	}
	_, err = pipe.Exec(ctx)
	return err
}

// Invalidate deletes every key registered under the given tags.
func (c *Cache) Invalidate(ctx context.Context, tags ...string) error {
	if c == nil {
		return nil
	}
	for _, tag := range tags {
		tagKey := tagKey(tag)
		keys, err := c.client.SMembers(ctx, tagKey).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if err := c.client.Del(ctx, tagKey).Err(); err != nil {
			return err
		}
	}
	return nil
}

func tagKey(tag string) string {
	return "tag:" + tag
}

// Tag names shared by read and write paths.

func CompanyTag(slug string) string {
	return "company:" + slug
}

const GlobalProblemsTag = "problems:all"
