package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// TTL defaults
const (
	TTLTally   = 1 * time.Minute
	TTLDefault = 5 * time.Minute
)

// Cache key prefixes
const (
	PrefixTally = "tally:"
)

// ErrMiss is returned when a key is not cached or Redis is not configured
var ErrMiss = errors.New("cache miss")

// Service Redis cache service
type Service interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error

	// Reaction tally cache, keyed by content type and content ID
	GetTally(ctx context.Context, contentType string, contentID int64, dest interface{}) error
	SetTally(ctx context.Context, contentType string, contentID int64, value interface{}) error
	InvalidateTally(ctx context.Context, contentType string, contentID int64) error

	IsAvailable() bool
	Ping(ctx context.Context) error
}

type redisCache struct {
	client   *redis.Client
	tallyTTL time.Duration
}

// NewService creates a cache service. A nil client yields a no-op cache that always misses.
func NewService(client *redis.Client, tallyTTL time.Duration) Service {
	if tallyTTL <= 0 {
		tallyTTL = TTLTally
	}
	return &redisCache{client: client, tallyTTL: tallyTTL}
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
		return ErrMiss
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}

func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = TTLDefault
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, data, ttl).Err()
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil || len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// ========================================
// Reaction tallies
// ========================================

func tallyKey(contentType string, contentID int64) string {
	return PrefixTally + contentType + ":" + strconv.FormatInt(contentID, 10)
}

func (c *redisCache) GetTally(ctx context.Context, contentType string, contentID int64, dest interface{}) error {
	return c.Get(ctx, tallyKey(contentType, contentID), dest)
}

func (c *redisCache) SetTally(ctx context.Context, contentType string, contentID int64, value interface{}) error {
	return c.Set(ctx, tallyKey(contentType, contentID), value, c.tallyTTL)
}

func (c *redisCache) InvalidateTally(ctx context.Context, contentType string, contentID int64) error {
	return c.Delete(ctx, tallyKey(contentType, contentID))
}
