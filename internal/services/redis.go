package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// StatsTTL bounds how long derived stats stay cached without a write.
const StatsTTL = 5 * time.Minute

// StatsCache caches derived movement and WOD statistics per user.
// Record writes invalidate the affected key.
type StatsCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	Invalidate(ctx context.Context, keys ...string) error
}

func MovementStatsKey(userID, movementID uint) string {
	return fmt.Sprintf("stats:movement:%d:%d", userID, movementID)
}

func WODStatsKey(userID, wodID uint) string {
	return fmt.Sprintf("stats:wod:%d:%d", userID, wodID)
}

// NewRedisClient parses redisURL and checks the connection.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// RedisStatsCache stores stats as JSON strings with StatsTTL expiry.
type RedisStatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStatsCache(client *redis.Client) *RedisStatsCache {
	return &RedisStatsCache{client: client, ttl: StatsTTL}
}

func (c *RedisStatsCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *RedisStatsCache) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

func (c *RedisStatsCache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// NopStatsCache never hits. It is used when REDIS_URL is unset.
type NopStatsCache struct{}

func (NopStatsCache) Get(context.Context, string, interface{}) (bool, error) { return false, nil }
func (NopStatsCache) Set(context.Context, string, interface{}) error         { return nil }
func (NopStatsCache) Invalidate(context.Context, ...string) error            { return nil }
