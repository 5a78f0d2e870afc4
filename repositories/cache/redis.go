package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/greysolve/outreach-console/internal/pricing"
	"github.com/redis/go-redis/v9"
)

// RedisCache shares estimates between console instances
type RedisCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisClient connects to the redis server at addr
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// NewRedisCache wraps a redis client. A zero ttl keeps entries forever.
func NewRedisCache(client redis.Cmdable, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: client,
		ttl:    ttl,
	}
}

// Get returns the cached estimate, ErrMiss when absent
func (r *RedisCache) Get(ctx context.Context, key string) (pricing.CostEstimate, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return pricing.CostEstimate{}, ErrMiss
		}
		return pricing.CostEstimate{}, fmt.Errorf("redis get %s: %w", key, err)
	}

	var est pricing.CostEstimate
	if err := json.Unmarshal([]byte(val), &est); err != nil {
		return pricing.CostEstimate{}, fmt.Errorf("decode cached estimate: %w", err)
	}
	return est, nil
}

// Set stores an estimate as JSON
func (r *RedisCache) Set(ctx context.Context, key string, estimate pricing.CostEstimate) error {
	data, err := json.Marshal(estimate)
	if err != nil {
		return fmt.Errorf("encode estimate: %w", err)
	}
	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Ping checks the redis connection
func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
