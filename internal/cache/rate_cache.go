package cache

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/zisan5910/zisan-trader-pro/internal/ledger"
)

// RateCache caches the commission rate table so the banking path does not
// hit the settings table on every transaction.
type RateCache interface {
	Get(ctx context.Context) (ledger.RateTable, bool, error)
	Set(ctx context.Context, table ledger.RateTable, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

const rateCacheKey = "settings:commission_rates"

type RedisRateCache struct {
	client *redis.Client
}

func NewRedisRateCache(addr string, password string, db int) *RedisRateCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &RedisRateCache{client: client}
}

func (c *RedisRateCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisRateCache) Close() error {
	return c.client.Close()
}

func (c *RedisRateCache) Get(ctx context.Context) (ledger.RateTable, bool, error) {
	val, err := c.client.Get(ctx, rateCacheKey).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var table ledger.RateTable
	if err := json.Unmarshal([]byte(val), &table); err != nil {
		return nil, false, err
	}
	return table, true, nil
}

func (c *RedisRateCache) Set(ctx context.Context, table ledger.RateTable, ttl time.Duration) error {
	if table == nil {
		return nil
	}
	payload, err := json.Marshal(table)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, rateCacheKey, payload, ttl).Err()
}

func (c *RedisRateCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, rateCacheKey).Err()
}

// NoopRateCache is used when no redis address is configured; every read
// misses so callers fall through to the database.
type NoopRateCache struct{}

func (NoopRateCache) Get(ctx context.Context) (ledger.RateTable, bool, error) {
	return nil, false, nil
}

func (NoopRateCache) Set(ctx context.Context, table ledger.RateTable, ttl time.Duration) error {
	return nil
}

func (NoopRateCache) Invalidate(ctx context.Context) error {
	return nil
}
