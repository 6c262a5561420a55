package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// lastRunKey holds the most recent run summary for cheap status reads.
const lastRunKey = "courtside:runs:latest"

// RedisCache handles caching of run summaries and fast state storage.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a new Redis cache connection.
func NewRedisCache(redisURL string) (*RedisCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{
		client: client,
	}, nil
}

// Close closes the Redis connection.
func (rc *RedisCache) Close() error {
	return rc.client.Close()
}

// Client returns the underlying Redis client.
func (rc *RedisCache) Client() *redis.Client {
	return rc.client
}

// HealthCheck pings Redis to verify connection.
func (rc *RedisCache) HealthCheck(ctx context.Context) error {
	return rc.client.Ping(ctx).Err()
}

// SetLastRunSummary caches the summary of the most recent pipeline run.
func (rc *RedisCache) SetLastRunSummary(ctx context.Context, summary interface{}, ttl time.Duration) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshal run summary: %w", err)
	}
	return rc.client.Set(ctx, lastRunKey, data, ttl).Err()
}

// GetLastRunSummary reads the cached run summary into out. Returns false
// when no summary is cached.
func (rc *RedisCache) GetLastRunSummary(ctx context.Context, out interface{}) (bool, error) {
	data, err := rc.client.Get(ctx, lastRunKey).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("unmarshal run summary: %w", err)
	}
	return true, nil
}
