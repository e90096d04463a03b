package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bilgisen/ytfeed/internal/config"
	"github.com/bilgisen/ytfeed/internal/utils"
	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned by Get when the key holds no value.
var ErrMiss = errors.New("cache miss")

// RedisInterface is the hot snapshot cache used by the media service
type RedisInterface interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Clear(ctx context.Context) error
	Close() error
}

// SnapshotKey is the cache key of the last good envelope for a channel handle.
func SnapshotKey(handle string) string {
	return "snapshot:" + utils.Hash(handle)
}

// New returns a Redis cache when REDIS_URL is set and an in-memory cache otherwise.
func New(cfg *config.Config) (RedisInterface, error) {
	if cfg.RedisURL == "" {
		return NewMockRedisClient(cfg), nil
	}
	return NewRedisClient(cfg)
}

type RedisClient struct {
	client *redis.Client
	prefix string
}

func NewRedisClient(cfg *config.Config) (*RedisClient, error) {
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	// Test the connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return newRedisClient(client, cfg.RedisPrefix), nil
}

func newRedisClient(client *redis.Client, prefix string) *RedisClient {
	return &RedisClient{
		client: client,
		prefix: prefix,
	}
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}

func (r *RedisClient) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get error: %w", err)
	}
	return val, nil
}

func (r *RedisClient) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, r.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set error: %w", err)
	}
	return nil
}

// Clear removes every key under the configured prefix.
func (r *RedisClient) Clear(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, r.prefix+"*", 0).Iterator()
	var keys []string

	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}

	if err := iter.Err(); err != nil {
		return fmt.Errorf("error scanning keys: %w", err)
	}

	if len(keys) > 0 {
		if err := r.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("error deleting keys: %w", err)
		}
	}

	return nil
}
