package redis

import (
	"context"
	"fmt"
	"time"

	"upflux-ai/pkg/config"

	"github.com/go-redis/redis/v8"
)

// pingTimeout bounds the startup connectivity check so a wrong address
// fails fast instead of hanging service boot.
const pingTimeout = 5 * time.Second

// RedisClient owns the shared connection backing the run-history and
// device-status repository.
type RedisClient struct {
	client *redis.Client
}

// NewRedisClient connects using the redis section of the service
// configuration and verifies the connection before handing it out.
func NewRedisClient(cfg *config.Config) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Addr, err)
	}

	return &RedisClient{client: client}, nil
}

// GetClient retrieves the underlying Redis client
func (r *RedisClient) GetClient() *redis.Client {
	return r.client
}

// Close closes the Redis connection
func (r *RedisClient) Close() error {
	return r.client.Close()
}
