package adapter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mcq-creator/internal/domain"

	"github.com/redis/go-redis/v9"
)

// RedisCache is the domain.Cache behind the quiz result store.
type RedisCache struct {
	client redis.Cmdable
}

// NewRedisCache wraps a connected client. *redis.Client and the redismock
// client both satisfy redis.Cmdable.
func NewRedisCache(client redis.Cmdable) *RedisCache {
	return &RedisCache{client: client}
}

func (r *RedisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return "", domain.ErrCacheMiss
	case err != nil:
		return "", opError("GET", key, err)
	}
	return val, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	if expiration < 0 {
		return fmt.Errorf("redis SET %s: negative expiration %s", key, expiration)
	}
	if err := r.client.Set(ctx, key, value, expiration).Err(); err != nil {
		return opError("SET", key, err)
	}
	return nil
}

// Delete is a no-op for absent keys.
func (r *RedisCache) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return opError("DEL", key, err)
	}
	return nil
}

func (r *RedisCache) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis PING: %w", err)
	}
	return nil
}

func opError(op, key string, err error) error {
	return fmt.Errorf("redis %s %s: %w", op, key, err)
}
