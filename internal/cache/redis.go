package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mcq-creator/internal/config"

	"github.com/redis/go-redis/v9"
)

const defaultDialTimeout = 2 * time.Second

// ErrNotConfigured is returned when no redis address is set.
var ErrNotConfigured = errors.New("redis address is empty")

// NewRedisClient connects to the result store and verifies it answers PING
// before ctx is done. The client is closed again on failure.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.Address == "" {
		return nil, ErrNotConfigured
	}

	dial := cfg.DialTimeout
	if dial <= 0 {
		dial = defaultDialTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  dial,
		ReadTimeout:  dial,
		WriteTimeout: dial,
	})

	pingCtx, cancel := context.WithTimeout(ctx, dial)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Address, err)
	}

	return client, nil
}
