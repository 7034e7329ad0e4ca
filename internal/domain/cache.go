package domain

import (
	"context"
	"time"
)

// CacheError is a sentinel error raised by Cache implementations.
type CacheError string

func (e CacheError) Error() string {
	return string(e)
}

// ErrCacheMiss means the key is absent or expired.
const ErrCacheMiss = CacheError("cache: key not found")

// Cache is the key/value port behind the quiz result store. Values are
// opaque strings; the store owns their encoding.
type Cache interface {
	// Get returns ErrCacheMiss for an absent key.
	Get(ctx context.Context, key string) (string, error)
	// Set overwrites key. A zero expiration keeps the value until deleted.
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	// Delete succeeds for absent keys.
	Delete(ctx context.Context, key string) error
	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}
