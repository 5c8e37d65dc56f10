package cache

import (
	"context"
	"time"
)

// Cache is the key-value contract used by the application. Values are
// JSON encoded by the implementation.
type Cache interface {
	// Get unmarshals the cached value into dest. found is false on a miss
	// and dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (found bool, err error)

	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)

	// Increment bumps an integer counter and returns the new value.
	Increment(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
	TTL(ctx context.Context, key string) (time.Duration, error)

	Ping(ctx context.Context) error
}
