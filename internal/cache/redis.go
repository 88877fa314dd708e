package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a TrustCache shared between instances.
type Redis struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedis wraps client. Entries expire after ttl.
func NewRedis(client redis.Cmdable, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

// Get returns the cached score for key. A missing key is a miss, not an
// error.
func (r *Redis) Get(ctx context.Context, key string) (float64, bool, error) {
	v, err := r.client.Get(ctx, key).Float64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("reading %s: %w", key, err)
	}
	return v, true, nil
}

// Set stores score under key.
func (r *Redis) Set(ctx context.Context, key string, score float64) error {
	if err := r.client.Set(ctx, key, score, r.ttl).Err(); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}
