package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// Redis is the production Store backed by a Redis server. Records are
// plain string values keyed as written; no TTL is applied, class records
// live until overwritten.
type Redis struct {
	client *redis.Client
}

// NewRedis wraps an already-connected client.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

// Get fetches the value at key. A missing key returns ok=false with no
// error.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return val, true, nil
}

// Set writes the value at key, overwriting any previous value.
func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	return r.client.Set(ctx, key, value, 0).Err()
}
