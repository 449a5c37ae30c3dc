package store

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

// Redis is a Store backed by a Redis instance. Keys persist until deleted.
type Redis struct {
	client *redis.Client
}

// NewRedis constructs a Redis-backed store.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

// GetJSON implements Store.
func (r *Redis) GetJSON(ctx context.Context, key string, dst any) (bool, error) {
	if r == nil || r.client == nil || key == "" {
		return false, nil
	}
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON implements Store.
func (r *Redis) SetJSON(ctx context.Context, key string, v any) error {
	if r == nil || r.client == nil || key == "" {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, 0).Err()
}

// Delete implements Store.
func (r *Redis) Delete(ctx context.Context, key string) error {
	if r == nil || r.client == nil || key == "" {
		return nil
	}
	return r.client.Del(ctx, key).Err()
}
