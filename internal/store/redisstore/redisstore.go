// Package redisstore keeps progress in a Redis hash so several machines can
// share one player's state.
package redisstore

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultKey is the hash holding the progress fields.
const DefaultKey = "sengoku:progress"

// Backend is a progress backend on a single Redis hash.
type Backend struct {
	client *redis.Client
	key    string
}

// Option configures a Backend.
type Option func(*Backend)

// WithKey overrides the hash key.
func WithKey(key string) Option {
	return func(b *Backend) { b.key = key }
}

// New connects to the Redis server at url (redis://[:password@]host:port/db)
// and verifies the connection.
func New(ctx context.Context, url string, opts ...Option) (*Backend, error) {
	redisOpts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(redisOpts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewWithClient(client, opts...), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client *redis.Client, opts ...Option) *Backend {
	b := &Backend{client: client, key: DefaultKey}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Load returns every field of the hash. A missing hash yields an empty map.
func (b *Backend) Load(ctx context.Context) (map[string]string, error) {
	values, err := b.client.HGetAll(ctx, b.key).Result()
	if err != nil {
		return nil, fmt.Errorf("load progress hash: %w", err)
	}
	return values, nil
}

// Save replaces the hash with values inside MULTI/EXEC, so readers never
// observe a half-written state.
func (b *Backend) Save(ctx context.Context, values map[string]string) error {
	_, err := b.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, b.key)
		if len(values) > 0 {
			pipe.HSet(ctx, b.key, values)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save progress hash: %w", err)
	}
	return nil
}

// Close closes the underlying client.
func (b *Backend) Close() error {
	return b.client.Close()
}
