package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	versionSuffix = ":version"
	// versionTTL outlives any in-flight read so a bumped version is still visible when it finishes.
	versionTTL = 24 * time.Hour
)

// Client wraps redis.Client. A nil *Client is valid and behaves as an always-empty cache.
// Callers treat every returned error as a miss; errors are surfaced only so they can be logged.
type Client struct {
	client *redis.Client
}

// New creates a new Redis client.
func New(addr, password string, db int) *Client {
	return NewFromClient(redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}))
}

// NewFromClient wraps an existing redis client.
func NewFromClient(client *redis.Client) *Client {
	return &Client{client: client}
}

// Get returns the value for key, or nil when it is missing.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	res, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Version returns the invalidation counter of key. A key never invalidated is at version 0.
func (c *Client) Version(ctx context.Context, key string) (int64, error) {
	if c == nil || c.client == nil {
		return 0, nil
	}
	v, err := c.client.Get(ctx, key+versionSuffix).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// SetIfVersion stores value under key only while key is still at version.
// It reports false when the key was invalidated in the meantime.
func (c *Client) SetIfVersion(ctx context.Context, key string, value []byte, ttl time.Duration, version int64) (bool, error) {
	if c == nil || c.client == nil {
		return false, nil
	}
	versionKey := key + versionSuffix
	stored := false
	err := c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, versionKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, value, ttl)
			return nil
		})
		if err == nil {
			stored = true
		}
		return err
	}, versionKey)
	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	return stored, err
}

// Invalidate removes keys and bumps their versions so in-flight readers cannot write them back.
func (c *Client) Invalidate(ctx context.Context, keys ...string) error {
	if c == nil || c.client == nil || len(keys) == 0 {
		return nil
	}
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, key := range keys {
			pipe.Incr(ctx, key+versionSuffix)
			pipe.Expire(ctx, key+versionSuffix, versionTTL)
			pipe.Del(ctx, key)
		}
		return nil
	})
	return err
}

// Ping reports whether redis is reachable. A nil client is always reachable.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
