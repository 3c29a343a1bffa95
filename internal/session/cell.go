package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// tokenKey is the single fixed key used for durable token storage.
// The whole durable footprint of this client is this one key.
const tokenKey = "notesgw:session:token"

// Cell is the durable storage for the current token. Exactly one value
// lives behind it at a time; Get returns "" when nothing is stored.
type Cell interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// RedisCell persists the token in Redis so a gateway restart does not log
// the user out. No TTL: expiry lives inside the token itself and is
// enforced by the route guard.
type RedisCell struct {
	client *redis.Client
}

func NewRedisCell(client *redis.Client) *RedisCell {
	return &RedisCell{client: client}
}

func (c *RedisCell) Get(ctx context.Context) (string, error) {
	val, err := c.client.Get(ctx, tokenKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read session token: %w", err)
	}
	return val, nil
}

func (c *RedisCell) Set(ctx context.Context, token string) error {
	if err := c.client.Set(ctx, tokenKey, token, 0).Err(); err != nil {
		return fmt.Errorf("failed to persist session token: %w", err)
	}
	return nil
}

func (c *RedisCell) Clear(ctx context.Context) error {
	if err := c.client.Del(ctx, tokenKey).Err(); err != nil {
		return fmt.Errorf("failed to clear session token: %w", err)
	}
	return nil
}
