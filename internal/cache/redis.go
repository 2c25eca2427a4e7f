package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/resortbooking/config"
	"github.com/Domenick1991/resortbooking/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisCache keeps booking session snapshots so a session survives a restart
// of the process that owned it.
type RedisCache struct {
	client     *redis.Client
	sessionTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, sessionTTL time.Duration) *RedisCache {
	return NewRedisCacheWithClient(
		redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		sessionTTL,
	)
}

func NewRedisCacheWithClient(client *redis.Client, sessionTTL time.Duration) *RedisCache {
	return &RedisCache{client: client, sessionTTL: sessionTTL}
}

// LoadSession returns nil, nil when no snapshot exists.
func (c *RedisCache) LoadSession(ctx context.Context, id string) (*domain.BookingState, error) {
	data, err := c.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var state domain.BookingState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", id, err)
	}
	return &state, nil
}

// SaveSession writes the snapshot and restarts its expiry.
func (c *RedisCache) SaveSession(ctx context.Context, id string, state domain.BookingState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, sessionKey(id), payload, c.sessionTTL).Err()
}

func (c *RedisCache) DeleteSession(ctx context.Context, id string) error {
	return c.client.Del(ctx, sessionKey(id)).Err()
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func sessionKey(id string) string {
	return fmt.Sprintf("session:%s", id)
}
