package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/JonasLeetTheWay/fyyur-go/internal/config"
	"github.com/go-redis/redis/v8"
)

// Client keeps pending flash messages per browser session.
type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewClient(cfg *config.Config) *Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	return NewFromRedis(rdb, cfg.FlashTTL)
}

func NewFromRedis(rdb *redis.Client, ttl time.Duration) *Client {
	return &Client{rdb: rdb, ttl: ttl}
}

func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func flashKey(sessionID string) string {
	return fmt.Sprintf("flash:%s", sessionID)
}

// PushFlash queues a message for the session and refreshes its expiry.
func (c *Client) PushFlash(ctx context.Context, sessionID, message string) error {
	key := flashKey(sessionID)
	pipe := c.rdb.TxPipeline()
	pipe.RPush(ctx, key, message)
	pipe.Expire(ctx, key, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to push flash: %w", err)
	}
	return nil
}

// PopFlashes returns and clears every queued message for the session.
func (c *Client) PopFlashes(ctx context.Context, sessionID string) ([]string, error) {
	key := flashKey(sessionID)
	pipe := c.rdb.TxPipeline()
	messages := pipe.LRange(ctx, key, 0, -1)
	pipe.Del(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to pop flashes: %w", err)
	}
	return messages.Val(), nil
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
