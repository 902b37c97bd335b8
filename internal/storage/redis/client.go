package storage

import (
	"context"
	"fmt"

	"citiesmanager/internal/config"

	"github.com/redis/go-redis/v9"
)

// Client holds refresh sessions when refresh_token.store is redis.
type Client struct {
	*redis.Client
}

func NewClient(cfg config.RedisConf) *Client {
	return &Client{
		Client: redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}),
	}
}

// Connect builds a client and pings it once.
func Connect(ctx context.Context, cfg config.RedisConf) (*Client, error) {
	const op = "storage.redis.Connect"

	c := NewClient(cfg)
	if err := c.HealthCheck(ctx); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return c, nil
}

// Wrap adapts an already configured client, e.g. the one returned by redismock.
func Wrap(c *redis.Client) *Client {
	return &Client{Client: c}
}

func (c *Client) HealthCheck(ctx context.Context) error {
	return c.Ping(ctx).Err()
}

func (c *Client) Close() error {
	return c.Client.Close()
}
