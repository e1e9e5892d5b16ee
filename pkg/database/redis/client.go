package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Client wraps go-redis behind the commands the service uses.
type Client struct {
	rdb *redis.Client
	cfg *Config
}

// NewClient creates a Redis client.
func NewClient(cfg *Config) (*Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:            fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:        cfg.Password,
		DB:              cfg.DB,
		MaxIdleConns:    cfg.Pool.MaxIdleConns,
		MaxActiveConns:  cfg.Pool.MaxActiveConns,
		ConnMaxLifetime: cfg.Pool.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Pool.ConnMaxIdleTime,
		DialTimeout:     cfg.Pool.DialTimeout,
		ReadTimeout:     cfg.Pool.ReadTimeout,
		WriteTimeout:    cfg.Pool.WriteTimeout,
	})

	return &Client{rdb: rdb, cfg: cfg}, nil
}

// Ping checks connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}
	return nil
}

// Close closes the client.
func (c *Client) Close() error {
	if err := c.rdb.Close(); err != nil {
		return fmt.Errorf("failed to close redis client: %w", err)
	}
	return nil
}
