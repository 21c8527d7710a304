package db

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/vietanh2810/gift-api/internal/config"
)

// OpenRedis returns nil when no URL is configured.
func OpenRedis(ctx context.Context, conf *config.RedisConfig) (*redis.Client, error) {
	if conf == nil || conf.URL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(conf.URL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL -> %w", err)
	}
	if conf.PoolSize > 0 {
		opts.PoolSize = conf.PoolSize
	}
	if conf.DialTimeout > 0 {
		opts.DialTimeout = conf.DialTimeout
	}

	client := redis.NewClient(opts)
	if err = client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("client.Ping -> %w", err)
	}

	return client, nil
}
