// Package cache keeps read-mostly data in Redis.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Options struct {
	URL          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	DialTimeout  time.Duration
}

// Connect parses a redis:// URL, applies the timeouts and pings the server.
func Connect(ctx context.Context, opts Options) (*redis.Client, error) {
	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	redisOpts.ReadTimeout = orDefault(opts.ReadTimeout, 3*time.Second)
	redisOpts.WriteTimeout = orDefault(opts.WriteTimeout, 3*time.Second)
	redisOpts.DialTimeout = orDefault(opts.DialTimeout, 5*time.Second)

	client := redis.NewClient(redisOpts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}
