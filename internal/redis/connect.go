package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const DefaultMaxRetries = 5

// ConnectOptions configures ConnectRedis. Zero values fall back to defaults.
type ConnectOptions struct {
	Addr       string
	Password   string
	DB         int
	MaxRetries int
	// BaseBackoff is the wait before the first retry, doubled for each
	// retry after that.
	BaseBackoff time.Duration
}

func (o ConnectOptions) withDefaults() ConnectOptions {
	if o.Addr == "" {
		o.Addr = "localhost:6379"
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = DefaultMaxRetries
	}
	if o.BaseBackoff <= 0 {
		o.BaseBackoff = time.Second
	}
	return o
}

// Backoff returns the wait before the given attempt (zero-based).
func (o ConnectOptions) Backoff(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	return o.withDefaults().BaseBackoff << uint(attempt-1)
}

// ConnectRedis pings the server until it answers or MaxRetries is exhausted.
func ConnectRedis(ctx context.Context, opts ConnectOptions) (*redis.Client, error) {
	opts = opts.withDefaults()

	client := redis.NewClient(&redis.Options{
		Addr:            opts.Addr,
		Password:        opts.Password,
		DB:              opts.DB,
		MaxRetries:      3,
		MinRetryBackoff: 8 * time.Millisecond,
		MaxRetryBackoff: 512 * time.Millisecond,
		DialTimeout:     5 * time.Second,
		ReadTimeout:     3 * time.Second,
		WriteTimeout:    3 * time.Second,
	})

	var err error
	for i := range opts.MaxRetries {
		if backoff := opts.Backoff(i); backoff > 0 {
			log.Info().Dur("backoff", backoff).Msg("Waiting before Redis retry")
			select {
			case <-ctx.Done():
				_ = client.Close()
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		log.Info().
			Str("addr", opts.Addr).
			Int("attempt", i+1).
			Int("max_retries", opts.MaxRetries).
			Msg("Connecting to Redis")

		err = client.Ping(ctx).Err()
		if err == nil {
			log.Info().Int("attempts_needed", i+1).Msg("Redis connected")
			return client, nil
		}

		log.Warn().Err(err).Int("attempt", i+1).Msg("Redis ping failed")
	}

	_ = client.Close()
	return nil, fmt.Errorf("failed to connect to Redis after %d attempts: %w", opts.MaxRetries, err)
}
