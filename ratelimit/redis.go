package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisConfig struct {
	Client    *redis.Client
	PerMinute int
	KeyPrefix string
}

// Redis is a fixed window counter shared by every server instance.
type Redis struct {
	client    *redis.Client
	perMinute int
	keyPrefix string
	now       func() time.Time
}

func NewRedis(cfg RedisConfig) (*Redis, error) {
	if cfg.Client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = "bioportal:ratelimit:"
	}
	return &Redis{
		client:    cfg.Client,
		perMinute: cfg.PerMinute,
		keyPrefix: prefix,
		now:       time.Now,
	}, nil
}

func (r *Redis) windowKey(key string) string {
	return fmt.Sprintf("%s%s:%d", r.keyPrefix, key, r.now().Unix()/60)
}

func (r *Redis) Allow(ctx context.Context, key string) (bool, error) {
	k := r.windowKey(key)

	var incr *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, k)
		pipe.Expire(ctx, k, 2*time.Minute)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("redis rate limit: %w", err)
	}
	return incr.Val() <= int64(r.perMinute), nil
}

func (r *Redis) Close() error { return r.client.Close() }
