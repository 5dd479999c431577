package idempotent

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisIdempotencyService 纯SetNX方案。expiry过后同一个消息ID会被重新接受，
// 所以expiry要大于消息在队列里可能滞留的最长时间
type RedisIdempotencyService struct {
	client redis.Cmdable
	expiry time.Duration
}

func NewRedisIdempotencyService(client redis.Cmdable, expiry time.Duration) *RedisIdempotencyService {
	return &RedisIdempotencyService{
		client: client,
		expiry: expiry,
	}
}

func (c *RedisIdempotencyService) Exists(ctx context.Context, key string) (bool, error) {
	result, err := c.client.SetNX(ctx, c.getKey(key), "1", c.expiry).Result()
	if err != nil {
		return false, err
	}
	return !result, nil
}

func (c *RedisIdempotencyService) Release(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.getKey(key)).Err()
}

func (c *RedisIdempotencyService) getKey(key string) string {
	return fmt.Sprintf("communication:seen:%s", key)
}
