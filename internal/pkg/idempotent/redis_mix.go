package idempotent

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const filterName = "communication:seen_filter"

// RedisMix 布隆过滤器打头阵、SetNX兜底的组合方案。
// 绝大多数消息是首次出现，布隆过滤器直接判否，省掉一次SetNX往返；
// 过滤器判"可能见过"时才靠存储值二次确认，消除假阳性
type RedisMix struct {
	client redis.Cmdable
	expiry time.Duration
}

func NewRedisMix(client redis.Cmdable, expiry time.Duration) *RedisMix {
	return &RedisMix{
		client: client,
		expiry: expiry,
	}
}

func (r *RedisMix) Exists(ctx context.Context, key string) (bool, error) {
	added, err := r.client.BFAdd(ctx, filterName, key).Result()
	if err != nil {
		return false, err
	}
	// 不管过滤器怎么判，存储值都要落一份，留给后续的二次确认和Release用
	setOK, err := r.client.SetNX(ctx, r.getKey(key), "1", r.expiry).Result()
	if err != nil {
		return false, err
	}
	if added {
		// 过滤器首次见到，必定是新消息
		return false, nil
	}
	return !setOK, nil
}

// Release 只删存储值。布隆过滤器删不掉，但这不影响正确性：
// 重投的消息在过滤器里命中后会走二次确认，届时SetNX能重新成功
func (r *RedisMix) Release(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.getKey(key)).Err()
}

func (r *RedisMix) getKey(key string) string {
	return fmt.Sprintf("communication:seen:mix:%s", key)
}
