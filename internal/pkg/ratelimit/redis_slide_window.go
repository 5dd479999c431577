package ratelimit

import (
	_ "embed"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/net/context"
)

var (
	//go:embed lua/slide_window.lua
	slidingWindowScript string

	//go:embed lua/last_limit_time.lua
	lastLimitTimeScript string

	_ Limiter = (*RedisSlidingWindowLimiter)(nil)
)

// RedisSlidingWindowLimiter 滑动窗口限流。计数和判定在lua脚本里一次完成，
// 多实例部署时共享同一个窗口
type RedisSlidingWindowLimiter struct {
	cmd       redis.Cmdable
	interval  time.Duration
	rate      int
	keyPrefix string
}

// NewRedisSlidingWindowLimiter interval窗口内最多放行rate次
func NewRedisSlidingWindowLimiter(cmd redis.Cmdable, interval time.Duration, rate int) *RedisSlidingWindowLimiter {
	return &RedisSlidingWindowLimiter{
		cmd:       cmd,
		interval:  interval,
		rate:      rate,
		keyPrefix: "communication:ratelimit:",
	}
}

func (r *RedisSlidingWindowLimiter) Limit(ctx context.Context, key string) (bool, error) {
	return r.cmd.Eval(ctx, slidingWindowScript,
		[]string{r.getCountKey(key), r.getLimitedEventKey(key)},
		r.interval.Milliseconds(),
		r.rate,
		time.Now().UnixMilli(),
	).Bool()
}

func (r *RedisSlidingWindowLimiter) LastLimitTime(ctx context.Context, key string) (time.Time, error) {
	result, err := r.cmd.Eval(ctx, lastLimitTimeScript,
		[]string{r.getLimitedEventKey(key)}).Int64()
	if err != nil {
		return time.Time{}, err
	}
	if result == 0 {
		return time.Time{}, nil
	}
	return time.UnixMilli(result), nil
}

// getCountKey 窗口内请求计数的键
func (r *RedisSlidingWindowLimiter) getCountKey(key string) string {
	return fmt.Sprintf("%scount:%s", r.keyPrefix, key)
}

// getLimitedEventKey 限流事件记录的键
func (r *RedisSlidingWindowLimiter) getLimitedEventKey(key string) string {
	return fmt.Sprintf("%slimitedEvent:%s", r.keyPrefix, key)
}
