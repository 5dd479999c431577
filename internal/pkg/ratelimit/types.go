package ratelimit

import (
	"time"

	"golang.org/x/net/context"
)

//go:generate mockgen -source=./types.go -package=limitmocks -destination=./mocks/limiter.mock.go Limiter
type Limiter interface {
	// Limit 判断这个key当前是否应该被限流
	Limit(ctx context.Context, key string) (bool, error)
	// LastLimitTime 最近一次限流发生的时间。没发生过限流返回零值。
	// 健康评估用：一个渠道最近被限流过，说明它正处在高压状态
	LastLimitTime(ctx context.Context, key string) (time.Time, error)
}
