package idempotent

import "context"

// IdempotencyService 消息去重。Exists 带副作用：首次询问某个key会将其标记为已见。
type IdempotencyService interface {
	// Exists key是否已经存在，不存在则标记为存在
	Exists(ctx context.Context, key string) (bool, error)
	// Release 撤销标记。消息标记之后处理失败时调用，让重投的消息能再次通过检查
	Release(ctx context.Context, key string) error
}

var (
	_ IdempotencyService = (*RedisIdempotencyService)(nil)
	_ IdempotencyService = (*RedisMix)(nil)
)
