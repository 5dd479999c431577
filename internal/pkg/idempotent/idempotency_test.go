package idempotent

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 需要本地Redis，RedisMix还需要RedisBloom模块
func newTestClient(t *testing.T) redis.Cmdable {
	t.Helper()
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	t.Cleanup(func() { _ = client.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skip("Redis不可用，跳过")
	}
	return client
}

// runServiceTests 两个实现共用的测试用例
func runServiceTests(t *testing.T, svc IdempotencyService, prefix string) {
	ctx := t.Context()

	t.Run("首次不存在再次存在", func(t *testing.T) {
		key := prefix + "-msg-1"
		seen, err := svc.Exists(ctx, key)
		require.NoError(t, err)
		assert.False(t, seen)

		seen, err = svc.Exists(ctx, key)
		require.NoError(t, err)
		assert.True(t, seen)
	})

	t.Run("不同key互不影响", func(t *testing.T) {
		_, err := svc.Exists(ctx, prefix+"-msg-2")
		require.NoError(t, err)

		seen, err := svc.Exists(ctx, prefix+"-msg-3")
		require.NoError(t, err)
		assert.False(t, seen)
	})

	t.Run("释放后可以重新标记", func(t *testing.T) {
		key := prefix + "-msg-4"
		_, err := svc.Exists(ctx, key)
		require.NoError(t, err)

		require.NoError(t, svc.Release(ctx, key))

		seen, err := svc.Exists(ctx, key)
		require.NoError(t, err)
		assert.False(t, seen, "释放之后重投的消息应当重新通过检查")
	})
}

func TestRedisIdempotencyService(t *testing.T) {
	t.Parallel()
	client := newTestClient(t)
	svc := NewRedisIdempotencyService(client, 10*time.Minute)
	runServiceTests(t, svc, "plain")
}

func TestRedisMix(t *testing.T) {
	t.Parallel()
	client := newTestClient(t)
	ctx := t.Context()
	if err := client.BFAdd(ctx, filterName, "bf-availability-check").Err(); err != nil {
		t.Skip("RedisBloom模块不可用，跳过")
	}
	svc := NewRedisMix(client, 10*time.Minute)
	runServiceTests(t, svc, "mix")

	t.Run("过滤器假阳性由存储值兜底", func(t *testing.T) {
		// 只进过滤器、没有存储值，等价于一次假阳性命中
		key := "mix-msg-ghost"
		require.NoError(t, client.BFAdd(ctx, filterName, key).Err())

		seen, err := svc.Exists(ctx, key)
		require.NoError(t, err)
		assert.False(t, seen)
	})
}
