package loopjob

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gotomicro/ego/core/elog"
	"github.com/meoying/dlock-go"
)

// InfiniteLoop 基于分布式锁的常驻任务：抢到锁的实例独占地循环执行业务，
// 锁丢失或续约失败后退出循环重新抢锁，保证集群内同一时刻只有一个实例在跑。
type InfiniteLoop struct {
	dclient        dlock.Client
	biz            func(ctx context.Context) error
	key            string
	retryInterval  time.Duration
	defaultTimeout time.Duration
	logger         *elog.Component
}

func NewInfiniteLoop(dclient dlock.Client, biz func(ctx context.Context) error, key string) *InfiniteLoop {
	const defaultTimeout = 3 * time.Second
	return newInfiniteLoop(dclient, biz, key, time.Minute, defaultTimeout)
}

func newInfiniteLoop(
	dclient dlock.Client,
	biz func(ctx context.Context) error,
	key string,
	retryInterval time.Duration,
	defaultTimeout time.Duration,
) *InfiniteLoop {
	return &InfiniteLoop{
		dclient:        dclient,
		biz:            biz,
		key:            key,
		retryInterval:  retryInterval,
		defaultTimeout: defaultTimeout,
		logger:         elog.DefaultLogger,
	}
}

func (l *InfiniteLoop) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		lock, err := l.dclient.NewLock(ctx, l.key, l.retryInterval)
		if err != nil {
			l.logger.Error("初始化分布式锁失败，重试", elog.Any("err", err))
			time.Sleep(l.retryInterval)
			continue
		}
		lockCtx, cancel := context.WithTimeout(ctx, l.defaultTimeout)
		err = lock.Lock(lockCtx)
		cancel()
		// 没有拿到锁，不管是系统错误，还是锁被人持有，都没有关系
		// 暂停一段时间之后继续
		if err != nil {
			time.Sleep(l.retryInterval)
			continue
		}
		if l.lockLoop(ctx, lock) {
			return
		}
	}
}

// lockLoop 持有锁执行业务直到失败，返回 true 表示任务被取消应当彻底退出
func (l *InfiniteLoop) lockLoop(ctx context.Context, lock dlock.Lock) bool {
	err := l.bizLoop(ctx, lock)
	// 要么是续约失败，要么是 ctx 本身已经过期了
	if err != nil {
		l.logger.Error("执行业务失败，将执行重试", elog.FieldErr(err))
	}
	// 不管是什么原因，都要考虑释放分布式锁了
	// 要稍微摆脱 ctx 的控制，因为此时 ctx 可能被取消了
	unCtx, cancel := context.WithTimeout(context.Background(), l.defaultTimeout)
	//nolint:contextcheck // 这里必须使用 Background Context，因为原始 ctx 可能已被取消，但仍需尝试解锁操作。
	unErr := lock.Unlock(unCtx)
	cancel()
	if unErr != nil {
		l.logger.Error("释放分布式锁失败", elog.Any("err", unErr))
	}
	err = ctx.Err()
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		l.logger.Info("任务被取消，退出任务循环")
		return true
	default:
		time.Sleep(l.retryInterval)
		return false
	}
}

func (l *InfiniteLoop) bizLoop(ctx context.Context, lock dlock.Lock) error {
	const bizTimeout = 50 * time.Second
	for {
		// 可以确保业务在分布式锁过期之前结束
		bizCtx, cancel := context.WithTimeout(ctx, bizTimeout)
		err := l.biz(bizCtx)
		cancel()
		if err != nil {
			l.logger.Error("业务执行失败", elog.FieldErr(err))
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		refCtx, cancel := context.WithTimeout(ctx, l.defaultTimeout)
		err = lock.Refresh(refCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("分布式锁续约失败 %w", err)
		}
	}
}
