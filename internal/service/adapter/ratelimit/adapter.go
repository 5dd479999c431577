package ratelimit

import (
	"context"
	"fmt"
	"time"

	"communication-platform/internal/domain"
	"communication-platform/internal/pkg/ratelimit"
	"communication-platform/internal/service/adapter"
)

var _ adapter.ChannelAdapter = (*Adapter)(nil)

// 这个窗口内发生过限流的渠道在健康检查里报不健康
const limitLookback = time.Minute

// Adapter 为渠道适配器的发送添加限流的装饰器。
// 限流以 组织ID:渠道类型 为维度，被限流的发送返回可重试的失败结果，
// 让编排器照常走降级链，而不是直接报错。
type Adapter struct {
	adapter adapter.ChannelAdapter
	limiter ratelimit.Limiter
	key     string
}

func (a *Adapter) Initialize(ctx context.Context, cfg adapter.Config) error {
	a.key = fmt.Sprintf("adapter:%s:%s", cfg.OrganizationID, a.adapter.ChannelType())
	return a.adapter.Initialize(ctx, cfg)
}

func (a *Adapter) Send(ctx context.Context, msg domain.Message) (domain.DeliveryResult, error) {
	limited, err := a.limiter.Limit(ctx, a.key)
	if err != nil {
		// 限流器故障时放行，发送比限流更重要
		return a.adapter.Send(ctx, msg)
	}
	if limited {
		return domain.DeliveryResult{
			Success:      false,
			MessageID:    msg.ID,
			Channel:      a.adapter.ChannelType(),
			Status:       domain.DeliveryStatusFailed,
			Timestamp:    time.Now(),
			ErrorCode:    "RATE_LIMITED",
			ErrorMessage: fmt.Sprintf("触发限流: %s", a.key),
			Retryable:    true,
		}, nil
	}
	return a.adapter.Send(ctx, msg)
}

func (a *Adapter) HealthCheck(ctx context.Context) (domain.HealthResult, error) {
	res, err := a.adapter.HealthCheck(ctx)
	if err != nil {
		return res, err
	}
	last, lerr := a.limiter.LastLimitTime(ctx, a.key)
	if lerr != nil {
		// 查询失败不影响底层健康结论
		return res, nil
	}
	if !last.IsZero() && time.Since(last) < limitLookback {
		res.Healthy = false
		res.Errors = append(res.Errors, fmt.Sprintf("最近发生过限流: %s", last.Format(time.RFC3339)))
	}
	return res, nil
}

func (a *Adapter) Shutdown(ctx context.Context) error {
	return a.adapter.Shutdown(ctx)
}

func (a *Adapter) ChannelType() domain.ChannelType {
	return a.adapter.ChannelType()
}

func (a *Adapter) ChannelName() string {
	return a.adapter.ChannelName()
}

// NewAdapter 创建一个带限流的适配器装饰器
func NewAdapter(a adapter.ChannelAdapter, limiter ratelimit.Limiter) *Adapter {
	return &Adapter{
		adapter: a,
		limiter: limiter,
	}
}
