package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"communication-platform/internal/domain"
	"communication-platform/internal/service/adapter"
)

var _ adapter.ChannelAdapter = (*Adapter)(nil)

// Adapter 为渠道适配器的发送添加链路追踪的装饰器
type Adapter struct {
	adapter adapter.ChannelAdapter
	tracer  trace.Tracer
	name    string
}

func (a *Adapter) Initialize(ctx context.Context, cfg adapter.Config) error {
	return a.adapter.Initialize(ctx, cfg)
}

func (a *Adapter) Send(ctx context.Context, msg domain.Message) (domain.DeliveryResult, error) {
	ctx, span := a.tracer.Start(ctx, "ChannelAdapter.Send",
		trace.WithAttributes(
			attribute.String("adapter.name", a.name),
			attribute.String("message.id", msg.ID),
			attribute.String("message.userId", msg.Recipient.UserID),
			attribute.String("message.channel", msg.Recipient.Channel.String()),
			attribute.String("message.priority", msg.Metadata.Priority.String()),
		))
	defer span.End()

	result, err := a.adapter.Send(ctx, msg)

	switch {
	case err != nil:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	case !result.Success:
		span.SetStatus(codes.Error, result.ErrorMessage)
		span.SetAttributes(
			attribute.String("delivery.errorCode", result.ErrorCode),
			attribute.Bool("delivery.retryable", result.Retryable),
		)
	default:
		span.SetAttributes(
			attribute.String("delivery.status", result.Status.String()),
		)
	}

	return result, err
}

func (a *Adapter) HealthCheck(ctx context.Context) (domain.HealthResult, error) {
	return a.adapter.HealthCheck(ctx)
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

// NewAdapter 创建一个带有链路追踪的适配器装饰器
// name 应该传入类似于 aliyun-sms, webhook 这种适配器ID
func NewAdapter(a adapter.ChannelAdapter, name string) *Adapter {
	return &Adapter{
		adapter: a,
		name:    name,
		tracer:  otel.Tracer("communication-platform/adapter"),
	}
}
