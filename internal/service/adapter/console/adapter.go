package console

import (
	"context"
	"fmt"
	"time"

	"github.com/gotomicro/ego/core/elog"

	"communication-platform/internal/domain"
	"communication-platform/internal/errs"
	"communication-platform/internal/service/adapter"
)

// Adapter 输出到日志的适配器，服务站内信渠道，也用于本地联调
type Adapter struct {
	cfg    adapter.Config
	ready  bool
	logger *elog.Component
}

func NewAdapter() *Adapter {
	return &Adapter{
		logger: elog.DefaultLogger,
	}
}

func (a *Adapter) Initialize(_ context.Context, cfg adapter.Config) error {
	a.cfg = cfg
	a.ready = true
	return nil
}

func (a *Adapter) Send(_ context.Context, msg domain.Message) (domain.DeliveryResult, error) {
	if !a.ready {
		return domain.DeliveryResult{}, fmt.Errorf("%w: console", errs.ErrAdapterNotReady)
	}
	a.logger.Info("投递消息",
		elog.String("messageId", msg.ID),
		elog.String("userId", msg.Recipient.UserID),
		elog.String("channel", msg.Recipient.Channel.String()),
		elog.String("identifier", domain.MaskIdentifier(msg.Recipient.Identifier)),
		elog.String("content", msg.Content))
	return domain.DeliveryResult{
		Success:   true,
		MessageID: msg.ID,
		Channel:   msg.Recipient.Channel,
		AdapterID: "console",
		Status:    domain.DeliveryStatusDelivered,
		Timestamp: time.Now(),
	}, nil
}

func (a *Adapter) HealthCheck(_ context.Context) (domain.HealthResult, error) {
	return domain.HealthResult{
		Healthy:   a.ready,
		AdapterID: "console",
		Timestamp: time.Now(),
	}, nil
}

func (a *Adapter) Shutdown(_ context.Context) error {
	a.ready = false
	return nil
}

func (a *Adapter) ChannelType() domain.ChannelType {
	return domain.ChannelInApp
}

func (a *Adapter) ChannelName() string {
	return "站内信"
}
