package sms

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gotomicro/ego/core/elog"

	"communication-platform/internal/domain"
	"communication-platform/internal/errs"
	"communication-platform/internal/service/adapter"
	"communication-platform/internal/service/adapter/sms/client"
)

const (
	settingProvider        = "provider"
	settingRegionID        = "regionId"
	settingAccessKeyID     = "accessKeyId"
	settingAccessKeySecret = "accessKeySecret"
	settingSignName        = "signName"
	settingTemplateID      = "templateId"
	settingSDKAppID        = "sdkAppId"

	providerAliyun  = "aliyun"
	providerTencent = "tencent"
)

// Adapter 短信适配器，具体发送能力由供应商客户端提供
type Adapter struct {
	cfg    adapter.Config
	client client.Client
	logger *elog.Component
}

func NewAdapter() *Adapter {
	return &Adapter{
		logger: elog.DefaultLogger,
	}
}

// NewAdapterWithClient 直接注入客户端，测试或自定义供应商时使用
func NewAdapterWithClient(c client.Client) *Adapter {
	return &Adapter{
		client: c,
		logger: elog.DefaultLogger,
	}
}

func (a *Adapter) Initialize(_ context.Context, cfg adapter.Config) error {
	a.cfg = cfg
	if a.client != nil {
		return nil
	}

	var (
		c   client.Client
		err error
	)
	switch cfg.Settings[settingProvider] {
	case providerAliyun:
		c, err = client.NewAliyunSMS(
			cfg.Settings[settingRegionID],
			cfg.Settings[settingAccessKeyID],
			cfg.Settings[settingAccessKeySecret])
	case providerTencent:
		c, err = client.NewTencentSMS(
			cfg.Settings[settingRegionID],
			cfg.Settings[settingAccessKeyID],
			cfg.Settings[settingAccessKeySecret],
			cfg.Settings[settingSDKAppID])
	default:
		return fmt.Errorf("%w: 未知短信供应商 %q", errs.ErrInvalidParameter, cfg.Settings[settingProvider])
	}
	if err != nil {
		return err
	}
	a.client = c
	return nil
}

func (a *Adapter) Send(_ context.Context, msg domain.Message) (domain.DeliveryResult, error) {
	if a.client == nil {
		return domain.DeliveryResult{}, fmt.Errorf("%w: sms", errs.ErrAdapterNotReady)
	}
	if msg.Recipient.Identifier == "" {
		return domain.DeliveryResult{}, fmt.Errorf("%w: 手机号为空", errs.ErrInvalidParameter)
	}

	resp, err := a.client.Send(client.SendReq{
		PhoneNumbers:  []string{msg.Recipient.Identifier},
		SignName:      a.cfg.Settings[settingSignName],
		TemplateID:    a.cfg.Settings[settingTemplateID],
		TemplateParam: map[string]string{"content": msg.Content},
	})
	if err != nil {
		return domain.DeliveryResult{}, fmt.Errorf("%w: %w", errs.ErrSendMessageFailed, err)
	}

	for _, status := range resp.PhoneNumbers {
		if !strings.EqualFold(status.Code, client.OK) {
			return domain.DeliveryResult{
				Success:      false,
				MessageID:    msg.ID,
				Channel:      msg.Recipient.Channel,
				AdapterID:    "sms",
				Status:       domain.DeliveryStatusFailed,
				Timestamp:    time.Now(),
				ErrorCode:    status.Code,
				ErrorMessage: status.Message,
				Retryable:    true,
			}, nil
		}
	}

	return domain.DeliveryResult{
		Success:   true,
		MessageID: msg.ID,
		Channel:   msg.Recipient.Channel,
		AdapterID: "sms",
		Status:    domain.DeliveryStatusSent,
		Timestamp: time.Now(),
	}, nil
}

func (a *Adapter) HealthCheck(_ context.Context) (domain.HealthResult, error) {
	result := domain.HealthResult{
		AdapterID: "sms",
		Timestamp: time.Now(),
	}
	if a.client == nil {
		result.Errors = []string{"适配器未初始化"}
		return result, nil
	}
	// 供应商没有探活接口，客户端就绪即视为健康
	result.Healthy = true
	return result, nil
}

func (a *Adapter) Shutdown(_ context.Context) error {
	a.client = nil
	return nil
}

func (a *Adapter) ChannelType() domain.ChannelType {
	return domain.ChannelSMS
}

func (a *Adapter) ChannelName() string {
	return "短信"
}
