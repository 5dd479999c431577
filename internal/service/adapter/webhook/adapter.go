package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gotomicro/ego/core/elog"

	"communication-platform/internal/domain"
	"communication-platform/internal/errs"
	"communication-platform/internal/service/adapter"
)

const (
	settingDefaultURL = "url"       // 未提供接收者标识时的默认回调地址
	settingHealthURL  = "healthUrl" // 可选，健康检查探测地址

	defaultTimeout = 10 * time.Second
)

// Adapter 通用 Webhook 适配器：把消息以 JSON POST 到目标地址。
// 接收者标识即目标 URL，缺省回退到配置中的默认地址。
type Adapter struct {
	cfg    adapter.Config
	client *http.Client
	logger *elog.Component
}

func NewAdapter() *Adapter {
	return &Adapter{
		logger: elog.DefaultLogger,
	}
}

func (a *Adapter) Initialize(_ context.Context, cfg adapter.Config) error {
	a.cfg = cfg
	a.client = &http.Client{Timeout: defaultTimeout}
	return nil
}

type payload struct {
	MessageID  string `json:"messageId"`
	Type       string `json:"type"`
	Content    string `json:"content"`
	UserID     string `json:"userId"`
	Channel    string `json:"channel"`
	Identifier string `json:"identifier"`
	Language   string `json:"language,omitempty"`
	Priority   string `json:"priority"`
	Category   string `json:"category,omitempty"`
	Timestamp  int64  `json:"timestamp"`
}

func (a *Adapter) Send(ctx context.Context, msg domain.Message) (domain.DeliveryResult, error) {
	if a.client == nil {
		return domain.DeliveryResult{}, fmt.Errorf("%w: webhook", errs.ErrAdapterNotReady)
	}
	url := msg.Recipient.Identifier
	if url == "" {
		url = a.cfg.Settings[settingDefaultURL]
	}
	if url == "" {
		return a.failed(msg, "MISSING_URL", "没有可用的回调地址", false), nil
	}

	body, err := json.Marshal(payload{
		MessageID:  msg.ID,
		Type:       msg.Type,
		Content:    msg.Content,
		UserID:     msg.Recipient.UserID,
		Channel:    msg.Recipient.Channel.String(),
		Identifier: msg.Recipient.Identifier,
		Language:   msg.Recipient.Language,
		Priority:   msg.Metadata.Priority.String(),
		Category:   msg.Metadata.Category,
		Timestamp:  time.Now().Unix(),
	})
	if err != nil {
		return domain.DeliveryResult{}, fmt.Errorf("%w: %w", errs.ErrSendMessageFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return domain.DeliveryResult{}, fmt.Errorf("%w: %w", errs.ErrSendMessageFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return a.failed(msg, "REQUEST_FAILED", err.Error(), true), nil
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusMultipleChoices {
		// 5xx 认为可重试，4xx 认为是配置问题
		return a.failed(msg,
			fmt.Sprintf("HTTP_%d", resp.StatusCode),
			fmt.Sprintf("回调返回状态码 %d", resp.StatusCode),
			resp.StatusCode >= http.StatusInternalServerError), nil
	}

	return domain.DeliveryResult{
		Success:   true,
		MessageID: msg.ID,
		Channel:   msg.Recipient.Channel,
		AdapterID: "webhook",
		Status:    domain.DeliveryStatusSent,
		Timestamp: time.Now(),
	}, nil
}

func (a *Adapter) failed(msg domain.Message, code, errMsg string, retryable bool) domain.DeliveryResult {
	return domain.DeliveryResult{
		Success:      false,
		MessageID:    msg.ID,
		Channel:      msg.Recipient.Channel,
		AdapterID:    "webhook",
		Status:       domain.DeliveryStatusFailed,
		Timestamp:    time.Now(),
		ErrorCode:    code,
		ErrorMessage: errMsg,
		Retryable:    retryable,
	}
}

func (a *Adapter) HealthCheck(ctx context.Context) (domain.HealthResult, error) {
	start := time.Now()
	result := domain.HealthResult{
		AdapterID: "webhook",
		Timestamp: start,
	}
	if a.client == nil {
		result.Errors = []string{"适配器未初始化"}
		return result, nil
	}

	healthURL := a.cfg.Settings[settingHealthURL]
	if healthURL == "" {
		// 没有探测地址时只能报告自身可用
		result.Healthy = true
		return result, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, healthURL, nil)
	if err != nil {
		result.Errors = []string{err.Error()}
		return result, nil
	}
	resp, err := a.client.Do(req)
	result.Latency = time.Since(start)
	if err != nil {
		result.Errors = []string{err.Error()}
		return result, nil
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode >= http.StatusMultipleChoices {
		result.Errors = []string{fmt.Sprintf("探测返回状态码 %d", resp.StatusCode)}
		return result, nil
	}
	result.Healthy = true
	return result, nil
}

func (a *Adapter) Shutdown(_ context.Context) error {
	if a.client != nil {
		a.client.CloseIdleConnections()
		a.client = nil
	}
	return nil
}

func (a *Adapter) ChannelType() domain.ChannelType {
	return domain.ChannelWebhook
}

func (a *Adapter) ChannelName() string {
	return "Webhook回调"
}
