package domain

import (
	"fmt"
	"time"

	"communication-platform/internal/errs"
)

// Message 一条待投递给某个用户的消息，由外部协作方构造。
// Recipient 中的渠道类型与渠道标识由编排器在发送时填充，调用方只提供用户ID。
type Message struct {
	ID        string          `json:"id"`      // 调用方提供的唯一消息ID
	Type      string          `json:"type"`    // 消息类型
	Content   string          `json:"content"` // 消息内容
	Recipient Recipient       `json:"recipient"`
	Metadata  MessageMetadata `json:"metadata"`
}

type Recipient struct {
	UserID     string      `json:"userId"`
	Channel    ChannelType `json:"channel,omitempty"`    // 编排器发送时填充
	Identifier string      `json:"identifier,omitempty"` // 编排器发送时填充
	Language   string      `json:"language,omitempty"`   // 编排器发送时填充
}

type MessageMetadata struct {
	Priority Priority `json:"priority"`
	Category string   `json:"category"`
}

func (m Message) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("%w: ID = %q", errs.ErrInvalidParameter, m.ID)
	}
	if m.Recipient.UserID == "" {
		return fmt.Errorf("%w: Recipient.UserID = %q", errs.ErrInvalidParameter, m.Recipient.UserID)
	}
	return nil
}

func (m Message) IsEmergency() bool {
	return m.Metadata.Priority == PriorityEmergency
}

// WithRoute 克隆消息并填充路由信息
func (m Message) WithRoute(channel ChannelType, identifier, language string) Message {
	m.Recipient.Channel = channel
	m.Recipient.Identifier = identifier
	m.Recipient.Language = language
	return m
}

// SendOptions 单次发送的调用方选项
type SendOptions struct {
	DisableFallback bool // 只尝试主渠道
	OverrideDND     bool // 无视免打扰时段
}

// DeliveryResult 单个适配器对一条消息的一次投递结果
type DeliveryResult struct {
	Success      bool           `json:"success"`
	MessageID    string         `json:"messageId"`
	Channel      ChannelType    `json:"channel"`
	AdapterID    string         `json:"adapterId"`
	Status       DeliveryStatus `json:"status"`
	Timestamp    time.Time      `json:"timestamp"`
	ErrorCode    string         `json:"errorCode,omitempty"`
	ErrorMessage string         `json:"errorMessage,omitempty"`
	Retryable    bool           `json:"retryable,omitempty"`
}

// FailureReason 编排器终态失败原因
type FailureReason string

const (
	FailureReasonNoRoutingPreferences FailureReason = "NO_ROUTING_PREFERENCES"
	FailureReasonOptedOutOrNoConsent  FailureReason = "OPTED_OUT_OR_NO_CONSENT"
	FailureReasonInDNDWindow          FailureReason = "IN_DND_WINDOW"
	FailureReasonAllChannelsFailed    FailureReason = "ALL_CHANNELS_FAILED"
)

// SendResult 一次编排发送的整体结果。
// ChannelsAttempted 中每个元素对应一次真实的适配器调用，按尝试顺序排列。
type SendResult struct {
	MessageID         string          `json:"messageId"`
	UserID            string          `json:"userId"`
	Success           bool            `json:"success"`
	ChannelUsed       ChannelType     `json:"channelUsed,omitempty"`
	AdapterID         string          `json:"adapterId,omitempty"`
	FallbackAttempts  int             `json:"fallbackAttempts"`
	ChannelsAttempted []ChannelType   `json:"channelsAttempted"`
	FailureReason     FailureReason   `json:"failureReason,omitempty"`
	FailureMessage    string          `json:"failureMessage,omitempty"`
	Delivery          *DeliveryResult `json:"delivery,omitempty"`
	Timestamp         time.Time       `json:"timestamp"`
}

// HealthResult 适配器健康检查结果
type HealthResult struct {
	Healthy   bool          `json:"healthy"`
	AdapterID string        `json:"adapterId"`
	Timestamp time.Time     `json:"timestamp"`
	Latency   time.Duration `json:"latency"`
	Errors    []string      `json:"errors,omitempty"` // 健康时为空
}

// SendStatistics 投递日志的聚合统计
type SendStatistics struct {
	Total                 int64
	Succeeded             int64
	Failed                int64
	TotalFallbackAttempts int64
	AvgFallbackAttempts   float64
	ChannelUsage          map[ChannelType]int64
}
