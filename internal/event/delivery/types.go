package delivery

import (
	"context"

	"communication-platform/internal/domain"
)

//go:generate mockgen -source=./types.go -package=evtmocks -destination=../mocks/delivery.mock.go -typed ResultEventProducer

// ResultEventProducer 投递结果事件生产者，下游审计/报表消费
type ResultEventProducer interface {
	Produce(ctx context.Context, evt ResultEvent) error
}

const (
	eventName = "communication_delivery_events"
)

// ResultEvent 一次编排发送的终态事件
type ResultEvent struct {
	MessageID         string               `json:"messageId"`
	UserID            string               `json:"userId"`
	Success           bool                 `json:"success"`
	ChannelUsed       string               `json:"channelUsed,omitempty"`       // 成功时实际使用的渠道
	AdapterID         string               `json:"adapterId,omitempty"`         // 成功时实际使用的适配器
	FallbackAttempts  int                  `json:"fallbackAttempts"`            // 消耗的回退次数
	ChannelsAttempted []string             `json:"channelsAttempted,omitempty"` // 按尝试顺序
	FailureReason     domain.FailureReason `json:"failureReason,omitempty"`
	Timestamp         int64                `json:"timestamp"` // 毫秒时间戳
}

// FromSendResult 从发送结果构造事件
func FromSendResult(result domain.SendResult) ResultEvent {
	attempted := make([]string, 0, len(result.ChannelsAttempted))
	for _, ch := range result.ChannelsAttempted {
		attempted = append(attempted, ch.String())
	}
	return ResultEvent{
		MessageID:         result.MessageID,
		UserID:            result.UserID,
		Success:           result.Success,
		ChannelUsed:       result.ChannelUsed.String(),
		AdapterID:         result.AdapterID,
		FallbackAttempts:  result.FallbackAttempts,
		ChannelsAttempted: attempted,
		FailureReason:     result.FailureReason,
		Timestamp:         result.Timestamp.UnixMilli(),
	}
}
