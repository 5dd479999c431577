package request

import (
	"communication-platform/internal/domain"
)

const (
	eventName = "communication_send_requests"
)

// SendRequestEvent 异步发送请求事件，由业务方投递到Kafka，消费后交给编排器发送。
type SendRequestEvent struct {
	MessageID       string `json:"messageId"`
	UserID          string `json:"userId"`
	Type            string `json:"type"`
	Content         string `json:"content"`
	Priority        string `json:"priority"`
	Category        string `json:"category"`
	DisableFallback bool   `json:"disableFallback"`
	OverrideDND     bool   `json:"overrideDnd"`
}

func (e SendRequestEvent) toDomain() (domain.Message, domain.SendOptions) {
	msg := domain.Message{
		ID:      e.MessageID,
		Type:    e.Type,
		Content: e.Content,
		Recipient: domain.Recipient{
			UserID: e.UserID,
		},
		Metadata: domain.MessageMetadata{
			Priority: domain.Priority(e.Priority),
			Category: e.Category,
		},
	}
	opts := domain.SendOptions{
		DisableFallback: e.DisableFallback,
		OverrideDND:     e.OverrideDND,
	}
	return msg, opts
}
