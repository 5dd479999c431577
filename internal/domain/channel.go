package domain

// ChannelType 通信渠道类型
type ChannelType string

const (
	ChannelChatApp ChannelType = "CHAT_APP" // 聊天应用
	ChannelSMS     ChannelType = "SMS"      // 短信
	ChannelEmail   ChannelType = "EMAIL"    // 邮件
	ChannelVoice   ChannelType = "VOICE"    // 语音
	ChannelPush    ChannelType = "PUSH"     // 推送
	ChannelInApp   ChannelType = "IN_APP"   // 站内信
	ChannelWebhook ChannelType = "WEBHOOK"  // Webhook回调
)

func (c ChannelType) String() string {
	return string(c)
}

func (c ChannelType) IsValid() bool {
	switch c {
	case ChannelChatApp, ChannelSMS, ChannelEmail, ChannelVoice, ChannelPush, ChannelInApp, ChannelWebhook:
		return true
	default:
		return false
	}
}

// Priority 消息优先级
type Priority string

const (
	PriorityLow       Priority = "LOW"
	PriorityNormal    Priority = "NORMAL"
	PriorityHigh      Priority = "HIGH"
	PriorityEmergency Priority = "EMERGENCY" // 紧急消息不受免打扰时段限制
)

func (p Priority) String() string {
	return string(p)
}

// DeliveryStatus 单渠道投递状态
type DeliveryStatus string

const (
	DeliveryStatusQueued    DeliveryStatus = "QUEUED"    // 已进入供应商队列
	DeliveryStatusSent      DeliveryStatus = "SENT"      // 已提交供应商
	DeliveryStatusDelivered DeliveryStatus = "DELIVERED" // 已确认送达
	DeliveryStatusFailed    DeliveryStatus = "FAILED"    // 投递失败
)

func (s DeliveryStatus) String() string {
	return string(s)
}
