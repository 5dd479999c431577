package orchestrator

import (
	"context"

	"communication-platform/internal/domain"
)

//go:generate mockgen -source=./types.go -destination=./mocks/orchestrator.mock.go -package=orchestratormocks -typed

// Orchestrator 把"一条消息发给一个用户"变成确定性的、可审计的投递尝试序列。
// 编排层的终态失败（无偏好、退订、免打扰、全渠道失败）不作为error返回，
// 而是体现在 SendResult 中，调用方检查 Success 与 FailureReason 即可。
type Orchestrator interface {
	// SendMessage 发送一条消息。error 仅表示参数非法或基础设施故障。
	SendMessage(ctx context.Context, msg domain.Message, opts domain.SendOptions) (domain.SendResult, error)
	// BroadcastMessage 按模板向多个用户逐个发送，每个用户一个结果，
	// 单个用户的失败不会中断其余用户。
	BroadcastMessage(ctx context.Context, template domain.Message, userIDs []string) ([]domain.SendResult, error)
	// GetDeliveryHistory 返回用户最近的投递记录，最新在前
	GetDeliveryHistory(ctx context.Context, userID string, limit int) ([]domain.SendResult, error)
	// GetStatistics 聚合全部用户的投递日志
	GetStatistics(ctx context.Context) (domain.SendStatistics, error)
}
