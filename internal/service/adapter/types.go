package adapter

import (
	"context"

	"communication-platform/internal/domain"
)

// Config 适配器初始化配置。OrganizationID 必填，工厂以它为实例隔离维度。
type Config struct {
	OrganizationID string
	Settings       map[string]string
}

//go:generate mockgen -source=./types.go -destination=./mocks/adapter.mock.go -package=adaptermocks -typed ChannelAdapter

// ChannelAdapter 渠道适配器统一契约，每种渠道技术实现一次。
// Send 的失败通过返回的 DeliveryResult 或 error 表达，编排器对两者同等处理。
type ChannelAdapter interface {
	// Initialize 用给定配置初始化适配器
	Initialize(ctx context.Context, cfg Config) error
	// Send 发送一条消息
	Send(ctx context.Context, msg domain.Message) (domain.DeliveryResult, error)
	// HealthCheck 报告当前健康状态
	HealthCheck(ctx context.Context) (domain.HealthResult, error)
	// Shutdown 释放持有的资源，失败由调用方记录日志而非传播
	Shutdown(ctx context.Context) error
	// ChannelType 该适配器服务的渠道类型
	ChannelType() domain.ChannelType
	// ChannelName 人类可读的渠道名，用于注册表记录
	ChannelName() string
}

// Constructor 构造一个全新的未初始化适配器实例
type Constructor func() ChannelAdapter
