package repository

import (
	"context"

	"communication-platform/internal/domain"
)

//go:generate mockgen -source=./types.go -destination=./mocks/repository.mock.go -package=repomocks -typed

// PreferenceRepository 用户通信偏好存储
type PreferenceRepository interface {
	// Find 查找用户偏好，不存在返回 errs.ErrPreferenceNotFound
	Find(ctx context.Context, userID string) (domain.UserPreference, error)
	// Save 整体写入偏好。已存在时保留创建时间并推进更新时间
	Save(ctx context.Context, pref domain.UserPreference) (domain.UserPreference, error)
}

// ChannelIdentifierRepository 渠道标识存储
type ChannelIdentifierRepository interface {
	FindByUser(ctx context.Context, userID string) ([]domain.ChannelIdentifier, error)
	// Find 按（用户，渠道类型，标识串）精确查找，不存在返回 errs.ErrIdentifierNotFound
	Find(ctx context.Context, userID string, channel domain.ChannelType, identifier string) (domain.ChannelIdentifier, error)
	Create(ctx context.Context, ci domain.ChannelIdentifier) (domain.ChannelIdentifier, error)
	Update(ctx context.Context, ci domain.ChannelIdentifier) error
	// Delete 删除标识，不存在返回 errs.ErrIdentifierNotFound
	Delete(ctx context.Context, userID string, channel domain.ChannelType, identifier string) error
}

// DeliveryLogRepository 每用户有界投递日志，最新在前，超出容量淘汰最旧记录
type DeliveryLogRepository interface {
	Append(ctx context.Context, userID string, result domain.SendResult) error
	List(ctx context.Context, userID string, limit int) ([]domain.SendResult, error)
	// All 返回所有用户的日志，统计聚合用
	All(ctx context.Context) ([]domain.SendResult, error)
	// Trim 对全部用户重新施加容量上限，维护任务用
	Trim(ctx context.Context) error
}
