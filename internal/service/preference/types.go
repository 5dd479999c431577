package preference

import (
	"context"

	"communication-platform/internal/domain"
)

//go:generate mockgen -source=./types.go -destination=./mocks/preference.mock.go -package=preferencemocks -typed

// Service 用户可达性的唯一事实来源：怎么联系这个用户、以及能不能联系。
type Service interface {
	// GetUserPreference 获取用户原始偏好，不存在返回 errs.ErrPreferenceNotFound
	GetUserPreference(ctx context.Context, userID string) (domain.UserPreference, error)
	// SetUserPreference 部分更新偏好：patch 中 nil 字段保持原值。
	// 本次调用把 ConsentGiven / OptedOut 置为 true 时才盖对应时间戳，仅仅携带原值不盖。
	SetUserPreference(ctx context.Context, userID string, patch domain.PreferencePatch) (domain.UserPreference, error)

	// RecordConsent 记录授权事件
	RecordConsent(ctx context.Context, userID string, given bool) (domain.UserPreference, error)
	// OptOutUser 用户退订，reason 可为空
	OptOutUser(ctx context.Context, userID string, reason string) (domain.UserPreference, error)
	// OptInUser 用户重新订阅
	OptInUser(ctx context.Context, userID string) (domain.UserPreference, error)

	// AddChannelIdentifier 新增渠道标识，（渠道类型，标识串）重复时直接返回已有记录
	AddChannelIdentifier(ctx context.Context, userID string, channel domain.ChannelType, identifier string) (domain.ChannelIdentifier, error)
	// VerifyChannelIdentifier 标记标识为已验证并盖时间戳
	VerifyChannelIdentifier(ctx context.Context, userID string, channel domain.ChannelType, identifier string) (domain.ChannelIdentifier, error)
	// SetChannelIdentifierActive 启用或停用标识。停用的标识保留记录，
	// 但解析路由快照时对应回退渠道不再可用
	SetChannelIdentifierActive(ctx context.Context, userID string, channel domain.ChannelType, identifier string, active bool) (domain.ChannelIdentifier, error)
	// RemoveChannelIdentifier 删除标识，不存在返回 errs.ErrIdentifierNotFound
	RemoveChannelIdentifier(ctx context.Context, userID string, channel domain.ChannelType, identifier string) error
	GetUserChannelIdentifiers(ctx context.Context, userID string) ([]domain.ChannelIdentifier, error)

	// GetUserRoutingPreferences 把原始偏好和标识列表解析成可直接路由的快照。
	// 偏好不存在返回 errs.ErrPreferenceNotFound。
	GetUserRoutingPreferences(ctx context.Context, userID string) (domain.RoutingPreferences, error)
}
