package dao

import (
	"context"
)

//go:generate mockgen -source=./types.go -destination=./mocks/dao.mock.go -package=daomocks -typed

// UserPreference 用户通信偏好表
type UserPreference struct {
	ID             int64  `gorm:"primaryKey;autoIncrement;comment:'偏好ID'"`
	UserID         string `gorm:"type:VARCHAR(64);NOT NULL;uniqueIndex:idx_user_id;comment:'用户ID'"`
	OrganizationID string `gorm:"type:VARCHAR(64);index:idx_organization_id;comment:'组织ID'"`
	// PrimaryChannel 首选渠道，对应 domain.ChannelType
	PrimaryChannel    string `gorm:"type:VARCHAR(32);comment:'首选渠道'"`
	PrimaryIdentifier string `gorm:"type:VARCHAR(256);comment:'首选渠道标识'"`
	// FallbackChannels 回退渠道列表，JSON 数组
	FallbackChannels string `gorm:"type:TEXT;comment:'回退渠道，JSON'"`
	Language         string `gorm:"type:VARCHAR(16);comment:'语言'"`
	// ConsentGiven 用户是否同意接收通信
	ConsentGiven bool  `gorm:"NOT NULL;default:0;comment:'是否授权'"`
	ConsentAt    int64 `gorm:"comment:'授权时间戳'"`
	OptedOut     bool  `gorm:"NOT NULL;default:0;comment:'是否退订'"`
	OptedOutAt   int64 `gorm:"comment:'退订时间戳'"`
	// OptOutReason 退订原因，可为空
	OptOutReason string `gorm:"type:VARCHAR(256);comment:'退订原因'"`
	// DNDStartHour/DNDEndHour 免打扰窗口，NULL 表示未设置
	DNDStartHour *int `gorm:"comment:'免打扰开始小时'"`
	DNDEndHour   *int `gorm:"comment:'免打扰结束小时'"`
	Ctime        int64
	Utime        int64
}

// TableName 重命名表
func (UserPreference) TableName() string {
	return "user_communication_preferences"
}

// ChannelIdentifier 渠道标识表
type ChannelIdentifier struct {
	ID     int64  `gorm:"primaryKey;autoIncrement;comment:'标识ID'"`
	UserID string `gorm:"type:VARCHAR(64);NOT NULL;uniqueIndex:idx_user_channel_identifier;comment:'用户ID'"`
	// Channel 渠道类型，对应 domain.ChannelType
	Channel    string `gorm:"type:VARCHAR(32);NOT NULL;uniqueIndex:idx_user_channel_identifier;comment:'渠道类型'"`
	Identifier string `gorm:"type:VARCHAR(256);NOT NULL;uniqueIndex:idx_user_channel_identifier;comment:'渠道标识'"`
	Verified   bool   `gorm:"NOT NULL;default:0;comment:'是否已验证'"`
	VerifiedAt int64  `gorm:"comment:'验证时间戳'"`
	Active     bool   `gorm:"NOT NULL;default:1;comment:'是否可用'"`
	Ctime      int64
	Utime      int64
}

// TableName 重命名表
func (ChannelIdentifier) TableName() string {
	return "user_channel_identifiers"
}

// PreferenceDAO 偏好表数据访问
type PreferenceDAO interface {
	// Find 查不到时返回 gorm.ErrRecordNotFound
	Find(ctx context.Context, userID string) (UserPreference, error)
	Save(ctx context.Context, pref UserPreference) (UserPreference, error)
}

// ChannelIdentifierDAO 渠道标识表数据访问
type ChannelIdentifierDAO interface {
	FindByUser(ctx context.Context, userID string) ([]ChannelIdentifier, error)
	// Find 查不到时返回 gorm.ErrRecordNotFound
	Find(ctx context.Context, userID, channel, identifier string) (ChannelIdentifier, error)
	Create(ctx context.Context, ci ChannelIdentifier) (ChannelIdentifier, error)
	Update(ctx context.Context, ci ChannelIdentifier) error
	// Delete 返回受影响行数
	Delete(ctx context.Context, userID, channel, identifier string) (int64, error)
}
