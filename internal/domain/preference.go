package domain

import (
	"fmt"
	"strings"
	"time"

	"communication-platform/internal/errs"
)

// UserPreference 用户通信偏好领域模型。
// OptedOut 与 ConsentGiven 是两个独立的标志：用户可能有历史同意记录但当前已退订，
// 路由时两者都要判断。
type UserPreference struct {
	UserID            string        `json:"userId"`
	OrganizationID    string        `json:"organizationId"`
	PrimaryChannel    ChannelType   `json:"primaryChannel"`
	PrimaryIdentifier string        `json:"primaryIdentifier"`
	FallbackChannels  []ChannelType `json:"fallbackChannels"` // 有序回退渠道
	Language          string        `json:"language"`
	ConsentGiven      bool          `json:"consentGiven"`
	ConsentAt         time.Time     `json:"consentAt"`
	OptedOut          bool          `json:"optedOut"`
	OptedOutAt        time.Time     `json:"optedOutAt"`
	OptOutReason      string        `json:"optOutReason,omitempty"`
	DNDStartHour      *int          `json:"dndStartHour,omitempty"` // 0-23，和 DNDEndHour 同时存在才生效
	DNDEndHour        *int          `json:"dndEndHour,omitempty"`
	Ctime             int64         `json:"ctime"`
	Utime             int64         `json:"utime"`
}

func (p UserPreference) Validate() error {
	if p.UserID == "" {
		return fmt.Errorf("%w: UserID = %q", errs.ErrInvalidParameter, p.UserID)
	}
	if p.PrimaryChannel != "" && !p.PrimaryChannel.IsValid() {
		return fmt.Errorf("%w: PrimaryChannel = %q", errs.ErrInvalidParameter, p.PrimaryChannel)
	}
	for _, ch := range p.FallbackChannels {
		if !ch.IsValid() {
			return fmt.Errorf("%w: FallbackChannel = %q", errs.ErrInvalidParameter, ch)
		}
	}
	if err := validateHour(p.DNDStartHour); err != nil {
		return err
	}
	return validateHour(p.DNDEndHour)
}

func validateHour(hour *int) error {
	const maxHour = 23
	if hour != nil && (*hour < 0 || *hour > maxHour) {
		return fmt.Errorf("%w: 小时 = %d", errs.ErrInvalidParameter, *hour)
	}
	return nil
}

// PreferencePatch 偏好的部分更新。nil 字段保持原值不变。
type PreferencePatch struct {
	OrganizationID    *string
	PrimaryChannel    *ChannelType
	PrimaryIdentifier *string
	FallbackChannels  []ChannelType
	Language          *string
	ConsentGiven      *bool
	OptedOut          *bool
	OptOutReason      *string
	DNDStartHour      *int
	DNDEndHour        *int
}

// ChannelIdentifier 用户在某个渠道上的标识（手机号/邮箱/设备token等）。
// 同一用户同一渠道允许多个标识，匹配时按（渠道类型，标识串）精确匹配。
type ChannelIdentifier struct {
	ID         int64       `json:"id"`
	UserID     string      `json:"userId"`
	Channel    ChannelType `json:"channel"`
	Identifier string      `json:"identifier"`
	Verified   bool        `json:"verified"`
	VerifiedAt time.Time   `json:"verifiedAt"`
	Active     bool        `json:"active"`
	Ctime      int64       `json:"ctime"`
}

// RoutingChannel 路由快照中的一个可用渠道
type RoutingChannel struct {
	Channel    ChannelType `json:"channel"`
	Identifier string      `json:"identifier"`
	Verified   bool        `json:"verified"`
}

// RoutingPreferences 解析完成、可直接路由的偏好快照
type RoutingPreferences struct {
	UserID             string           `json:"userId"`
	OrganizationID     string           `json:"organizationId"`
	CanReceiveMessages bool             `json:"canReceiveMessages"` // consentGiven && !optedOut
	Language           string           `json:"language"`
	Primary            RoutingChannel   `json:"primary"`
	Fallbacks          []RoutingChannel `json:"fallbacks"` // 保持偏好中配置的顺序
	DNDStartHour       *int             `json:"dndStartHour,omitempty"`
	DNDEndHour         *int             `json:"dndEndHour,omitempty"`
}

// InDNDWindow 判断给定小时是否处于免打扰时段。
// start > end 表示跨午夜窗口：hour >= start 或 hour < end。
func (r RoutingPreferences) InDNDWindow(hour int) bool {
	if r.DNDStartHour == nil || r.DNDEndHour == nil {
		return false
	}
	start, end := *r.DNDStartHour, *r.DNDEndHour
	if start > end {
		return hour >= start || hour < end
	}
	return hour >= start && hour < end
}

// MaskIdentifier 渠道标识脱敏：仅保留首尾各两个字符，避免 PII 进入日志
func MaskIdentifier(identifier string) string {
	const visible = 2
	runes := []rune(identifier)
	if len(runes) <= visible*2 {
		return strings.Repeat("*", len(runes))
	}
	return string(runes[:visible]) + strings.Repeat("*", len(runes)-visible*2) + string(runes[len(runes)-visible:])
}
