package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"communication-platform/internal/domain"
)

var ErrKeyNotFound = errors.New("key not found")

const (
	PreferencePrefix   = "preference"
	DefaultExpiredTime = 10 * time.Minute
)

// PreferenceCache 用户偏好缓存
type PreferenceCache interface {
	Get(ctx context.Context, userID string) (domain.UserPreference, error)
	Set(ctx context.Context, pref domain.UserPreference) error
	Del(ctx context.Context, userID string) error
}

func PreferenceKey(userID string) string {
	return fmt.Sprintf("%s:%s", PreferencePrefix, userID)
}
