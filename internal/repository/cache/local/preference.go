package local

import (
	"context"
	"errors"

	ca "github.com/patrickmn/go-cache"

	"communication-platform/internal/domain"
	"communication-platform/internal/repository/cache"
)

var _ cache.PreferenceCache = (*Cache)(nil)

// Cache 进程内偏好缓存
type Cache struct {
	localCache *ca.Cache
}

func NewCache(localCache *ca.Cache) *Cache {
	return &Cache{localCache: localCache}
}

func (c *Cache) Get(_ context.Context, userID string) (domain.UserPreference, error) {
	v, ok := c.localCache.Get(cache.PreferenceKey(userID))
	if !ok {
		return domain.UserPreference{}, cache.ErrKeyNotFound
	}
	vv, ok := v.(domain.UserPreference)
	if !ok {
		return domain.UserPreference{}, errors.New("数据类型不正确")
	}
	return vv, nil
}

func (c *Cache) Set(_ context.Context, pref domain.UserPreference) error {
	c.localCache.Set(cache.PreferenceKey(pref.UserID), pref, cache.DefaultExpiredTime)
	return nil
}

func (c *Cache) Del(_ context.Context, userID string) error {
	c.localCache.Delete(cache.PreferenceKey(userID))
	return nil
}
