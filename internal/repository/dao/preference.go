package dao

import (
	"context"
	"errors"
	"time"

	"github.com/ego-component/egorm"
	"gorm.io/gorm"
)

type preferenceDAO struct {
	db *egorm.Component
}

// NewPreferenceDAO 创建偏好 DAO
func NewPreferenceDAO(db *egorm.Component) PreferenceDAO {
	return &preferenceDAO{db: db}
}

func (d *preferenceDAO) Find(ctx context.Context, userID string) (UserPreference, error) {
	var pref UserPreference
	err := d.db.WithContext(ctx).Where("user_id = ?", userID).First(&pref).Error
	return pref, err
}

func (d *preferenceDAO) Save(ctx context.Context, pref UserPreference) (UserPreference, error) {
	now := time.Now().UnixMilli()
	var existing UserPreference
	err := d.db.WithContext(ctx).Where("user_id = ?", pref.UserID).First(&existing).Error
	switch {
	case err == nil:
		// 保留主键与创建时间，其余字段整体覆盖
		pref.ID = existing.ID
		pref.Ctime = existing.Ctime
		pref.Utime = now
		err = d.db.WithContext(ctx).Save(&pref).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		pref.Ctime, pref.Utime = now, now
		err = d.db.WithContext(ctx).Create(&pref).Error
	}
	return pref, err
}

type channelIdentifierDAO struct {
	db *egorm.Component
}

// NewChannelIdentifierDAO 创建渠道标识 DAO
func NewChannelIdentifierDAO(db *egorm.Component) ChannelIdentifierDAO {
	return &channelIdentifierDAO{db: db}
}

func (d *channelIdentifierDAO) FindByUser(ctx context.Context, userID string) ([]ChannelIdentifier, error) {
	var cis []ChannelIdentifier
	err := d.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&cis).Error
	return cis, err
}

func (d *channelIdentifierDAO) Find(ctx context.Context, userID, channel, identifier string) (ChannelIdentifier, error) {
	var ci ChannelIdentifier
	err := d.db.WithContext(ctx).
		Where("user_id = ? AND channel = ? AND identifier = ?", userID, channel, identifier).
		First(&ci).Error
	return ci, err
}

func (d *channelIdentifierDAO) Create(ctx context.Context, ci ChannelIdentifier) (ChannelIdentifier, error) {
	now := time.Now().UnixMilli()
	ci.Ctime, ci.Utime = now, now
	err := d.db.WithContext(ctx).Create(&ci).Error
	return ci, err
}

func (d *channelIdentifierDAO) Update(ctx context.Context, ci ChannelIdentifier) error {
	return d.db.WithContext(ctx).
		Model(&ChannelIdentifier{}).
		Where("id = ?", ci.ID).
		Updates(map[string]any{
			"verified":    ci.Verified,
			"verified_at": ci.VerifiedAt,
			"active":      ci.Active,
			"utime":       time.Now().UnixMilli(),
		}).Error
}

func (d *channelIdentifierDAO) Delete(ctx context.Context, userID, channel, identifier string) (int64, error) {
	res := d.db.WithContext(ctx).
		Where("user_id = ? AND channel = ? AND identifier = ?", userID, channel, identifier).
		Delete(&ChannelIdentifier{})
	return res.RowsAffected, res.Error
}
