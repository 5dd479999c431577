package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ecodeclub/ekit/slice"
	"github.com/gotomicro/ego/core/elog"
	"gorm.io/gorm"

	"communication-platform/internal/domain"
	"communication-platform/internal/errs"
	"communication-platform/internal/repository/cache"
	"communication-platform/internal/repository/dao"
)

type preferenceRepository struct {
	dao    dao.PreferenceDAO
	cache  cache.PreferenceCache
	logger *elog.Component
}

// NewPreferenceRepository 创建偏好仓储，读路径走本地缓存
func NewPreferenceRepository(d dao.PreferenceDAO, c cache.PreferenceCache) PreferenceRepository {
	return &preferenceRepository{
		dao:    d,
		cache:  c,
		logger: elog.DefaultLogger,
	}
}

func (r *preferenceRepository) Find(ctx context.Context, userID string) (domain.UserPreference, error) {
	pref, err := r.cache.Get(ctx, userID)
	if err == nil {
		return pref, nil
	}
	entity, err := r.dao.Find(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserPreference{}, fmt.Errorf("%w: userID = %s", errs.ErrPreferenceNotFound, userID)
		}
		return domain.UserPreference{}, err
	}
	pref, err = r.toDomain(entity)
	if err != nil {
		return domain.UserPreference{}, err
	}
	if err := r.cache.Set(ctx, pref); err != nil {
		r.logger.Warn("回写偏好缓存失败", elog.String("userID", userID), elog.FieldErr(err))
	}
	return pref, nil
}

func (r *preferenceRepository) Save(ctx context.Context, pref domain.UserPreference) (domain.UserPreference, error) {
	entity, err := r.toEntity(pref)
	if err != nil {
		return domain.UserPreference{}, err
	}
	saved, err := r.dao.Save(ctx, entity)
	if err != nil {
		return domain.UserPreference{}, err
	}
	if err := r.cache.Del(ctx, pref.UserID); err != nil {
		r.logger.Warn("失效偏好缓存失败", elog.String("userID", pref.UserID), elog.FieldErr(err))
	}
	return r.toDomain(saved)
}

func (r *preferenceRepository) toEntity(pref domain.UserPreference) (dao.UserPreference, error) {
	fallbacks, err := json.Marshal(pref.FallbackChannels)
	if err != nil {
		return dao.UserPreference{}, fmt.Errorf("序列化回退渠道失败: %w", err)
	}
	return dao.UserPreference{
		UserID:            pref.UserID,
		OrganizationID:    pref.OrganizationID,
		PrimaryChannel:    pref.PrimaryChannel.String(),
		PrimaryIdentifier: pref.PrimaryIdentifier,
		FallbackChannels:  string(fallbacks),
		Language:          pref.Language,
		ConsentGiven:      pref.ConsentGiven,
		ConsentAt:         toMilli(pref.ConsentAt),
		OptedOut:          pref.OptedOut,
		OptedOutAt:        toMilli(pref.OptedOutAt),
		OptOutReason:      pref.OptOutReason,
		DNDStartHour:      pref.DNDStartHour,
		DNDEndHour:        pref.DNDEndHour,
	}, nil
}

func (r *preferenceRepository) toDomain(entity dao.UserPreference) (domain.UserPreference, error) {
	var fallbacks []domain.ChannelType
	if entity.FallbackChannels != "" {
		if err := json.Unmarshal([]byte(entity.FallbackChannels), &fallbacks); err != nil {
			return domain.UserPreference{}, fmt.Errorf("反序列化回退渠道失败: %w", err)
		}
	}
	return domain.UserPreference{
		UserID:            entity.UserID,
		OrganizationID:    entity.OrganizationID,
		PrimaryChannel:    domain.ChannelType(entity.PrimaryChannel),
		PrimaryIdentifier: entity.PrimaryIdentifier,
		FallbackChannels:  fallbacks,
		Language:          entity.Language,
		ConsentGiven:      entity.ConsentGiven,
		ConsentAt:         fromMilli(entity.ConsentAt),
		OptedOut:          entity.OptedOut,
		OptedOutAt:        fromMilli(entity.OptedOutAt),
		OptOutReason:      entity.OptOutReason,
		DNDStartHour:      entity.DNDStartHour,
		DNDEndHour:        entity.DNDEndHour,
		Ctime:             entity.Ctime,
		Utime:             entity.Utime,
	}, nil
}

type channelIdentifierRepository struct {
	dao dao.ChannelIdentifierDAO
}

// NewChannelIdentifierRepository 创建渠道标识仓储
func NewChannelIdentifierRepository(d dao.ChannelIdentifierDAO) ChannelIdentifierRepository {
	return &channelIdentifierRepository{dao: d}
}

func (r *channelIdentifierRepository) FindByUser(ctx context.Context, userID string) ([]domain.ChannelIdentifier, error) {
	entities, err := r.dao.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return slice.Map(entities, func(_ int, src dao.ChannelIdentifier) domain.ChannelIdentifier {
		return r.toDomain(src)
	}), nil
}

func (r *channelIdentifierRepository) Find(ctx context.Context, userID string, channel domain.ChannelType, identifier string) (domain.ChannelIdentifier, error) {
	entity, err := r.dao.Find(ctx, userID, channel.String(), identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ChannelIdentifier{}, fmt.Errorf("%w: userID = %s, channel = %s", errs.ErrIdentifierNotFound, userID, channel)
		}
		return domain.ChannelIdentifier{}, err
	}
	return r.toDomain(entity), nil
}

func (r *channelIdentifierRepository) Create(ctx context.Context, ci domain.ChannelIdentifier) (domain.ChannelIdentifier, error) {
	created, err := r.dao.Create(ctx, r.toEntity(ci))
	if err != nil {
		return domain.ChannelIdentifier{}, err
	}
	return r.toDomain(created), nil
}

func (r *channelIdentifierRepository) Update(ctx context.Context, ci domain.ChannelIdentifier) error {
	return r.dao.Update(ctx, r.toEntity(ci))
}

func (r *channelIdentifierRepository) Delete(ctx context.Context, userID string, channel domain.ChannelType, identifier string) error {
	affected, err := r.dao.Delete(ctx, userID, channel.String(), identifier)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: userID = %s, channel = %s", errs.ErrIdentifierNotFound, userID, channel)
	}
	return nil
}

func (r *channelIdentifierRepository) toEntity(ci domain.ChannelIdentifier) dao.ChannelIdentifier {
	return dao.ChannelIdentifier{
		ID:         ci.ID,
		UserID:     ci.UserID,
		Channel:    ci.Channel.String(),
		Identifier: ci.Identifier,
		Verified:   ci.Verified,
		VerifiedAt: toMilli(ci.VerifiedAt),
		Active:     ci.Active,
	}
}

func (r *channelIdentifierRepository) toDomain(entity dao.ChannelIdentifier) domain.ChannelIdentifier {
	return domain.ChannelIdentifier{
		ID:         entity.ID,
		UserID:     entity.UserID,
		Channel:    domain.ChannelType(entity.Channel),
		Identifier: entity.Identifier,
		Verified:   entity.Verified,
		VerifiedAt: fromMilli(entity.VerifiedAt),
		Active:     entity.Active,
		Ctime:      entity.Ctime,
	}
}

func toMilli(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromMilli(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}
