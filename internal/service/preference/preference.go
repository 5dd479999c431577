package preference

import (
	"context"
	"errors"
	"time"

	"github.com/gotomicro/ego/core/elog"

	"communication-platform/internal/domain"
	"communication-platform/internal/errs"
	"communication-platform/internal/repository"
)

type preferenceService struct {
	prefRepo repository.PreferenceRepository
	idRepo   repository.ChannelIdentifierRepository
	logger   *elog.Component
}

// NewPreferenceService 创建偏好服务
func NewPreferenceService(prefRepo repository.PreferenceRepository, idRepo repository.ChannelIdentifierRepository) Service {
	return &preferenceService{
		prefRepo: prefRepo,
		idRepo:   idRepo,
		logger:   elog.DefaultLogger,
	}
}

func (s *preferenceService) GetUserPreference(ctx context.Context, userID string) (domain.UserPreference, error) {
	return s.prefRepo.Find(ctx, userID)
}

func (s *preferenceService) SetUserPreference(ctx context.Context, userID string, patch domain.PreferencePatch) (domain.UserPreference, error) {
	pref, err := s.prefRepo.Find(ctx, userID)
	if err != nil {
		if !errors.Is(err, errs.ErrPreferenceNotFound) {
			return domain.UserPreference{}, err
		}
		pref = domain.UserPreference{UserID: userID}
	}
	merged := s.merge(pref, patch)
	if err := merged.Validate(); err != nil {
		return domain.UserPreference{}, err
	}
	return s.prefRepo.Save(ctx, merged)
}

// merge 将补丁叠加到现有偏好上。时间戳只在本次把标志位置真时才刷新。
func (s *preferenceService) merge(pref domain.UserPreference, patch domain.PreferencePatch) domain.UserPreference {
	now := time.Now()
	if patch.OrganizationID != nil {
		pref.OrganizationID = *patch.OrganizationID
	}
	if patch.PrimaryChannel != nil {
		pref.PrimaryChannel = *patch.PrimaryChannel
	}
	if patch.PrimaryIdentifier != nil {
		pref.PrimaryIdentifier = *patch.PrimaryIdentifier
	}
	if patch.FallbackChannels != nil {
		pref.FallbackChannels = patch.FallbackChannels
	}
	if patch.Language != nil {
		pref.Language = *patch.Language
	}
	if patch.ConsentGiven != nil {
		pref.ConsentGiven = *patch.ConsentGiven
		if *patch.ConsentGiven {
			pref.ConsentAt = now
		}
	}
	if patch.OptedOut != nil {
		pref.OptedOut = *patch.OptedOut
		if *patch.OptedOut {
			pref.OptedOutAt = now
		}
	}
	if patch.OptOutReason != nil {
		pref.OptOutReason = *patch.OptOutReason
	}
	if patch.DNDStartHour != nil {
		pref.DNDStartHour = patch.DNDStartHour
	}
	if patch.DNDEndHour != nil {
		pref.DNDEndHour = patch.DNDEndHour
	}
	return pref
}

func (s *preferenceService) RecordConsent(ctx context.Context, userID string, given bool) (domain.UserPreference, error) {
	s.logger.Info("记录用户授权",
		elog.String("userID", userID),
		elog.Any("given", given))
	return s.SetUserPreference(ctx, userID, domain.PreferencePatch{ConsentGiven: &given})
}

func (s *preferenceService) OptOutUser(ctx context.Context, userID string, reason string) (domain.UserPreference, error) {
	s.logger.Info("用户退订",
		elog.String("userID", userID),
		elog.String("reason", reason))
	optedOut := true
	patch := domain.PreferencePatch{OptedOut: &optedOut}
	if reason != "" {
		patch.OptOutReason = &reason
	}
	return s.SetUserPreference(ctx, userID, patch)
}

func (s *preferenceService) OptInUser(ctx context.Context, userID string) (domain.UserPreference, error) {
	s.logger.Info("用户重新订阅", elog.String("userID", userID))
	optedOut := false
	reason := ""
	return s.SetUserPreference(ctx, userID, domain.PreferencePatch{
		OptedOut:     &optedOut,
		OptOutReason: &reason,
	})
}

func (s *preferenceService) AddChannelIdentifier(ctx context.Context, userID string, channel domain.ChannelType, identifier string) (domain.ChannelIdentifier, error) {
	if userID == "" || identifier == "" || !channel.IsValid() {
		return domain.ChannelIdentifier{}, errs.ErrInvalidParameter
	}
	existing, err := s.idRepo.Find(ctx, userID, channel, identifier)
	if err == nil {
		// 重复添加是幂等操作
		return existing, nil
	}
	if !errors.Is(err, errs.ErrIdentifierNotFound) {
		return domain.ChannelIdentifier{}, err
	}
	return s.idRepo.Create(ctx, domain.ChannelIdentifier{
		UserID:     userID,
		Channel:    channel,
		Identifier: identifier,
		Verified:   false,
		Active:     true,
	})
}

func (s *preferenceService) VerifyChannelIdentifier(ctx context.Context, userID string, channel domain.ChannelType, identifier string) (domain.ChannelIdentifier, error) {
	ci, err := s.idRepo.Find(ctx, userID, channel, identifier)
	if err != nil {
		return domain.ChannelIdentifier{}, err
	}
	ci.Verified = true
	ci.VerifiedAt = time.Now()
	if err := s.idRepo.Update(ctx, ci); err != nil {
		return domain.ChannelIdentifier{}, err
	}
	return ci, nil
}

func (s *preferenceService) SetChannelIdentifierActive(ctx context.Context, userID string, channel domain.ChannelType, identifier string, active bool) (domain.ChannelIdentifier, error) {
	ci, err := s.idRepo.Find(ctx, userID, channel, identifier)
	if err != nil {
		return domain.ChannelIdentifier{}, err
	}
	if ci.Active == active {
		return ci, nil
	}
	ci.Active = active
	if err := s.idRepo.Update(ctx, ci); err != nil {
		return domain.ChannelIdentifier{}, err
	}
	s.logger.Info("渠道标识状态变更",
		elog.String("userID", userID),
		elog.String("channel", channel.String()),
		elog.String("identifier", domain.MaskIdentifier(identifier)),
		elog.Any("active", active))
	return ci, nil
}

func (s *preferenceService) RemoveChannelIdentifier(ctx context.Context, userID string, channel domain.ChannelType, identifier string) error {
	return s.idRepo.Delete(ctx, userID, channel, identifier)
}

func (s *preferenceService) GetUserChannelIdentifiers(ctx context.Context, userID string) ([]domain.ChannelIdentifier, error) {
	return s.idRepo.FindByUser(ctx, userID)
}

func (s *preferenceService) GetUserRoutingPreferences(ctx context.Context, userID string) (domain.RoutingPreferences, error) {
	pref, err := s.prefRepo.Find(ctx, userID)
	if err != nil {
		return domain.RoutingPreferences{}, err
	}
	identifiers, err := s.idRepo.FindByUser(ctx, userID)
	if err != nil {
		return domain.RoutingPreferences{}, err
	}

	routing := domain.RoutingPreferences{
		UserID:             pref.UserID,
		OrganizationID:     pref.OrganizationID,
		CanReceiveMessages: pref.ConsentGiven && !pref.OptedOut,
		Language:           pref.Language,
		DNDStartHour:       pref.DNDStartHour,
		DNDEndHour:         pref.DNDEndHour,
	}

	routing.Primary = domain.RoutingChannel{
		Channel:    pref.PrimaryChannel,
		Identifier: pref.PrimaryIdentifier,
	}
	if primary, ok := s.matchIdentifier(identifiers, pref.PrimaryChannel, pref.PrimaryIdentifier); ok {
		routing.Primary.Verified = primary.Verified
	} else {
		s.logger.Warn("首选渠道标识没有对应记录",
			elog.String("userID", userID),
			elog.String("channel", pref.PrimaryChannel.String()),
			elog.String("identifier", domain.MaskIdentifier(pref.PrimaryIdentifier)))
	}

	// 回退渠道按配置顺序解析，找不到可用标识的渠道静默丢弃
	for _, channel := range pref.FallbackChannels {
		ci, ok := s.firstActiveIdentifier(identifiers, channel)
		if !ok {
			continue
		}
		routing.Fallbacks = append(routing.Fallbacks, domain.RoutingChannel{
			Channel:    channel,
			Identifier: ci.Identifier,
			Verified:   ci.Verified,
		})
	}
	return routing, nil
}

func (s *preferenceService) matchIdentifier(identifiers []domain.ChannelIdentifier, channel domain.ChannelType, identifier string) (domain.ChannelIdentifier, bool) {
	for _, ci := range identifiers {
		if ci.Channel == channel && ci.Identifier == identifier {
			return ci, true
		}
	}
	return domain.ChannelIdentifier{}, false
}

func (s *preferenceService) firstActiveIdentifier(identifiers []domain.ChannelIdentifier, channel domain.ChannelType) (domain.ChannelIdentifier, bool) {
	for _, ci := range identifiers {
		if ci.Channel == channel && ci.Active {
			return ci, true
		}
	}
	return domain.ChannelIdentifier{}, false
}
