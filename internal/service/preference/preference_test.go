package preference

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"communication-platform/internal/domain"
	"communication-platform/internal/errs"
	"communication-platform/internal/repository"
)

func newTestService() Service {
	return NewPreferenceService(
		repository.NewMemoryPreferenceRepository(),
		repository.NewMemoryChannelIdentifierRepository(),
	)
}

func ptr[T any](v T) *T {
	return &v
}

func TestPreferenceService_SetUserPreference(t *testing.T) {
	t.Parallel()

	t.Run("首次写入即创建", func(t *testing.T) {
		t.Parallel()
		svc := newTestService()

		pref, err := svc.SetUserPreference(t.Context(), "user-1", domain.PreferencePatch{
			OrganizationID: ptr("org-1"),
			PrimaryChannel: ptr(domain.ChannelSMS),
			Language:       ptr("zh-CN"),
		})

		require.NoError(t, err)
		assert.Equal(t, "user-1", pref.UserID)
		assert.Equal(t, "org-1", pref.OrganizationID)
		assert.Equal(t, domain.ChannelSMS, pref.PrimaryChannel)
		assert.NotZero(t, pref.Ctime)
	})

	t.Run("nil字段保持原值", func(t *testing.T) {
		t.Parallel()
		svc := newTestService()
		first, err := svc.SetUserPreference(t.Context(), "user-1", domain.PreferencePatch{
			OrganizationID:    ptr("org-1"),
			PrimaryChannel:    ptr(domain.ChannelSMS),
			PrimaryIdentifier: ptr("+8613800001111"),
			FallbackChannels:  []domain.ChannelType{domain.ChannelEmail},
		})
		require.NoError(t, err)

		second, err := svc.SetUserPreference(t.Context(), "user-1", domain.PreferencePatch{
			Language: ptr("en-US"),
		})

		require.NoError(t, err)
		assert.Equal(t, "en-US", second.Language)
		assert.Equal(t, "org-1", second.OrganizationID)
		assert.Equal(t, domain.ChannelSMS, second.PrimaryChannel)
		assert.Equal(t, "+8613800001111", second.PrimaryIdentifier)
		assert.Equal(t, []domain.ChannelType{domain.ChannelEmail}, second.FallbackChannels)
		assert.Equal(t, first.Ctime, second.Ctime)
		assert.GreaterOrEqual(t, second.Utime, first.Utime)
	})

	t.Run("非法渠道类型被拒绝", func(t *testing.T) {
		t.Parallel()
		svc := newTestService()

		_, err := svc.SetUserPreference(t.Context(), "user-1", domain.PreferencePatch{
			PrimaryChannel: ptr(domain.ChannelType("CARRIER_PIGEON")),
		})

		assert.ErrorIs(t, err, errs.ErrInvalidParameter)
	})

	t.Run("DND小时越界被拒绝", func(t *testing.T) {
		t.Parallel()
		svc := newTestService()

		_, err := svc.SetUserPreference(t.Context(), "user-1", domain.PreferencePatch{
			DNDStartHour: ptr(24),
		})

		assert.ErrorIs(t, err, errs.ErrInvalidParameter)
	})
}

func TestPreferenceService_ConsentStamping(t *testing.T) {
	t.Parallel()
	svc := newTestService()

	pref, err := svc.RecordConsent(t.Context(), "user-1", true)
	require.NoError(t, err)
	assert.True(t, pref.ConsentGiven)
	assert.WithinDuration(t, time.Now(), pref.ConsentAt, time.Minute)
	consentAt := pref.ConsentAt

	// 仅更新其他字段不刷新授权时间戳
	pref, err = svc.SetUserPreference(t.Context(), "user-1", domain.PreferencePatch{Language: ptr("zh-CN")})
	require.NoError(t, err)
	assert.Equal(t, consentAt, pref.ConsentAt)

	// 置为 false 不盖时间戳
	pref, err = svc.RecordConsent(t.Context(), "user-1", false)
	require.NoError(t, err)
	assert.False(t, pref.ConsentGiven)
	assert.Equal(t, consentAt, pref.ConsentAt)
}

func TestPreferenceService_OptOutOptIn(t *testing.T) {
	t.Parallel()
	svc := newTestService()

	pref, err := svc.OptOutUser(t.Context(), "user-1", "打扰太频繁")
	require.NoError(t, err)
	assert.True(t, pref.OptedOut)
	assert.Equal(t, "打扰太频繁", pref.OptOutReason)
	assert.WithinDuration(t, time.Now(), pref.OptedOutAt, time.Minute)

	pref, err = svc.OptInUser(t.Context(), "user-1")
	require.NoError(t, err)
	assert.False(t, pref.OptedOut)
	assert.Empty(t, pref.OptOutReason)
}

func TestPreferenceService_ChannelIdentifierRoundTrip(t *testing.T) {
	t.Parallel()
	svc := newTestService()

	added, err := svc.AddChannelIdentifier(t.Context(), "user-1", domain.ChannelSMS, "+8613800001111")
	require.NoError(t, err)
	assert.False(t, added.Verified)
	assert.True(t, added.Active)

	list, err := svc.GetUserChannelIdentifiers(t.Context(), "user-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.False(t, list[0].Verified)

	verified, err := svc.VerifyChannelIdentifier(t.Context(), "user-1", domain.ChannelSMS, "+8613800001111")
	require.NoError(t, err)
	assert.True(t, verified.Verified)
	assert.WithinDuration(t, time.Now(), verified.VerifiedAt, time.Minute)

	// 重复添加返回已有记录
	dup, err := svc.AddChannelIdentifier(t.Context(), "user-1", domain.ChannelSMS, "+8613800001111")
	require.NoError(t, err)
	assert.Equal(t, added.ID, dup.ID)
	assert.True(t, dup.Verified)

	require.NoError(t, svc.RemoveChannelIdentifier(t.Context(), "user-1", domain.ChannelSMS, "+8613800001111"))
	err = svc.RemoveChannelIdentifier(t.Context(), "user-1", domain.ChannelSMS, "+8613800001111")
	assert.ErrorIs(t, err, errs.ErrIdentifierNotFound)
}

func TestPreferenceService_GetUserRoutingPreferences(t *testing.T) {
	t.Parallel()

	t.Run("偏好不存在", func(t *testing.T) {
		t.Parallel()
		svc := newTestService()

		_, err := svc.GetUserRoutingPreferences(t.Context(), "user-miss")

		assert.ErrorIs(t, err, errs.ErrPreferenceNotFound)
	})

	t.Run("完整解析", func(t *testing.T) {
		t.Parallel()
		svc := newTestService()
		_, err := svc.SetUserPreference(t.Context(), "user-1", domain.PreferencePatch{
			OrganizationID:    ptr("org-1"),
			PrimaryChannel:    ptr(domain.ChannelChatApp),
			PrimaryIdentifier: ptr("chat-user-001"),
			FallbackChannels: []domain.ChannelType{
				domain.ChannelSMS,
				domain.ChannelEmail,
				domain.ChannelVoice,
			},
			Language:     ptr("zh-CN"),
			ConsentGiven: ptr(true),
		})
		require.NoError(t, err)

		_, err = svc.AddChannelIdentifier(t.Context(), "user-1", domain.ChannelChatApp, "chat-user-001")
		require.NoError(t, err)
		_, err = svc.VerifyChannelIdentifier(t.Context(), "user-1", domain.ChannelChatApp, "chat-user-001")
		require.NoError(t, err)
		_, err = svc.AddChannelIdentifier(t.Context(), "user-1", domain.ChannelSMS, "+8613800001111")
		require.NoError(t, err)
		_, err = svc.AddChannelIdentifier(t.Context(), "user-1", domain.ChannelVoice, "+8613800003333")
		require.NoError(t, err)
		_, err = svc.SetChannelIdentifierActive(t.Context(), "user-1", domain.ChannelVoice, "+8613800003333", false)
		require.NoError(t, err)
		// EMAIL 没有任何标识，VOICE 的标识已停用，都应从回退链中剔除

		routing, err := svc.GetUserRoutingPreferences(t.Context(), "user-1")

		require.NoError(t, err)
		assert.True(t, routing.CanReceiveMessages)
		assert.Equal(t, "org-1", routing.OrganizationID)
		assert.Equal(t, domain.ChannelChatApp, routing.Primary.Channel)
		assert.True(t, routing.Primary.Verified)
		require.Len(t, routing.Fallbacks, 1)
		assert.Equal(t, domain.ChannelSMS, routing.Fallbacks[0].Channel)
		assert.Equal(t, "+8613800001111", routing.Fallbacks[0].Identifier)
		assert.False(t, routing.Fallbacks[0].Verified)
	})

	t.Run("停用标识后回退渠道剔除且顺序不变", func(t *testing.T) {
		t.Parallel()
		svc := newTestService()
		_, err := svc.SetUserPreference(t.Context(), "user-1", domain.PreferencePatch{
			PrimaryChannel:    ptr(domain.ChannelChatApp),
			PrimaryIdentifier: ptr("chat-user-001"),
			FallbackChannels: []domain.ChannelType{
				domain.ChannelSMS,
				domain.ChannelEmail,
			},
			ConsentGiven: ptr(true),
		})
		require.NoError(t, err)
		_, err = svc.AddChannelIdentifier(t.Context(), "user-1", domain.ChannelSMS, "+8613800001111")
		require.NoError(t, err)
		_, err = svc.AddChannelIdentifier(t.Context(), "user-1", domain.ChannelEmail, "user1@example.com")
		require.NoError(t, err)

		// 停用 SMS 标识，回退链只剩 EMAIL
		ci, err := svc.SetChannelIdentifierActive(t.Context(), "user-1", domain.ChannelSMS, "+8613800001111", false)
		require.NoError(t, err)
		assert.False(t, ci.Active)

		routing, err := svc.GetUserRoutingPreferences(t.Context(), "user-1")
		require.NoError(t, err)
		require.Len(t, routing.Fallbacks, 1)
		assert.Equal(t, domain.ChannelEmail, routing.Fallbacks[0].Channel)

		// 重新启用后恢复原有顺序
		ci, err = svc.SetChannelIdentifierActive(t.Context(), "user-1", domain.ChannelSMS, "+8613800001111", true)
		require.NoError(t, err)
		assert.True(t, ci.Active)

		routing, err = svc.GetUserRoutingPreferences(t.Context(), "user-1")
		require.NoError(t, err)
		require.Len(t, routing.Fallbacks, 2)
		assert.Equal(t, domain.ChannelSMS, routing.Fallbacks[0].Channel)
		assert.Equal(t, domain.ChannelEmail, routing.Fallbacks[1].Channel)

		// 停用不存在的标识报错
		_, err = svc.SetChannelIdentifierActive(t.Context(), "user-1", domain.ChannelVoice, "+860000", false)
		assert.ErrorIs(t, err, errs.ErrIdentifierNotFound)
	})

	t.Run("退订后不可达", func(t *testing.T) {
		t.Parallel()
		svc := newTestService()
		_, err := svc.RecordConsent(t.Context(), "user-1", true)
		require.NoError(t, err)
		_, err = svc.OptOutUser(t.Context(), "user-1", "")
		require.NoError(t, err)

		routing, err := svc.GetUserRoutingPreferences(t.Context(), "user-1")

		require.NoError(t, err)
		assert.False(t, routing.CanReceiveMessages)
	})

	t.Run("首选标识无记录时未验证", func(t *testing.T) {
		t.Parallel()
		svc := newTestService()
		_, err := svc.SetUserPreference(t.Context(), "user-1", domain.PreferencePatch{
			PrimaryChannel:    ptr(domain.ChannelSMS),
			PrimaryIdentifier: ptr("+8613800002222"),
			ConsentGiven:      ptr(true),
		})
		require.NoError(t, err)

		routing, err := svc.GetUserRoutingPreferences(t.Context(), "user-1")

		require.NoError(t, err)
		assert.False(t, routing.Primary.Verified)
		assert.Equal(t, "+8613800002222", routing.Primary.Identifier)
	})
}
