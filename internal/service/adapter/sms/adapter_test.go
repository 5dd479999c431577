package sms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"communication-platform/internal/domain"
	"communication-platform/internal/errs"
	"communication-platform/internal/service/adapter"
	"communication-platform/internal/service/adapter/sms/client"
)

type fakeClient struct {
	lastReq client.SendReq
	resp    client.SendResp
	err     error
}

func (f *fakeClient) Send(req client.SendReq) (client.SendResp, error) {
	f.lastReq = req
	return f.resp, f.err
}

func newMessage() domain.Message {
	return domain.Message{
		ID:      "msg-1",
		Content: "您的护理计划已更新",
		Recipient: domain.Recipient{
			UserID:     "user-1",
			Channel:    domain.ChannelSMS,
			Identifier: "+8613800001111",
		},
	}
}

func TestAdapter_Initialize(t *testing.T) {
	t.Parallel()

	t.Run("未知供应商", func(t *testing.T) {
		t.Parallel()
		a := NewAdapter()

		err := a.Initialize(t.Context(), adapter.Config{
			OrganizationID: "org-1",
			Settings:       map[string]string{"provider": "unknown"},
		})

		assert.ErrorIs(t, err, errs.ErrInvalidParameter)
	})

	t.Run("注入客户端时跳过供应商初始化", func(t *testing.T) {
		t.Parallel()
		a := NewAdapterWithClient(&fakeClient{})

		err := a.Initialize(t.Context(), adapter.Config{OrganizationID: "org-1"})

		assert.NoError(t, err)
	})
}

func TestAdapter_Send(t *testing.T) {
	t.Parallel()

	t.Run("发送成功", func(t *testing.T) {
		t.Parallel()
		fc := &fakeClient{
			resp: client.SendResp{
				RequestID: "req-1",
				PhoneNumbers: map[string]client.SendRespStatus{
					"+8613800001111": {Code: client.OK},
				},
			},
		}
		a := NewAdapterWithClient(fc)
		require.NoError(t, a.Initialize(t.Context(), adapter.Config{
			OrganizationID: "org-1",
			Settings:       map[string]string{"signName": "护理平台", "templateId": "SMS_001"},
		}))

		result, err := a.Send(t.Context(), newMessage())

		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, domain.DeliveryStatusSent, result.Status)
		assert.Equal(t, []string{"+8613800001111"}, fc.lastReq.PhoneNumbers)
		assert.Equal(t, "护理平台", fc.lastReq.SignName)
		assert.Equal(t, "SMS_001", fc.lastReq.TemplateID)
		assert.Equal(t, "您的护理计划已更新", fc.lastReq.TemplateParam["content"])
	})

	t.Run("供应商返回失败状态", func(t *testing.T) {
		t.Parallel()
		fc := &fakeClient{
			resp: client.SendResp{
				PhoneNumbers: map[string]client.SendRespStatus{
					"+8613800001111": {Code: "isv.BUSINESS_LIMIT_CONTROL", Message: "触发流控"},
				},
			},
		}
		a := NewAdapterWithClient(fc)
		require.NoError(t, a.Initialize(t.Context(), adapter.Config{OrganizationID: "org-1"}))

		result, err := a.Send(t.Context(), newMessage())

		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, domain.DeliveryStatusFailed, result.Status)
		assert.Equal(t, "isv.BUSINESS_LIMIT_CONTROL", result.ErrorCode)
		assert.True(t, result.Retryable)
	})

	t.Run("客户端错误向上传播", func(t *testing.T) {
		t.Parallel()
		fc := &fakeClient{err: client.ErrSendFailed}
		a := NewAdapterWithClient(fc)
		require.NoError(t, a.Initialize(t.Context(), adapter.Config{OrganizationID: "org-1"}))

		_, err := a.Send(t.Context(), newMessage())

		assert.ErrorIs(t, err, errs.ErrSendMessageFailed)
	})

	t.Run("手机号为空", func(t *testing.T) {
		t.Parallel()
		a := NewAdapterWithClient(&fakeClient{})
		require.NoError(t, a.Initialize(t.Context(), adapter.Config{OrganizationID: "org-1"}))

		msg := newMessage()
		msg.Recipient.Identifier = ""
		_, err := a.Send(t.Context(), msg)

		assert.ErrorIs(t, err, errs.ErrInvalidParameter)
	})
}
