package webhook

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"communication-platform/internal/domain"
	"communication-platform/internal/service/adapter"
)

func newMessage(identifier string) domain.Message {
	return domain.Message{
		ID:      "msg-1",
		Type:    "ANNOUNCEMENT",
		Content: "测试内容",
		Recipient: domain.Recipient{
			UserID:     "user-1",
			Channel:    domain.ChannelWebhook,
			Identifier: identifier,
		},
		Metadata: domain.MessageMetadata{Priority: domain.PriorityNormal},
	}
}

func TestAdapter_Send(t *testing.T) {
	t.Parallel()

	t.Run("发送成功并携带完整载荷", func(t *testing.T) {
		t.Parallel()
		var received payload
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		a := NewAdapter()
		require.NoError(t, a.Initialize(t.Context(), adapter.Config{OrganizationID: "org-1"}))

		result, err := a.Send(t.Context(), newMessage(server.URL))

		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, domain.DeliveryStatusSent, result.Status)
		assert.Equal(t, "msg-1", received.MessageID)
		assert.Equal(t, "user-1", received.UserID)
		assert.Equal(t, "WEBHOOK", received.Channel)
	})

	t.Run("5xx返回失败且可重试", func(t *testing.T) {
		t.Parallel()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		a := NewAdapter()
		require.NoError(t, a.Initialize(t.Context(), adapter.Config{OrganizationID: "org-1"}))

		result, err := a.Send(t.Context(), newMessage(server.URL))

		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, "HTTP_500", result.ErrorCode)
		assert.True(t, result.Retryable)
	})

	t.Run("4xx返回失败且不可重试", func(t *testing.T) {
		t.Parallel()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer server.Close()

		a := NewAdapter()
		require.NoError(t, a.Initialize(t.Context(), adapter.Config{OrganizationID: "org-1"}))

		result, err := a.Send(t.Context(), newMessage(server.URL))

		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.False(t, result.Retryable)
	})

	t.Run("标识缺省回退到配置地址", func(t *testing.T) {
		t.Parallel()
		var hit bool
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			hit = true
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		a := NewAdapter()
		require.NoError(t, a.Initialize(t.Context(), adapter.Config{
			OrganizationID: "org-1",
			Settings:       map[string]string{"url": server.URL},
		}))

		result, err := a.Send(t.Context(), newMessage(""))

		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.True(t, hit)
	})

	t.Run("完全没有地址时失败", func(t *testing.T) {
		t.Parallel()
		a := NewAdapter()
		require.NoError(t, a.Initialize(t.Context(), adapter.Config{OrganizationID: "org-1"}))

		result, err := a.Send(t.Context(), newMessage(""))

		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, "MISSING_URL", result.ErrorCode)
	})
}
