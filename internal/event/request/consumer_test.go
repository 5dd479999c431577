package request

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/gotomicro/ego/core/elog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"communication-platform/internal/domain"
)

type fakeOrchestrator struct {
	sendCnt  int
	lastMsg  domain.Message
	lastOpts domain.SendOptions
	result   domain.SendResult
	err      error
}

func (f *fakeOrchestrator) SendMessage(_ context.Context, msg domain.Message, opts domain.SendOptions) (domain.SendResult, error) {
	f.sendCnt++
	f.lastMsg = msg
	f.lastOpts = opts
	return f.result, f.err
}

func (f *fakeOrchestrator) BroadcastMessage(_ context.Context, _ domain.Message, _ []string) ([]domain.SendResult, error) {
	return nil, nil
}

func (f *fakeOrchestrator) GetDeliveryHistory(_ context.Context, _ string, _ int) ([]domain.SendResult, error) {
	return nil, nil
}

func (f *fakeOrchestrator) GetStatistics(_ context.Context) (domain.SendStatistics, error) {
	return domain.SendStatistics{}, nil
}

type fakeIdempotency struct {
	seen map[string]bool
}

func (f *fakeIdempotency) Exists(_ context.Context, key string) (bool, error) {
	if f.seen == nil {
		f.seen = make(map[string]bool)
	}
	existed := f.seen[key]
	f.seen[key] = true
	return existed, nil
}

func (f *fakeIdempotency) Release(_ context.Context, key string) error {
	delete(f.seen, key)
	return nil
}

func newConsumer(orch *fakeOrchestrator, idem *fakeIdempotency) *EventConsumer {
	return &EventConsumer{
		orch:        orch,
		idempotency: idem,
		logger:      elog.DefaultLogger,
	}
}

func TestEventConsumer_ProcessMessage(t *testing.T) {
	t.Parallel()

	evt := SendRequestEvent{
		MessageID:   "msg-1",
		UserID:      "user-1",
		Type:        "order_shipped",
		Content:     "您的订单已发货",
		Priority:    "HIGH",
		Category:    "transactional",
		OverrideDND: true,
	}
	value, err := json.Marshal(evt)
	require.NoError(t, err)

	t.Run("首次消费转交编排器", func(t *testing.T) {
		t.Parallel()
		orch := &fakeOrchestrator{result: domain.SendResult{MessageID: "msg-1", Success: true}}
		c := newConsumer(orch, &fakeIdempotency{})

		require.NoError(t, c.processMessage(t.Context(), value))
		assert.Equal(t, 1, orch.sendCnt)
		assert.Equal(t, "msg-1", orch.lastMsg.ID)
		assert.Equal(t, "user-1", orch.lastMsg.Recipient.UserID)
		assert.Equal(t, domain.PriorityHigh, orch.lastMsg.Metadata.Priority)
		assert.True(t, orch.lastOpts.OverrideDND)
		assert.False(t, orch.lastOpts.DisableFallback)
	})

	t.Run("重复消费被幂等跳过", func(t *testing.T) {
		t.Parallel()
		orch := &fakeOrchestrator{result: domain.SendResult{MessageID: "msg-1", Success: true}}
		c := newConsumer(orch, &fakeIdempotency{})

		require.NoError(t, c.processMessage(t.Context(), value))
		require.NoError(t, c.processMessage(t.Context(), value))
		assert.Equal(t, 1, orch.sendCnt)
	})

	t.Run("非法JSON返回错误", func(t *testing.T) {
		t.Parallel()
		orch := &fakeOrchestrator{}
		c := newConsumer(orch, &fakeIdempotency{})

		err := c.processMessage(t.Context(), []byte("{不是JSON"))
		require.Error(t, err)
		assert.Equal(t, 0, orch.sendCnt)
	})

	t.Run("编排器报错时撤销幂等标记等待重投", func(t *testing.T) {
		t.Parallel()
		orch := &fakeOrchestrator{err: assert.AnError}
		c := newConsumer(orch, &fakeIdempotency{})

		require.Error(t, c.processMessage(t.Context(), value))
		assert.Equal(t, 1, orch.sendCnt)

		// 错误恢复后重投，消息不能被当成重复丢掉
		orch.err = nil
		orch.result = domain.SendResult{MessageID: "msg-1", Success: true}
		require.NoError(t, c.processMessage(t.Context(), value))
		assert.Equal(t, 2, orch.sendCnt)
	})

	t.Run("编排器终态失败不算消费失败", func(t *testing.T) {
		t.Parallel()
		orch := &fakeOrchestrator{result: domain.SendResult{
			MessageID:     "msg-1",
			Success:       false,
			FailureReason: domain.FailureReasonAllChannelsFailed,
		}}
		c := newConsumer(orch, &fakeIdempotency{})

		require.NoError(t, c.processMessage(t.Context(), value))
		assert.Equal(t, 1, orch.sendCnt)
	})
}
