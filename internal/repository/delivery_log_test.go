package repository

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"communication-platform/internal/domain"
)

func TestMemoryDeliveryLogRepository(t *testing.T) {
	t.Parallel()

	t.Run("最新在前", func(t *testing.T) {
		t.Parallel()
		repo := NewMemoryDeliveryLogRepository(10)
		for i := 0; i < 3; i++ {
			err := repo.Append(t.Context(), "user-1", domain.SendResult{MessageID: fmt.Sprintf("msg-%d", i)})
			require.NoError(t, err)
		}

		logs, err := repo.List(t.Context(), "user-1", 0)

		require.NoError(t, err)
		require.Len(t, logs, 3)
		assert.Equal(t, "msg-2", logs[0].MessageID)
		assert.Equal(t, "msg-0", logs[2].MessageID)
	})

	t.Run("超出容量淘汰最旧记录", func(t *testing.T) {
		t.Parallel()
		repo := NewMemoryDeliveryLogRepository(2)
		for i := 0; i < 5; i++ {
			err := repo.Append(t.Context(), "user-1", domain.SendResult{MessageID: fmt.Sprintf("msg-%d", i)})
			require.NoError(t, err)
		}

		logs, err := repo.List(t.Context(), "user-1", 0)

		require.NoError(t, err)
		require.Len(t, logs, 2)
		assert.Equal(t, "msg-4", logs[0].MessageID)
		assert.Equal(t, "msg-3", logs[1].MessageID)
	})

	t.Run("limit截断", func(t *testing.T) {
		t.Parallel()
		repo := NewMemoryDeliveryLogRepository(10)
		for i := 0; i < 4; i++ {
			require.NoError(t, repo.Append(t.Context(), "user-1", domain.SendResult{MessageID: fmt.Sprintf("msg-%d", i)}))
		}

		logs, err := repo.List(t.Context(), "user-1", 2)

		require.NoError(t, err)
		require.Len(t, logs, 2)
		assert.Equal(t, "msg-3", logs[0].MessageID)
	})

	t.Run("用户之间互不影响", func(t *testing.T) {
		t.Parallel()
		repo := NewMemoryDeliveryLogRepository(10)
		require.NoError(t, repo.Append(t.Context(), "user-1", domain.SendResult{MessageID: "msg-a"}))
		require.NoError(t, repo.Append(t.Context(), "user-2", domain.SendResult{MessageID: "msg-b"}))

		logs, err := repo.List(t.Context(), "user-1", 0)

		require.NoError(t, err)
		require.Len(t, logs, 1)
		assert.Equal(t, "msg-a", logs[0].MessageID)

		all, err := repo.All(t.Context())
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})
}
