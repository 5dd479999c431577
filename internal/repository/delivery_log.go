package repository

import (
	"context"
	"sync"

	"communication-platform/internal/domain"
)

// DefaultDeliveryLogCap 每用户保留的投递记录上限
const DefaultDeliveryLogCap = 100

// MemoryDeliveryLogRepository 进程内投递日志，每用户独立有界，最新在前
type MemoryDeliveryLogRepository struct {
	mu   sync.RWMutex
	cap  int
	logs map[string][]domain.SendResult
}

func NewMemoryDeliveryLogRepository(capacity int) *MemoryDeliveryLogRepository {
	if capacity <= 0 {
		capacity = DefaultDeliveryLogCap
	}
	return &MemoryDeliveryLogRepository{
		cap:  capacity,
		logs: make(map[string][]domain.SendResult),
	}
}

func (r *MemoryDeliveryLogRepository) Append(_ context.Context, userID string, result domain.SendResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	logs := append([]domain.SendResult{result}, r.logs[userID]...)
	if len(logs) > r.cap {
		logs = logs[:r.cap]
	}
	r.logs[userID] = logs
	return nil
}

func (r *MemoryDeliveryLogRepository) List(_ context.Context, userID string, limit int) ([]domain.SendResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	logs := r.logs[userID]
	if limit <= 0 || limit > len(logs) {
		limit = len(logs)
	}
	res := make([]domain.SendResult, limit)
	copy(res, logs[:limit])
	return res, nil
}

func (r *MemoryDeliveryLogRepository) All(_ context.Context) ([]domain.SendResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var res []domain.SendResult
	for _, logs := range r.logs {
		res = append(res, logs...)
	}
	return res, nil
}

func (r *MemoryDeliveryLogRepository) Trim(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for userID, logs := range r.logs {
		if len(logs) > r.cap {
			r.logs[userID] = logs[:r.cap]
		}
	}
	return nil
}
