package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gotomicro/ego/core/elog"
	"github.com/redis/go-redis/v9"

	"communication-platform/internal/domain"
)

const deliveryLogKeyPrefix = "communication:delivery_log:"

// redisDeliveryLogRepository 基于 Redis LIST 的投递日志。
// LPUSH + LTRIM 维持最新在前的有界列表。
type redisDeliveryLogRepository struct {
	client redis.Cmdable
	cap    int
	logger *elog.Component
}

// NewRedisDeliveryLogRepository 创建 Redis 投递日志仓储
func NewRedisDeliveryLogRepository(client redis.Cmdable, capacity int) DeliveryLogRepository {
	if capacity <= 0 {
		capacity = DefaultDeliveryLogCap
	}
	return &redisDeliveryLogRepository{
		client: client,
		cap:    capacity,
		logger: elog.DefaultLogger,
	}
}

func (r *redisDeliveryLogRepository) Append(ctx context.Context, userID string, result domain.SendResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("序列化投递记录失败: %w", err)
	}
	key := r.key(userID)
	pipe := r.client.Pipeline()
	pipe.LPush(ctx, key, data)
	pipe.LTrim(ctx, key, 0, int64(r.cap-1))
	_, err = pipe.Exec(ctx)
	return err
}

func (r *redisDeliveryLogRepository) List(ctx context.Context, userID string, limit int) ([]domain.SendResult, error) {
	if limit <= 0 || limit > r.cap {
		limit = r.cap
	}
	rows, err := r.client.LRange(ctx, r.key(userID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	return r.decode(rows), nil
}

func (r *redisDeliveryLogRepository) All(ctx context.Context) ([]domain.SendResult, error) {
	var res []domain.SendResult
	err := r.scanKeys(ctx, func(key string) error {
		rows, err := r.client.LRange(ctx, key, 0, -1).Result()
		if err != nil {
			return err
		}
		res = append(res, r.decode(rows)...)
		return nil
	})
	return res, err
}

func (r *redisDeliveryLogRepository) Trim(ctx context.Context) error {
	return r.scanKeys(ctx, func(key string) error {
		return r.client.LTrim(ctx, key, 0, int64(r.cap-1)).Err()
	})
}

func (r *redisDeliveryLogRepository) scanKeys(ctx context.Context, fn func(key string) error) error {
	const scanCount = 100
	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, deliveryLogKeyPrefix+"*", scanCount).Result()
		if err != nil {
			return err
		}
		for _, key := range keys {
			if err := fn(key); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

func (r *redisDeliveryLogRepository) decode(rows []string) []domain.SendResult {
	res := make([]domain.SendResult, 0, len(rows))
	for _, row := range rows {
		var result domain.SendResult
		if err := json.Unmarshal([]byte(row), &result); err != nil {
			// 坏记录跳过不影响整体读取
			r.logger.Warn("反序列化投递记录失败", elog.FieldErr(err))
			continue
		}
		res = append(res, result)
	}
	return res
}

func (r *redisDeliveryLogRepository) key(userID string) string {
	return deliveryLogKeyPrefix + userID
}
