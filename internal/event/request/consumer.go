package request

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/gotomicro/ego/core/elog"

	"communication-platform/internal/pkg/idempotent"
	"communication-platform/internal/service/orchestrator"
)

const (
	defaultPollTimeout = 1000
	defaultSendTimeout = 30 * time.Second
)

// EventConsumer 消费异步发送请求并交给编排器处理。
// 以消息ID做幂等去重，Kafka重平衡或重试导致的重复投递不会重复发送。
// 编排器的终态失败（用户退订、所有渠道失败等）已经落入投递日志，这里不再重试。
type EventConsumer struct {
	orch        orchestrator.Orchestrator
	consumer    *kafka.Consumer
	idempotency idempotent.IdempotencyService
	logger      *elog.Component
}

func NewEventConsumer(
	orch orchestrator.Orchestrator,
	consumer *kafka.Consumer,
	idempotency idempotent.IdempotencyService,
) (*EventConsumer, error) {
	return NewEventConsumerWithTopic(orch, consumer, idempotency, eventName)
}

func NewEventConsumerWithTopic(
	orch orchestrator.Orchestrator,
	consumer *kafka.Consumer,
	idempotency idempotent.IdempotencyService,
	topic string,
) (*EventConsumer, error) {
	if err := consumer.SubscribeTopics([]string{topic}, nil); err != nil {
		return nil, err
	}
	return &EventConsumer{
		orch:        orch,
		consumer:    consumer,
		idempotency: idempotency,
		logger:      elog.DefaultLogger,
	}, nil
}

func (c *EventConsumer) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			default:
			}
			if err := c.Consume(ctx); err != nil {
				c.logger.Error("消费发送请求事件失败", elog.FieldErr(err))
			}
		}
	}()
}

// Consume 处理单个消息
func (c *EventConsumer) Consume(ctx context.Context) error {
	ev := c.consumer.Poll(defaultPollTimeout)
	if ev == nil {
		return nil
	}

	switch e := ev.(type) {
	case *kafka.Message:
		if err := c.processMessage(ctx, e.Value); err != nil {
			return err
		}
		if _, err := c.consumer.CommitMessage(e); err != nil {
			return fmt.Errorf("提交消息失败: %w", err)
		}
	case kafka.Error:
		return fmt.Errorf("kafka错误: %w", e)
	}
	return nil
}

func (c *EventConsumer) processMessage(ctx context.Context, value []byte) error {
	var evt SendRequestEvent
	if err := json.Unmarshal(value, &evt); err != nil {
		return fmt.Errorf("反序列化消息失败: %w", err)
	}

	seen, err := c.idempotency.Exists(ctx, evt.MessageID)
	if err != nil {
		return fmt.Errorf("幂等检查失败: %w", err)
	}
	if seen {
		c.logger.Warn("重复的发送请求，跳过",
			elog.String("messageId", evt.MessageID),
			elog.String("userId", evt.UserID))
		return nil
	}

	msg, opts := evt.toDomain()
	sendCtx, cancel := context.WithTimeout(ctx, defaultSendTimeout)
	defer cancel()
	res, err := c.orch.SendMessage(sendCtx, msg, opts)
	if err != nil {
		// 基础设施类错误不会提交位移，消息会重投。撤销幂等标记，
		// 否则重投的消息会被当成重复而丢掉
		if rerr := c.idempotency.Release(ctx, evt.MessageID); rerr != nil {
			c.logger.Warn("撤销幂等标记失败，该消息重投后会被跳过",
				elog.String("messageId", evt.MessageID),
				elog.FieldErr(rerr))
		}
		return fmt.Errorf("编排发送失败: %w", err)
	}
	if !res.Success {
		c.logger.Warn("异步发送请求未送达",
			elog.String("messageId", res.MessageID),
			elog.String("userId", res.UserID),
			elog.String("failureReason", string(res.FailureReason)))
	}
	return nil
}
