package mqx

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
)

// Producer 泛型事件生产者
type Producer[T any] interface {
	Produce(ctx context.Context, evt T) error
}

// GeneralProducer 把事件序列化为JSON后投递到固定topic，并等待投递回执
type GeneralProducer[T any] struct {
	producer *kafka.Producer
	topic    string
}

func NewGeneralProducer[T any](producer *kafka.Producer, topic string) (*GeneralProducer[T], error) {
	return &GeneralProducer[T]{
		producer: producer,
		topic:    topic,
	}, nil
}

func (p *GeneralProducer[T]) Produce(ctx context.Context, evt T) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("序列化事件失败: %w", err)
	}

	deliveryChan := make(chan kafka.Event, 1)
	err = p.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{
			Topic:     &p.topic,
			Partition: kafka.PartitionAny,
		},
		Value: data,
	}, deliveryChan)
	if err != nil {
		return fmt.Errorf("投递事件失败: %w", err)
	}

	select {
	case e := <-deliveryChan:
		msg, ok := e.(*kafka.Message)
		if !ok {
			return fmt.Errorf("未知的投递回执类型: %T", e)
		}
		if msg.TopicPartition.Error != nil {
			return fmt.Errorf("投递事件失败: %w", msg.TopicPartition.Error)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
