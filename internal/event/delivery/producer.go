package delivery

import (
	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"communication-platform/internal/pkg/mqx"
)

func NewResultEventProducer(producer *kafka.Producer) (ResultEventProducer, error) {
	return NewResultEventProducerWithTopic(producer, eventName)
}

func NewResultEventProducerWithTopic(producer *kafka.Producer, topic string) (ResultEventProducer, error) {
	return mqx.NewGeneralProducer[ResultEvent](producer, topic)
}
