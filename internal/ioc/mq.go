package ioc

import (
	"fmt"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/gotomicro/ego/core/econf"

	"communication-platform/internal/event/delivery"
	"communication-platform/internal/event/request"
	"communication-platform/internal/pkg/idempotent"
	"communication-platform/internal/service/orchestrator"
)

func InitProducer() *kafka.Producer {
	type Config struct {
		Addr     string `yaml:"addr"`
		ClientID string `yaml:"clientId"`
	}
	var cfg Config
	if err := econf.UnmarshalKey("kafka", &cfg); err != nil {
		panic(err)
	}
	producer, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": cfg.Addr,
		"client.id":         cfg.ClientID,
	})
	if err != nil {
		panic(fmt.Sprintf("创建生产者失败: %v", err))
	}
	return producer
}

func InitResultEventProducer(producer *kafka.Producer) delivery.ResultEventProducer {
	p, err := delivery.NewResultEventProducer(producer)
	if err != nil {
		panic(err)
	}
	return p
}

func InitConsumer() *kafka.Consumer {
	type Config struct {
		Addr    string `yaml:"addr"`
		GroupID string `yaml:"groupId"`
	}
	var cfg Config
	if err := econf.UnmarshalKey("kafka", &cfg); err != nil {
		panic(err)
	}
	consumer, err := kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers":  cfg.Addr,
		"group.id":           cfg.GroupID,
		"auto.offset.reset":  "earliest",
		"enable.auto.commit": false,
	})
	if err != nil {
		panic(fmt.Sprintf("创建消费者失败: %v", err))
	}
	return consumer
}

func InitSendRequestConsumer(
	orch orchestrator.Orchestrator,
	consumer *kafka.Consumer,
	idempotency idempotent.IdempotencyService,
) *request.EventConsumer {
	c, err := request.NewEventConsumer(orch, consumer, idempotency)
	if err != nil {
		panic(err)
	}
	return c
}
