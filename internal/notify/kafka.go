package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
)

// KafkaPublisher writes notifications to a topic keyed by session id.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
			Async:                  true,
		},
	}
}

type kafkaEvent struct {
	Session string `json:"session"`
	Notification
}

func (p *KafkaPublisher) Publish(ctx context.Context, session string, n Notification) error {
	value, err := json.Marshal(kafkaEvent{Session: session, Notification: n})
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(session),
		Value: value,
	})
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
