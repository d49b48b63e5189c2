package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// KafkaPublisher writes prediction events to a Kafka topic.
type KafkaPublisher struct {
	writer *kafkago.Writer
}

// NewKafkaPublisher creates a producer for the given brokers and topic.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireOne,
	}
	return &KafkaPublisher{writer: w}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event PredictionEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("serialize prediction event: %w", err)
	}
	msg := kafkago.Message{
		Key:   []byte(event.Username),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "created_at", Value: []byte(event.CreatedAt.Format(time.RFC3339))},
		},
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
