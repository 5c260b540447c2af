// Package kafkaevents pushes integration events to a Kafka topic. Events are
// JSON-encoded and keyed by aggregate, so every consumer sees one aggregate's
// events in order.
package kafkaevents

import (
	"context"
	"encoding/json"

	"pharmadispatch/internal/core/domain/events"
	"pharmadispatch/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
)

// KafkaEventPublisher implements EventPublisher over a kafka-go writer.
type KafkaEventPublisher struct {
	writer *kafka.Writer
}

// NewKafkaEventPublisher creates a publisher writing to the given topic.
func NewKafkaEventPublisher(brokers []string, topic string) (*KafkaEventPublisher, error) {
	if len(brokers) == 0 {
		return nil, errs.NewValueIsRequiredError("brokers")
	}
	if topic == "" {
		return nil, errs.NewValueIsRequiredError("topic")
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &KafkaEventPublisher{writer: writer}, nil
}

// Publish writes the events in one batch. The event name travels in a
// message header so consumers can route without decoding the payload.
func (p *KafkaEventPublisher) Publish(ctx context.Context, evts ...events.Event) error {
	if len(evts) == 0 {
		return nil
	}

	messages := make([]kafka.Message, 0, len(evts))
	for _, evt := range evts {
		payload, err := json.Marshal(evt)
		if err != nil {
			return err
		}

		messages = append(messages, kafka.Message{
			Key:   []byte(evt.Key()),
			Value: payload,
			Headers: []kafka.Header{
				{Key: "event-name", Value: []byte(evt.Name())},
			},
		})
	}

	return p.writer.WriteMessages(ctx, messages...)
}

// Close releases the underlying writer's connections.
func (p *KafkaEventPublisher) Close() error {
	return p.writer.Close()
}
