package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/osse101/Mivy_Go/internal/logger"
)

// MessageWriter is the subset of *kafka.Writer the forwarder needs
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaForwarder copies bus events to Kafka topics named <prefix>.<type>
type KafkaForwarder struct {
	writer MessageWriter
	prefix string
}

// NewKafkaWriter builds a writer for the given brokers
func NewKafkaWriter(brokers []string) (*kafka.Writer, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka forwarder requires at least one broker")
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		RequiredAcks:           kafka.RequireAll,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		WriteTimeout:           KafkaWriteTimeout,
		MaxAttempts:            KafkaMaxAttempts,
		BatchTimeout:           KafkaBatchTimeout,
	}, nil
}

// NewKafkaForwarder creates a forwarder over writer
func NewKafkaForwarder(writer MessageWriter, prefix string) *KafkaForwarder {
	return &KafkaForwarder{writer: writer, prefix: prefix}
}

// Topic returns the topic an event type is written to
func (f *KafkaForwarder) Topic(t Type) string {
	if f.prefix == "" {
		return string(t)
	}
	return f.prefix + "." + string(t)
}

// Register subscribes the forwarder to every domain event type
func (f *KafkaForwarder) Register(bus Bus) {
	for _, t := range AllTypes {
		bus.Subscribe(t, f.Handle)
	}
	logger.Info(LogMsgKafkaForwarderOn, "prefix", f.prefix, "types", len(AllTypes))
}

// Handle writes one event. Write failures are logged and swallowed: the
// in-process handlers on the same bus must not be re-run because Kafka is down.
func (f *KafkaForwarder) Handle(ctx context.Context, evt Event) error {
	value, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to encode event %s: %w", evt.Type, err)
	}

	msg := kafka.Message{
		Topic: f.Topic(evt.Type),
		Key:   []byte(evt.AggregateID()),
		Value: value,
		Time:  time.Now().UTC(),
	}
	if err := f.writer.WriteMessages(ctx, msg); err != nil {
		logger.FromContext(ctx).Error(LogMsgKafkaForwardFailed,
			"event_type", evt.Type,
			"topic", msg.Topic,
			"error", err)
	}
	return nil
}

// Close flushes and closes the writer
func (f *KafkaForwarder) Close() error {
	return f.writer.Close()
}
