package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/segmentio/kafka-go"

	"marketing-automation-service/internal/marketing-manager/events"
)

const (
	DefaultBrokers        = "localhost:9092"
	DefaultTaskEventTopic = "marketing_task_events"
)

// NewWriter builds the task-event producer. brokers is a comma-separated
// list; empty values fall back to the local defaults.
func NewWriter(brokers, topic string) *kafka.Writer {
	if brokers == "" {
		brokers = DefaultBrokers
	}
	if topic == "" {
		topic = DefaultTaskEventTopic
	}
	writer := kafka.NewWriter(kafka.WriterConfig{
		Brokers:      strings.Split(brokers, ","),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: int(kafka.RequireOne),
		Async:        false,
	})
	hlog.Infof("Kafka task-event producer configured for topic: %s", topic)
	return writer
}

// EventPublisher ships task execution events to Kafka as JSON.
type EventPublisher struct {
	writer *kafka.Writer
}

func NewEventPublisher(writer *kafka.Writer) *EventPublisher {
	return &EventPublisher{writer: writer}
}

func (p *EventPublisher) Publish(ctx context.Context, evt events.TaskExecutionEvent) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal task event: %w", err)
	}
	writeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return p.writer.WriteMessages(writeCtx, kafka.Message{
		Key:   []byte(evt.TaskID),
		Value: payload,
	})
}

func (p *EventPublisher) Close() error {
	return p.writer.Close()
}
