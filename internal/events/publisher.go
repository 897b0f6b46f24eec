package events

import (
	"context"
	"encoding/json"
	"time"

	"crickstore/internal/logger"

	"github.com/segmentio/kafka-go"
)

const topic = "catalog-migration-events"

// Event mirrors the shape consumed by downstream workers.
type Event struct {
	Type      string                 `json:"type"`
	Data      map[string]interface{} `json:"data"`
	Timestamp time.Time              `json:"timestamp"`
}

// Publisher emits migration lifecycle events. Publishing is best-effort:
// failures are logged, never returned to the pipeline, and a Publisher
// built without brokers is a no-op.
type Publisher struct {
	writer *kafka.Writer
	logger *logger.Logger
}

func NewPublisher(brokers string, logger *logger.Logger) *Publisher {
	p := &Publisher{logger: logger}
	if brokers == "" {
		return p
	}

	p.writer = &kafka.Writer{
		Addr:         kafka.TCP(brokers),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: 10 * time.Second,
	}
	return p
}

func (p *Publisher) Publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if p == nil || p.writer == nil {
		return
	}

	event := Event{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now(),
	}

	value, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to marshal event %s: %v", eventType, err)
		return
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{Value: value}); err != nil {
		p.logger.Error("Failed to publish event %s: %v", eventType, err)
	}
}

func (p *Publisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
