package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"storefront-backend/internal/config"
	"storefront-backend/pkg/logger"
)

// Publisher emits domain events keyed by aggregate id.
type Publisher interface {
	Publish(ctx context.Context, key string, event interface{}) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer messageWriter
	topic  string
}

func NewKafkaPublisher(cfg config.KafkaConfig) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Brokers...),
			Topic:                  cfg.OrderTopic,
			Balancer:               &kafka.LeastBytes{},
			BatchTimeout:           cfg.BatchTimeout,
			AllowAutoTopicCreation: true,
		},
		topic: cfg.OrderTopic,
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, key string, event interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	}); err != nil {
		return fmt.Errorf("write to %s: %w", p.topic, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// LogPublisher stands in for Kafka when it is disabled.
type LogPublisher struct{}

func (LogPublisher) Publish(_ context.Context, key string, event interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	logger.Debug("event " + key + " " + string(data))
	return nil
}

func (LogPublisher) Close() error { return nil }

// NewPublisher returns a Kafka publisher when enabled, otherwise a LogPublisher.
func NewPublisher(cfg config.KafkaConfig) Publisher {
	if !cfg.Enabled {
		logger.Info("Kafka disabled, events will only be logged", nil)
		return LogPublisher{}
	}
	logger.Info("Kafka publisher ready", map[string]interface{}{
		"brokers": cfg.Brokers,
		"topic":   cfg.OrderTopic,
	})
	return NewKafkaPublisher(cfg)
}
