package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher checks the broker is reachable before returning a writer.
func NewKafkaPublisher(broker string) (*KafkaPublisher, error) {
	conn, err := kafka.Dial("tcp", broker)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Kafka: %w", err)
	}
	defer conn.Close()

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(broker),
		Balancer:               &kafka.Hash{},
		BatchTimeout:           50 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
	return &KafkaPublisher{writer: writer}, nil
}

func (k *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	return k.writer.WriteMessages(ctx, kafka.Message{
		Topic: event.Topic(),
		Key:   []byte(event.Key()),
		Value: value,
	})
}

func (k *KafkaPublisher) Close() error {
	return k.writer.Close()
}

// LocalPublisher hands events straight to the dispatcher when no broker is configured.
type LocalPublisher struct {
	dispatcher *Dispatcher
	log        *zap.Logger
}

func NewLocalPublisher(dispatcher *Dispatcher, log *zap.Logger) *LocalPublisher {
	return &LocalPublisher{dispatcher: dispatcher, log: log}
}

func (p *LocalPublisher) Publish(_ context.Context, event Event) error {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := p.dispatcher.Handle(ctx, event); err != nil {
			p.log.Warn("event dispatch failed", zap.String("event", event.Type), zap.Error(err))
		}
	}()
	return nil
}

func (p *LocalPublisher) Close() error {
	return nil
}
