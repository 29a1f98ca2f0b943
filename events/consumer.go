package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const consumerGroup = "clinical-site"

// KafkaConsumer feeds event topics into a dispatcher.
type KafkaConsumer struct {
	reader     *kafka.Reader
	dispatcher *Dispatcher
	log        *zap.Logger
	done       chan struct{}
}

// NewKafkaConsumer joins the group shared by every replica, so each event is
// handled once cluster-wide. Use it for the search index and push notifications.
func NewKafkaConsumer(broker string, dispatcher *Dispatcher, log *zap.Logger) *KafkaConsumer {
	return newKafkaConsumer(sharedReaderConfig(broker), dispatcher, log)
}

// NewBroadcastConsumer reads appointment events in a group of its own, so every
// replica sees every event and can push it to the dashboards connected to it.
func NewBroadcastConsumer(broker, instance string, dispatcher *Dispatcher, log *zap.Logger) *KafkaConsumer {
	return newKafkaConsumer(broadcastReaderConfig(broker, instance), dispatcher, log)
}

func newKafkaConsumer(cfg kafka.ReaderConfig, dispatcher *Dispatcher, log *zap.Logger) *KafkaConsumer {
	return &KafkaConsumer{
		reader:     kafka.NewReader(cfg),
		dispatcher: dispatcher,
		log:        log,
		done:       make(chan struct{}),
	}
}

func sharedReaderConfig(broker string) kafka.ReaderConfig {
	return kafka.ReaderConfig{
		Brokers:     []string{broker},
		GroupID:     consumerGroup,
		GroupTopics: []string{TopicDoctors, TopicAppointments},
		MaxWait:     10 * time.Second,
	}
}

// broadcastReaderConfig starts a fresh instance group at the newest offset;
// dashboards only care about what happens while they are connected.
func broadcastReaderConfig(broker, instance string) kafka.ReaderConfig {
	return kafka.ReaderConfig{
		Brokers:     []string{broker},
		GroupID:     consumerGroup + "-sse-" + instance,
		GroupTopics: []string{TopicAppointments},
		StartOffset: kafka.LastOffset,
		MaxWait:     time.Second,
	}
}

func (c *KafkaConsumer) Start(ctx context.Context) {
	c.log.Info("starting Kafka consumer", zap.String("group", c.reader.Config().GroupID))

	go func() {
		defer close(c.done)
		for {
			msg, err := c.reader.FetchMessage(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
					return
				}
				c.log.Warn("Kafka read error, will retry", zap.Error(err))
				select {
				case <-ctx.Done():
					return
				case <-time.After(5 * time.Second):
				}
				continue
			}

			var event Event
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				c.log.Error("failed to unmarshal Kafka message", zap.String("topic", msg.Topic), zap.Error(err))
			} else if err := c.dispatcher.Handle(ctx, event); err != nil {
				c.log.Warn("event handling failed", zap.String("event", event.Type), zap.Error(err))
			}

			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				c.log.Warn("failed to commit Kafka offset", zap.Error(err))
			}
		}
	}()
}

// Stop closes the reader and waits for the loop to exit.
func (c *KafkaConsumer) Stop() {
	if err := c.reader.Close(); err != nil {
		c.log.Warn("error closing Kafka reader", zap.Error(err))
	}
	<-c.done
}
