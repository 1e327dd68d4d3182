package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/rentredi/internal/application/service"
	"github.com/khoahotran/rentredi/internal/config"
	"github.com/khoahotran/rentredi/pkg/logger"
)

const (
	TopicUserEvents = "user.events"

	UserAuditGroup = "user-audit-group"
)

type KafkaProducerClient struct {
	UserEventsWriter *kafka.Writer
	logger           logger.Logger
}

func NewKafkaProducerClient(cfg config.Config, log logger.Logger) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	topic := cfg.Kafka.Topic
	if topic == "" {
		topic = TopicUserEvents
	}

	// writer 'user.events'
	userWriter := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}

	log.Info("Initialize Kafka Producers successfully.", zap.Strings("brokers", brokers), zap.String("topic", topic))

	return &KafkaProducerClient{UserEventsWriter: userWriter, logger: log}, nil
}

// PublishUserEvent writes e keyed by user id, so all changes of a user land on one partition.
func (c *KafkaProducerClient) PublishUserEvent(ctx context.Context, e service.UserEvent) error {
	value, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal user event: %w", err)
	}

	err = c.UserEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(e.UserID),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("write user event: %w", err)
	}

	c.logger.Debug("Published user event", zap.String("event_type", string(e.EventType)), zap.String("user_id", e.UserID))
	return nil
}

func (c *KafkaProducerClient) Close() {
	if c.UserEventsWriter != nil {
		c.UserEventsWriter.Close()
	}
	c.logger.Info("Closed Kafka Producers")
}

// NoopPublisher drops events. It stands in when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishUserEvent(context.Context, service.UserEvent) error { return nil }

var (
	_ service.EventPublisher = (*KafkaProducerClient)(nil)
	_ service.EventPublisher = NoopPublisher{}
)

// NewPublisher returns a Kafka publisher when brokers are configured and a no-op one otherwise.
// The returned close function is always safe to call.
func NewPublisher(cfg config.Config, log logger.Logger) (service.EventPublisher, func(), error) {
	if len(cfg.Kafka.Brokers) == 0 {
		log.Warn("KAFKA_BROKERS is not set. User events will not be published.")
		return NoopPublisher{}, func() {}, nil
	}
	producer, err := NewKafkaProducerClient(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return producer, producer.Close, nil
}
