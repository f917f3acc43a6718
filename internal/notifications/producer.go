package notifications

import (
	"context"
	"fmt"
	"time"

	"villa/pkg/logger"

	"github.com/IBM/sarama"
)

type KafkaProducerConfig struct {
	Brokers           []string
	NotificationTopic string
	RetryMax          int
	Timeout           time.Duration
	RequiredAcks      sarama.RequiredAcks
	CompressionType   sarama.CompressionCodec
	IdempotentWrites  bool
	MaxMessageBytes   int
}

func DefaultKafkaProducerConfig() *KafkaProducerConfig {
	return &KafkaProducerConfig{
		Brokers:           []string{"localhost:9092"},
		NotificationTopic: "villa-notifications",
		RetryMax:          3,
		Timeout:           10 * time.Second,
		RequiredAcks:      sarama.WaitForAll,
		CompressionType:   sarama.CompressionSnappy,
		IdempotentWrites:  true,
		MaxMessageBytes:   1000000,
	}
}

// KafkaNotificationProducer publishes notifications to a Kafka topic
type KafkaNotificationProducer struct {
	producer sarama.SyncProducer
	config   *KafkaProducerConfig
	logger   *logger.Logger
}

func NewKafkaNotificationProducer(config *KafkaProducerConfig) (*KafkaNotificationProducer, error) {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = config.RequiredAcks
	saramaConfig.Producer.Compression = config.CompressionType
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = config.Timeout
	saramaConfig.Producer.Idempotent = config.IdempotentWrites
	saramaConfig.Producer.MaxMessageBytes = config.MaxMessageBytes

	// idempotent producers require a single in-flight request
	if config.IdempotentWrites {
		saramaConfig.Net.MaxOpenRequests = 1
	}

	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return &KafkaNotificationProducer{
		producer: producer,
		config:   config,
		logger:   logger.GetDefault(),
	}, nil
}

func (p *KafkaNotificationProducer) Publish(ctx context.Context, notification *EmailNotification) error {
	notification.Status = NotificationStatusQueued
	notification.UpdatedAt = time.Now()

	messageBytes, err := notification.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic:     p.config.NotificationTopic,
		Key:       sarama.StringEncoder(notification.GetPartitionKey()),
		Value:     sarama.ByteEncoder(messageBytes),
		Headers:   createHeaders(notification),
		Timestamp: notification.CreatedAt,
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		notification.MarkFailed(err)
		return fmt.Errorf("%w: failed to send notification to Kafka: %v", ErrNotification, err)
	}

	p.logger.DebugWithContext(ctx, "Notification published to Kafka", map[string]interface{}{
		"topic":     p.config.NotificationTopic,
		"partition": partition,
		"offset":    offset,
		"type":      string(notification.Type),
	})
	return nil
}

func createHeaders(notification *EmailNotification) []sarama.RecordHeader {
	headers := []sarama.RecordHeader{
		{Key: []byte("notification_id"), Value: []byte(notification.ID.String())},
		{Key: []byte("notification_type"), Value: []byte(notification.Type)},
	}
	if notification.BookingID != "" {
		headers = append(headers, sarama.RecordHeader{
			Key:   []byte("booking_id"),
			Value: []byte(notification.BookingID),
		})
	}
	return headers
}

func (p *KafkaNotificationProducer) Close() error {
	if err := p.producer.Close(); err != nil {
		return fmt.Errorf("failed to close Kafka producer: %w", err)
	}
	return nil
}
