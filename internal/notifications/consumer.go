package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"villa/pkg/logger"

	"github.com/IBM/sarama"
)

type ConsumerConfig struct {
	Brokers              []string
	GroupID              string
	Topics               []string
	SessionTimeout       time.Duration
	Heartbeat            time.Duration
	MaxProcessingTime    time.Duration
	OffsetOldest         bool
	RetryBackoffDuration time.Duration
}

func DefaultConsumerConfig() *ConsumerConfig {
	return &ConsumerConfig{
		Brokers:              []string{"localhost:9092"},
		GroupID:              "villa-notification-workers",
		Topics:               []string{"villa-notifications"},
		SessionTimeout:       30 * time.Second,
		Heartbeat:            3 * time.Second,
		MaxProcessingTime:    5 * time.Minute,
		OffsetOldest:         true,
		RetryBackoffDuration: time.Second,
	}
}

// KafkaNotificationConsumer reads notifications from Kafka and emails them
type KafkaNotificationConsumer struct {
	consumerGroup sarama.ConsumerGroup
	config        *ConsumerConfig
	emailService  EmailService
	logger        *logger.Logger
}

func NewKafkaNotificationConsumer(config *ConsumerConfig, emailService EmailService) (*KafkaNotificationConsumer, error) {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Consumer.Group.Session.Timeout = config.SessionTimeout
	saramaConfig.Consumer.Group.Heartbeat.Interval = config.Heartbeat
	saramaConfig.Consumer.MaxProcessingTime = config.MaxProcessingTime
	saramaConfig.Consumer.Return.Errors = true
	saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
	saramaConfig.Consumer.Offsets.AutoCommit.Interval = time.Second

	if config.OffsetOldest {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	} else {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	}

	consumerGroup, err := sarama.NewConsumerGroup(config.Brokers, config.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	return &KafkaNotificationConsumer{
		consumerGroup: consumerGroup,
		config:        config,
		emailService:  emailService,
		logger:        logger.GetDefault(),
	}, nil
}

func (c *KafkaNotificationConsumer) Run(ctx context.Context) error {
	c.logger.Info("Kafka notification consumer started", "topics", c.config.Topics, "group", c.config.GroupID)

	go func() {
		for err := range c.consumerGroup.Errors() {
			c.logger.ErrorWithContext(ctx, "Consumer group error", err, nil)
		}
	}()

	handler := &consumerGroupHandler{consumer: c}
	for {
		// Consume returns on every rebalance
		err := c.consumerGroup.Consume(ctx, c.config.Topics, handler)
		if ctx.Err() != nil {
			return nil
		}
		if errors.Is(err, sarama.ErrClosedConsumerGroup) {
			return nil
		}
		if err != nil {
			c.logger.ErrorWithContext(ctx, "Error consuming notifications", err, nil)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(time.Second):
			}
		}
	}
}

func (c *KafkaNotificationConsumer) Close() error {
	if err := c.consumerGroup.Close(); err != nil {
		return fmt.Errorf("failed to close consumer group: %w", err)
	}
	return nil
}

type consumerGroupHandler struct {
	consumer *KafkaNotificationConsumer
}

func (h *consumerGroupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *consumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				return nil
			}
			if err := h.consumer.handle(session.Context(), message.Value); err != nil {
				h.consumer.logger.ErrorWithContext(session.Context(), "Notification not delivered", err, map[string]interface{}{
					"partition": message.Partition,
					"offset":    message.Offset,
				})
			}
			// failed messages are not retried from the log
			session.MarkMessage(message, "")

		case <-session.Context().Done():
			return nil
		}
	}
}

// handleMessage decodes one message and delivers it; shared by the Kafka and RabbitMQ consumers
func handleMessage(ctx context.Context, emailService EmailService, body []byte, backoff time.Duration) error {
	var notification EmailNotification
	if err := json.Unmarshal(body, &notification); err != nil {
		return fmt.Errorf("failed to unmarshal notification: %w", err)
	}
	return deliver(ctx, emailService, &notification, backoff)
}

func (c *KafkaNotificationConsumer) handle(ctx context.Context, body []byte) error {
	return handleMessage(ctx, c.emailService, body, c.config.RetryBackoffDuration)
}
