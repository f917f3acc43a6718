package notifications

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"villa/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

// RabbitMQPublisher publishes notifications to a durable queue on the default exchange
type RabbitMQPublisher struct {
	url   string
	queue string

	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *logger.Logger
}

func NewRabbitMQPublisher(url, queue string) *RabbitMQPublisher {
	return &RabbitMQPublisher{url: url, queue: queue, logger: logger.GetDefault()}
}

// ensureChannel reconnects lazily after a broker restart
func (p *RabbitMQPublisher) ensureChannel() (*amqp.Channel, error) {
	if p.channel != nil && !p.channel.IsClosed() {
		return p.channel, nil
	}
	if p.conn == nil || p.conn.IsClosed() {
		conn, err := amqp.Dial(p.url)
		if err != nil {
			return nil, fmt.Errorf("rabbitmq dial failed: %w", err)
		}
		p.conn = conn
	}

	ch, err := p.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("rabbitmq channel open failed: %w", err)
	}
	if _, err := declareQueue(ch, p.queue); err != nil {
		_ = ch.Close()
		return nil, err
	}
	p.channel = ch
	return ch, nil
}

func (p *RabbitMQPublisher) Publish(ctx context.Context, notification *EmailNotification) error {
	notification.Status = NotificationStatusQueued
	notification.UpdatedAt = time.Now()

	body, err := notification.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.ensureChannel()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotification, err)
	}

	err = ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    notification.ID.String(),
			Type:         string(notification.Type),
			Timestamp:    time.Now().UTC(),
			Body:         body,
		})
	if err != nil {
		notification.MarkFailed(err)
		return fmt.Errorf("%w: rabbitmq publish failed: %v", ErrNotification, err)
	}
	return nil
}

func (p *RabbitMQPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	if p.channel != nil {
		errs = append(errs, p.channel.Close())
	}
	if p.conn != nil {
		errs = append(errs, p.conn.Close())
	}
	p.channel, p.conn = nil, nil
	return errors.Join(errs...)
}

// RabbitMQConsumer reads the notification queue and emails each message
type RabbitMQConsumer struct {
	url          string
	queue        string
	prefetch     int
	emailService EmailService
	backoff      time.Duration
	logger       *logger.Logger

	mu   sync.Mutex
	conn *amqp.Connection
}

func NewRabbitMQConsumer(url, queue string, prefetch int, emailService EmailService) *RabbitMQConsumer {
	if prefetch <= 0 {
		prefetch = 10
	}
	return &RabbitMQConsumer{
		url:          url,
		queue:        queue,
		prefetch:     prefetch,
		emailService: emailService,
		backoff:      time.Second,
		logger:       logger.GetDefault(),
	}
}

// Run keeps a connection open, reconnecting with backoff, until ctx is cancelled
func (c *RabbitMQConsumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(c.url)
		if err != nil {
			c.logger.WarnContext(ctx, "RabbitMQ dial failed, retrying", "error", err.Error(), "backoff", backoff.String())
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(backoff):
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		c.mu.Lock()
		c.conn = conn
		c.mu.Unlock()

		err = c.consumeLoop(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return nil
		}
		c.logger.WarnContext(ctx, "RabbitMQ consume loop ended, reconnecting", "error", fmt.Sprint(err))
	}
}

func (c *RabbitMQConsumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(c.prefetch, 0, false); err != nil {
		c.logger.WarnContext(ctx, "RabbitMQ set QoS failed", "error", err.Error())
	}
	if _, err := declareQueue(ch, c.queue); err != nil {
		return err
	}

	deliveries, err := ch.ConsumeWithContext(ctx, c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range deliveries {
		if err := handleMessage(ctx, c.emailService, d.Body, c.backoff); err != nil {
			c.logger.ErrorWithContext(ctx, "Notification not delivered", err, map[string]interface{}{"message_id": d.MessageId})
			_ = d.Nack(false, false) // dropped, never requeued
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

func (c *RabbitMQConsumer) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil && !c.conn.IsClosed() {
		return c.conn.Close()
	}
	return nil
}

func declareQueue(ch *amqp.Channel, name string) (amqp.Queue, error) {
	q, err := ch.QueueDeclare(
		name,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		return q, fmt.Errorf("queue declare failed: %w", err)
	}
	return q, nil
}
