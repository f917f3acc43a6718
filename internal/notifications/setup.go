package notifications

import (
	"errors"
	"fmt"

	"villa/internal/shared/config"
	"villa/pkg/logger"
)

// Pipeline is the notification stack selected by configuration
type Pipeline struct {
	Dispatcher *Dispatcher
	// Consumer is nil when mail is sent straight from the dispatcher
	Consumer Consumer
}

// NewPipeline wires the dispatcher to Kafka, RabbitMQ or direct SMTP delivery
func NewPipeline(cfg *config.Config) (*Pipeline, error) {
	emailService, err := newEmailService(cfg.Email)
	if err != nil {
		return nil, err
	}

	builder := NewMessageBuilder(cfg.Site.Name, cfg.Site.OwnerEmail, cfg.Site.Currency)
	if cfg.Site.OwnerEmail == "" {
		logger.GetDefault().Warn("OWNER_EMAIL is not set, new booking requests will not be emailed")
	}

	n := cfg.Notifications
	switch n.Broker {
	case "kafka":
		producerConfig := DefaultKafkaProducerConfig()
		producerConfig.Brokers = n.KafkaBrokers
		producerConfig.NotificationTopic = n.KafkaTopic
		producer, err := NewKafkaNotificationProducer(producerConfig)
		if err != nil {
			return nil, err
		}

		consumerConfig := DefaultConsumerConfig()
		consumerConfig.Brokers = n.KafkaBrokers
		consumerConfig.Topics = []string{n.KafkaTopic}
		consumerConfig.GroupID = n.KafkaGroupID
		consumer, err := NewKafkaNotificationConsumer(consumerConfig, emailService)
		if err != nil {
			_ = producer.Close()
			return nil, err
		}

		return &Pipeline{
			Dispatcher: NewDispatcher(builder, producer, n.Workers, n.QueueSize),
			Consumer:   consumer,
		}, nil

	case "rabbitmq":
		return &Pipeline{
			Dispatcher: NewDispatcher(builder, NewRabbitMQPublisher(n.RabbitMQURL, n.RabbitMQQueue), n.Workers, n.QueueSize),
			Consumer:   NewRabbitMQConsumer(n.RabbitMQURL, n.RabbitMQQueue, n.Workers*5, emailService),
		}, nil

	case "", "none":
		return &Pipeline{
			Dispatcher: NewDispatcher(builder, NewDirectPublisher(emailService), n.Workers, n.QueueSize),
		}, nil

	default:
		return nil, fmt.Errorf("unknown notifications broker %q", n.Broker)
	}
}

func newEmailService(cfg config.EmailConfig) (EmailService, error) {
	if cfg.SMTPHost == "" {
		logger.GetDefault().Warn("SMTP_HOST is not set, emails will only be logged")
		return NewLogEmailService(), nil
	}
	return NewSMTPEmailService(NewSMTPConfig(cfg))
}

// Close releases the broker connections of both sides
func (p *Pipeline) Close() error {
	var errs []error
	if err := p.Dispatcher.Close(); err != nil {
		errs = append(errs, err)
	}
	if p.Consumer != nil {
		if err := p.Consumer.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
