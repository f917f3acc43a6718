package notifications

import (
	"context"
	"fmt"
	"time"

	"villa/pkg/logger"
	"villa/pkg/metrics"
)

// Publisher hands a notification to its transport
type Publisher interface {
	Publish(ctx context.Context, notification *EmailNotification) error
	Close() error
}

// Consumer drains a broker and delivers each notification by email.
// Run blocks until ctx is cancelled.
type Consumer interface {
	Run(ctx context.Context) error
	Close() error
}

// DirectPublisher sends through the email service without a broker
type DirectPublisher struct {
	emailService EmailService
	backoff      time.Duration
}

func NewDirectPublisher(emailService EmailService) *DirectPublisher {
	return &DirectPublisher{emailService: emailService, backoff: time.Second}
}

func (p *DirectPublisher) Publish(ctx context.Context, notification *EmailNotification) error {
	return deliver(ctx, p.emailService, notification, p.backoff)
}

func (p *DirectPublisher) Close() error { return nil }

// deliver sends with exponential backoff and records the outcome
func deliver(ctx context.Context, emailService EmailService, notification *EmailNotification, backoff time.Duration) error {
	notification.Status = NotificationStatusSending
	maxRetries := notification.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	var err error
retry:
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err = emailService.SendNotification(ctx, notification); err == nil {
			notification.MarkSent()
			metrics.NotificationsSent.WithLabelValues(string(notification.Type)).Inc()
			return nil
		}
		notification.RetryCount = attempt

		if attempt == maxRetries {
			break
		}
		delay := backoff * time.Duration(1<<attempt)
		logger.GetDefault().DebugWithContext(ctx, "Retrying notification", map[string]interface{}{
			"notification_id": notification.ID.String(),
			"attempt":         attempt + 1,
			"delay":           delay.String(),
		})

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			err = ctx.Err()
			break retry
		}
	}

	notification.MarkFailed(err)
	metrics.NotificationsFailed.WithLabelValues(string(notification.Type)).Inc()
	return fmt.Errorf("%w: %s to %s: %v", ErrNotification, notification.Type, notification.RecipientEmail, err)
}
