package notifications

import (
	"context"
	"fmt"
	"sync"
	"time"

	"villa/internal/bookings"
	"villa/pkg/logger"
	"villa/pkg/metrics"
)

const deliveryTimeout = 2 * time.Minute

// Dispatcher is the booking post-commit hook. It queues emails without blocking
// and background workers hand them to the publisher.
type Dispatcher struct {
	builder   *MessageBuilder
	publisher Publisher
	queue     chan *EmailNotification
	workers   int
	logger    *logger.Logger
	wg        sync.WaitGroup
}

var _ bookings.PostCommitHook = (*Dispatcher)(nil)

func NewDispatcher(builder *MessageBuilder, publisher Publisher, workers, queueSize int) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 100
	}
	return &Dispatcher{
		builder:   builder,
		publisher: publisher,
		queue:     make(chan *EmailNotification, queueSize),
		workers:   workers,
		logger:    logger.GetDefault(),
	}
}

// OnBookingEvent never blocks; a full queue drops the message and reports it
func (d *Dispatcher) OnBookingEvent(ctx context.Context, event bookings.LifecycleEvent) error {
	var dropped int
	for _, notification := range d.builder.FromEvent(event) {
		select {
		case d.queue <- notification:
		default:
			dropped++
			metrics.NotificationsDropped.Inc()
			d.logger.WarnContext(ctx, "Notification queue full, dropping message",
				"type", string(notification.Type),
				"booking_id", notification.BookingID,
			)
		}
	}
	if dropped > 0 {
		return fmt.Errorf("%w: queue full, dropped %d message(s)", ErrNotification, dropped)
	}
	return nil
}

// Run starts the workers and blocks until ctx is cancelled and they have returned
func (d *Dispatcher) Run(ctx context.Context) error {
	d.logger.Info("Notification dispatcher started", "workers", d.workers)
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(ctx, i)
	}
	d.wg.Wait()

	if pending := len(d.queue); pending > 0 {
		d.logger.Warn("Notification dispatcher stopped with queued messages", "pending", pending)
	}
	return nil
}

func (d *Dispatcher) worker(ctx context.Context, id int) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case notification := <-d.queue:
			d.publish(notification, id)
		}
	}
}

func (d *Dispatcher) publish(notification *EmailNotification, workerID int) {
	// a request context is long gone by now
	ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
	defer cancel()

	if err := d.publisher.Publish(ctx, notification); err != nil {
		d.logger.LogNotificationFailed(ctx, string(notification.Type), notification.RecipientEmail, err)
		return
	}
	d.logger.DebugWithContext(ctx, "Notification dispatched", map[string]interface{}{
		"worker":          workerID,
		"notification_id": notification.ID.String(),
		"type":            string(notification.Type),
	})
}

func (d *Dispatcher) Close() error {
	return d.publisher.Close()
}
