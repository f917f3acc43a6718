package notifications

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"villa/internal/bookings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmailService struct {
	mu       sync.Mutex
	failures int
	sent     []*EmailNotification
	calls    int
}

func (f *fakeEmailService) SendNotification(_ context.Context, n *EmailNotification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.calls <= f.failures {
		return errors.New("smtp unavailable")
	}
	f.sent = append(f.sent, n)
	return nil
}

func (f *fakeEmailService) SendHTML(context.Context, string, string, string, string) error {
	return nil
}

type fakePublisher struct {
	mu        sync.Mutex
	published []*EmailNotification
	done      chan struct{}
}

func (f *fakePublisher) Publish(_ context.Context, n *EmailNotification) error {
	f.mu.Lock()
	f.published = append(f.published, n)
	f.mu.Unlock()
	if f.done != nil {
		f.done <- struct{}{}
	}
	return nil
}

func (f *fakePublisher) Close() error { return nil }

func sampleBooking(status bookings.Status) bookings.Booking {
	price := 300.0
	return bookings.Booking{
		ID:             "6f1c7d2e-5b8a-4e0f-9c3d-2a1b0e9f8d7c",
		Name:           "Ana García",
		Email:          "ana@example.com",
		Guests:         4,
		CheckIn:        "2025-07-01",
		CheckOut:       "2025-07-04",
		Message:        "Llegamos tarde",
		Status:         status,
		EstimatedPrice: &price,
	}
}

func TestMessageBuilder_FromEvent(t *testing.T) {
	builder := NewMessageBuilder("Villa", "owner@example.com", "EUR")

	t.Run("new request goes to the owner", func(t *testing.T) {
		msgs := builder.FromEvent(bookings.LifecycleEvent{
			Kind:    bookings.EventBookingRequested,
			Booking: sampleBooking(bookings.StatusPending),
		})
		require.Len(t, msgs, 1)
		assert.Equal(t, NotificationTypeBookingRequested, msgs[0].Type)
		assert.Equal(t, "owner@example.com", msgs[0].RecipientEmail)
		assert.Equal(t, "300.00 EUR", msgs[0].TemplateData["estimated_price"])
		assert.Equal(t, "6f1c7d2e-5b8a-4e0f-9c3d-2a1b0e9f8d7c", msgs[0].GetPartitionKey())
	})

	t.Run("no owner address means no email", func(t *testing.T) {
		msgs := NewMessageBuilder("Villa", "", "EUR").FromEvent(bookings.LifecycleEvent{
			Kind:    bookings.EventBookingRequested,
			Booking: sampleBooking(bookings.StatusPending),
		})
		assert.Empty(t, msgs)
	})

	t.Run("decision without custom message is silent", func(t *testing.T) {
		msgs := builder.FromEvent(bookings.LifecycleEvent{
			Kind:           bookings.EventBookingStatusChanged,
			Booking:        sampleBooking(bookings.StatusAccepted),
			PreviousStatus: bookings.StatusPending,
		})
		assert.Empty(t, msgs)
	})

	t.Run("decision with custom message reaches the guest", func(t *testing.T) {
		msgs := builder.FromEvent(bookings.LifecycleEvent{
			Kind:           bookings.EventBookingStatusChanged,
			Booking:        sampleBooking(bookings.StatusCancelled),
			PreviousStatus: bookings.StatusPending,
			CustomMessage:  "Lo sentimos",
		})
		require.Len(t, msgs, 1)
		assert.Equal(t, NotificationTypeBookingCancelled, msgs[0].Type)
		assert.Equal(t, "ana@example.com", msgs[0].RecipientEmail)
		assert.Equal(t, "Lo sentimos", msgs[0].CustomMessage)
	})
}

func TestRenderNotification(t *testing.T) {
	builder := NewMessageBuilder("Villa", "owner@example.com", "EUR")
	msg := builder.FromEvent(bookings.LifecycleEvent{
		Kind:    bookings.EventBookingRequested,
		Booking: sampleBooking(bookings.StatusPending),
	})[0]

	html, text, err := renderNotification(msg)
	require.NoError(t, err)
	assert.Contains(t, html, "Ana García")
	assert.Contains(t, html, "2025-07-01")
	assert.Contains(t, text, "Guests: 4")
	assert.Contains(t, text, "Llegamos tarde")

	custom := NewNotificationBuilder().
		WithType(NotificationTypeBookingAccepted).
		WithCustomMessage("See you <soon>\nBring towels").
		Build()
	html, text, err = renderNotification(custom)
	require.NoError(t, err)
	assert.Equal(t, "See you <soon>\nBring towels", text)
	assert.Contains(t, html, "See you &lt;soon&gt;<br>")
}

func TestBuildMessage(t *testing.T) {
	date := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	msg := string(buildMessage("Villa Señora", "noreply@villa.local", "ana@example.com", "Hola", "<p>hi</p>", "hi", date))

	assert.Contains(t, msg, "From: =?utf-8?q?Villa_Se=C3=B1ora?= <noreply@villa.local>\r\n")
	assert.Contains(t, msg, "To: ana@example.com\r\n")
	assert.Contains(t, msg, "Content-Type: text/plain; charset=UTF-8")
	assert.Contains(t, msg, "Content-Type: text/html; charset=UTF-8")
	assert.Less(t, strings.Index(msg, "text/plain"), strings.Index(msg, "text/html"))
}

func TestDeliver_RetriesThenSucceeds(t *testing.T) {
	email := &fakeEmailService{failures: 2}
	n := NewNotificationBuilder().WithType(NotificationTypeBookingAccepted).WithCustomMessage("ok").Build()

	err := deliver(context.Background(), email, n, time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 3, email.calls)
	assert.Equal(t, NotificationStatusSent, n.Status)
	assert.NotNil(t, n.SentAt)
}

func TestDeliver_GivesUp(t *testing.T) {
	email := &fakeEmailService{failures: 10}
	n := NewNotificationBuilder().WithType(NotificationTypeBookingAccepted).WithMaxRetries(1).Build()

	err := deliver(context.Background(), email, n, time.Millisecond)
	require.ErrorIs(t, err, ErrNotification)
	assert.Equal(t, 2, email.calls)
	assert.Equal(t, NotificationStatusFailed, n.Status)
	require.NotNil(t, n.LastError)
	assert.Equal(t, "smtp unavailable", *n.LastError)
}

func TestDeliver_StopsOnCancel(t *testing.T) {
	email := &fakeEmailService{failures: 10}
	n := NewNotificationBuilder().WithType(NotificationTypeBookingAccepted).Build()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := deliver(ctx, email, n, time.Hour)
	require.ErrorIs(t, err, ErrNotification)
	assert.Equal(t, 1, email.calls)
}

func TestDispatcher_DropsWhenQueueFull(t *testing.T) {
	publisher := &fakePublisher{}
	d := NewDispatcher(NewMessageBuilder("Villa", "owner@example.com", "EUR"), publisher, 1, 1)
	event := bookings.LifecycleEvent{Kind: bookings.EventBookingRequested, Booking: sampleBooking(bookings.StatusPending)}

	// no workers running, the second message has nowhere to go
	require.NoError(t, d.OnBookingEvent(context.Background(), event))
	err := d.OnBookingEvent(context.Background(), event)
	assert.ErrorIs(t, err, ErrNotification)
	assert.Len(t, d.queue, 1)
}

func TestDispatcher_WorkersPublish(t *testing.T) {
	publisher := &fakePublisher{done: make(chan struct{}, 4)}
	d := NewDispatcher(NewMessageBuilder("Villa", "owner@example.com", "EUR"), publisher, 2, 10)

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		_ = d.Run(ctx)
		close(stopped)
	}()

	event := bookings.LifecycleEvent{Kind: bookings.EventBookingRequested, Booking: sampleBooking(bookings.StatusPending)}
	require.NoError(t, d.OnBookingEvent(context.Background(), event))
	require.NoError(t, d.OnBookingEvent(context.Background(), event))

	for i := 0; i < 2; i++ {
		select {
		case <-publisher.done:
		case <-time.After(2 * time.Second):
			t.Fatal("notification was not published")
		}
	}

	cancel()
	<-stopped
	assert.Len(t, publisher.published, 2)
}
