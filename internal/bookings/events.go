package bookings

import (
	"context"
	"time"
)

type EventKind string

const (
	EventBookingRequested     EventKind = "booking.requested"
	EventBookingStatusChanged EventKind = "booking.status_changed"
)

// LifecycleEvent is emitted after a lifecycle change has been persisted
type LifecycleEvent struct {
	Kind           EventKind
	Booking        Booking
	PreviousStatus Status
	// CustomMessage is sent verbatim to the guest when non-empty
	CustomMessage string
	OccurredAt    time.Time
}

// PostCommitHook receives lifecycle events once the write is durable.
// Implementations must not block; a returned error is logged and never undoes the change.
type PostCommitHook interface {
	OnBookingEvent(ctx context.Context, event LifecycleEvent) error
}

type noopHook struct{}

func (noopHook) OnBookingEvent(context.Context, LifecycleEvent) error { return nil }
