package notifications

import (
	"fmt"
	"strconv"

	"villa/internal/bookings"
)

// MessageBuilder turns booking lifecycle events into outgoing emails
type MessageBuilder struct {
	siteName   string
	ownerEmail string
	currency   string
}

func NewMessageBuilder(siteName, ownerEmail, currency string) *MessageBuilder {
	return &MessageBuilder{
		siteName:   siteName,
		ownerEmail: ownerEmail,
		currency:   currency,
	}
}

// FromEvent returns the emails an event should produce, possibly none.
// New requests go to the owner; decisions reach the guest only with a custom message.
func (b *MessageBuilder) FromEvent(event bookings.LifecycleEvent) []*EmailNotification {
	booking := event.Booking

	switch event.Kind {
	case bookings.EventBookingRequested:
		if b.ownerEmail == "" {
			return nil
		}
		return []*EmailNotification{
			NewNotificationBuilder().
				WithType(NotificationTypeBookingRequested).
				WithRecipient(b.ownerEmail, b.siteName).
				WithSubject(fmt.Sprintf("New booking request from %s (%s to %s)", booking.Name, booking.CheckIn, booking.CheckOut)).
				WithBookingContext(booking.ID).
				WithTemplateData(b.bookingData(booking)).
				Build(),
		}

	case bookings.EventBookingStatusChanged:
		if event.CustomMessage == "" || booking.Email == "" {
			return nil
		}
		notType := NotificationTypeBookingCancelled
		subject := fmt.Sprintf("Update on your booking at %s", b.siteName)
		if booking.Status == bookings.StatusAccepted {
			notType = NotificationTypeBookingAccepted
			subject = fmt.Sprintf("Your stay at %s is confirmed", b.siteName)
		}
		return []*EmailNotification{
			NewNotificationBuilder().
				WithType(notType).
				WithRecipient(booking.Email, booking.Name).
				WithSubject(subject).
				WithCustomMessage(event.CustomMessage).
				WithBookingContext(booking.ID).
				WithTemplateData(b.bookingData(booking)).
				Build(),
		}
	}
	return nil
}

func (b *MessageBuilder) bookingData(booking bookings.Booking) map[string]string {
	data := map[string]string{
		"site_name":  b.siteName,
		"booking_id": booking.ID,
		"name":       booking.Name,
		"email":      booking.Email,
		"guests":     strconv.Itoa(booking.Guests),
		"check_in":   booking.CheckIn,
		"check_out":  booking.CheckOut,
		"status":     string(booking.Status),
		"message":    booking.Message,
	}
	if booking.EstimatedPrice != nil {
		data["estimated_price"] = fmt.Sprintf("%.2f %s", *booking.EstimatedPrice, b.currency)
	}
	return data
}
