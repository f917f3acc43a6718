package notifications

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotification marks a notification that could not be queued, published or delivered.
// It never reaches an HTTP caller.
var ErrNotification = errors.New("notification failed")

type NotificationType string

const (
	NotificationTypeBookingRequested NotificationType = "BOOKING_REQUESTED"
	NotificationTypeBookingAccepted  NotificationType = "BOOKING_ACCEPTED"
	NotificationTypeBookingCancelled NotificationType = "BOOKING_CANCELLED"
)

type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "PENDING"
	NotificationStatusQueued  NotificationStatus = "QUEUED"
	NotificationStatusSending NotificationStatus = "SENDING"
	NotificationStatusSent    NotificationStatus = "SENT"
	NotificationStatusFailed  NotificationStatus = "FAILED"
)

// EmailNotification is the message exchanged between the dispatcher, the broker and the mailer
type EmailNotification struct {
	ID   uuid.UUID        `json:"id"`
	Type NotificationType `json:"type"`

	RecipientEmail string `json:"recipient_email"`
	RecipientName  string `json:"recipient_name"`

	Subject string `json:"subject"`
	// CustomMessage is delivered verbatim as the plain text body when set
	CustomMessage string            `json:"custom_message,omitempty"`
	TemplateData  map[string]string `json:"template_data"`

	BookingID string `json:"booking_id,omitempty"`

	Status     NotificationStatus `json:"status"`
	RetryCount int                `json:"retry_count"`
	MaxRetries int                `json:"max_retries"`
	LastError  *string            `json:"last_error,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
	SentAt     *time.Time         `json:"sent_at,omitempty"`
}

type NotificationBuilder struct {
	notification *EmailNotification
}

func NewNotificationBuilder() *NotificationBuilder {
	now := time.Now()
	return &NotificationBuilder{
		notification: &EmailNotification{
			ID:           uuid.New(),
			Status:       NotificationStatusPending,
			CreatedAt:    now,
			UpdatedAt:    now,
			MaxRetries:   3,
			TemplateData: make(map[string]string),
		},
	}
}

func (nb *NotificationBuilder) WithType(notType NotificationType) *NotificationBuilder {
	nb.notification.Type = notType
	return nb
}

func (nb *NotificationBuilder) WithRecipient(email, name string) *NotificationBuilder {
	nb.notification.RecipientEmail = email
	nb.notification.RecipientName = name
	return nb
}

func (nb *NotificationBuilder) WithSubject(subject string) *NotificationBuilder {
	nb.notification.Subject = subject
	return nb
}

func (nb *NotificationBuilder) WithCustomMessage(message string) *NotificationBuilder {
	nb.notification.CustomMessage = message
	return nb
}

func (nb *NotificationBuilder) WithTemplateData(data map[string]string) *NotificationBuilder {
	nb.notification.TemplateData = data
	return nb
}

func (nb *NotificationBuilder) WithBookingContext(bookingID string) *NotificationBuilder {
	nb.notification.BookingID = bookingID
	return nb
}

func (nb *NotificationBuilder) WithMaxRetries(maxRetries int) *NotificationBuilder {
	nb.notification.MaxRetries = maxRetries
	return nb
}

func (nb *NotificationBuilder) Build() *EmailNotification {
	return nb.notification
}

// GetPartitionKey keeps every message of one booking on the same partition
func (en *EmailNotification) GetPartitionKey() string {
	if en.BookingID != "" {
		return en.BookingID
	}
	return en.RecipientEmail
}

func (en *EmailNotification) ToJSON() ([]byte, error) {
	return json.Marshal(en)
}

func (en *EmailNotification) MarkSent() {
	now := time.Now()
	en.Status = NotificationStatusSent
	en.SentAt = &now
	en.UpdatedAt = now
}

func (en *EmailNotification) MarkFailed(err error) {
	en.Status = NotificationStatusFailed
	en.UpdatedAt = time.Now()

	errorStr := err.Error()
	en.LastError = &errorStr
}
