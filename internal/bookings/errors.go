package bookings

import (
	"errors"

	"villa/internal/availability"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("booking not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrBusy              = errors.New("availability is being updated, please retry")

	// ErrUnavailableRange is returned when the requested stay overlaps unavailable dates
	ErrUnavailableRange = availability.ErrUnavailableRange
)
