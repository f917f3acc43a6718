package availability

import (
	"context"
	"fmt"
	"strings"
	"time"

	"villa/internal/shared/dates"
)

// ContentSource exposes the manual blocks and pricing kept in the site content record
type ContentSource interface {
	BlockedDates(ctx context.Context) ([]string, error)
	Pricing(ctx context.Context) (*Pricing, error)
}

// StaySource exposes the stays of every accepted booking
type StaySource interface {
	AcceptedStays(ctx context.Context) ([]Stay, error)
}

// Service interface defines the contract for availability queries
type Service interface {
	UnavailableDates(ctx context.Context) ([]string, error)
	CheckRange(ctx context.Context, start, end time.Time, excludeBookingID string) error
	Quote(ctx context.Context, start, end time.Time) (*Quote, error)
	CheckStayLength(start, end time.Time) error

	SetMaxStayNights(n int)
}

type service struct {
	content   ContentSource
	stays     StaySource
	currency  string
	maxNights int
}

func NewService(content ContentSource, stays StaySource, currency string) Service {
	if currency == "" {
		currency = "EUR"
	}
	return &service{
		content:   content,
		stays:     stays,
		currency:  currency,
		maxNights: DefaultMaxStayNights,
	}
}

func (s *service) SetMaxStayNights(n int) {
	if n > 0 {
		s.maxNights = n
	}
}

// CheckStayLength rejects empty or inverted ranges and stays longer than the configured maximum.
func (s *service) CheckStayLength(start, end time.Time) error {
	nights := dates.Nights(start, end)
	if nights == 0 {
		return ErrInvalidRange
	}
	if nights > s.maxNights {
		return fmt.Errorf("%w: %d nights requested, at most %d allowed", ErrStayTooLong, nights, s.maxNights)
	}
	return nil
}

// UnavailableDates recomputes the set from current storage on every call.
func (s *service) UnavailableDates(ctx context.Context) ([]string, error) {
	set, err := s.unavailable(ctx, "")
	if err != nil {
		return nil, err
	}
	return set.Sorted(), nil
}

// CheckRange returns ErrUnavailableRange when any date of [start, end] is unavailable.
// The stay length is checked first so no date is enumerated for an oversized range.
// Stays of excludeBookingID are ignored so a booking never conflicts with itself.
func (s *service) CheckRange(ctx context.Context, start, end time.Time, excludeBookingID string) error {
	if err := s.CheckStayLength(start, end); err != nil {
		return err
	}
	set, err := s.unavailable(ctx, excludeBookingID)
	if err != nil {
		return err
	}
	if conflicts := ConflictingDates(start, end, set); len(conflicts) > 0 {
		return fmt.Errorf("%w: %s", ErrUnavailableRange, strings.Join(conflicts, ", "))
	}
	return nil
}

func (s *service) Quote(ctx context.Context, start, end time.Time) (*Quote, error) {
	if err := s.CheckStayLength(start, end); err != nil {
		return nil, err
	}
	pricing, err := s.content.Pricing(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load pricing: %w", err)
	}

	nightly := NightlyRates(start, end, pricing.DefaultPrice, pricing.SeasonalPrices)
	quote := &Quote{
		CheckIn:  dates.Format(start),
		CheckOut: dates.Format(end),
		Nights:   len(nightly),
		Currency: s.currency,
		Nightly:  nightly,
	}
	for _, n := range nightly {
		quote.Total += n.Price
	}
	return quote, nil
}

func (s *service) unavailable(ctx context.Context, excludeBookingID string) (dates.Set, error) {
	blocked, err := s.content.BlockedDates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load blocked dates: %w", err)
	}
	stays, err := s.stays.AcceptedStays(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load accepted bookings: %w", err)
	}
	if excludeBookingID != "" {
		kept := stays[:0:0]
		for _, stay := range stays {
			if stay.BookingID != excludeBookingID {
				kept = append(kept, stay)
			}
		}
		stays = kept
	}
	return ComputeUnavailableDates(blocked, stays), nil
}
