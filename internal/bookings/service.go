package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"villa/internal/availability"
	"villa/internal/shared/dates"
	"villa/pkg/logger"
	"villa/pkg/metrics"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// timeNow is a variable for testability
var timeNow = time.Now

// Service interface defines the contract for booking business logic
type Service interface {
	CreateBooking(ctx context.Context, req CreateBookingRequest) (*Booking, error)
	GetBooking(ctx context.Context, id string) (*Booking, error)
	ListBookings(ctx context.Context, query BookingListQuery) (*PaginatedBookings, error)
	SetBookingStatus(ctx context.Context, id string, status Status, customMessage string) (*Booking, error)
	DeleteBooking(ctx context.Context, id string) (bool, error)

	SetAvailabilityLock(lock AvailabilityLock)
	SetPostCommitHook(hook PostCommitHook)
}

type service struct {
	repo         Repository
	availability availability.Service
	lock         AvailabilityLock
	hook         PostCommitHook
	validate     *validator.Validate
	location     *time.Location
	logger       *logger.Logger
}

func NewService(repo Repository, availabilityService availability.Service, location *time.Location) Service {
	if location == nil {
		location = time.UTC
	}
	return &service{
		repo:         repo,
		availability: availabilityService,
		lock:         NewLocalLock(),
		hook:         noopHook{},
		validate:     validator.New(),
		location:     location,
		logger:       logger.GetDefault(),
	}
}

func (s *service) SetAvailabilityLock(lock AvailabilityLock) {
	if lock != nil {
		s.lock = lock
	}
}

func (s *service) SetPostCommitHook(hook PostCommitHook) {
	if hook != nil {
		s.hook = hook
	}
}

func (s *service) CreateBooking(ctx context.Context, req CreateBookingRequest) (*Booking, error) {
	req.normalize()
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	checkIn, err := dates.Parse(req.CheckIn)
	if err != nil {
		return nil, fmt.Errorf("%w: checkIn: %v", ErrValidation, err)
	}
	checkOut, err := dates.Parse(req.CheckOut)
	if err != nil {
		return nil, fmt.Errorf("%w: checkOut: %v", ErrValidation, err)
	}
	if !checkIn.Before(checkOut) {
		return nil, fmt.Errorf("%w: checkOut must be after checkIn", ErrValidation)
	}
	if err := s.availability.CheckStayLength(checkIn, checkOut); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	now := timeNow()
	if checkIn.Before(dates.Today(now, s.location)) {
		return nil, fmt.Errorf("%w: checkIn cannot be in the past", ErrValidation)
	}

	release, err := s.lock.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	if err := s.availability.CheckRange(ctx, checkIn, checkOut, ""); err != nil {
		if errors.Is(err, ErrUnavailableRange) {
			metrics.BookingConflicts.Inc()
		}
		return nil, err
	}

	booking := &Booking{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		Guests:    req.Guests,
		CheckIn:   dates.Format(checkIn),
		CheckOut:  dates.Format(checkOut),
		Message:   req.Message,
		Status:    StatusPending,
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}

	if quote, err := s.availability.Quote(ctx, checkIn, checkOut); err == nil {
		booking.EstimatedPrice = &quote.Total
	} else {
		s.logger.WarnContext(ctx, "Could not price booking request", "error", err.Error())
	}

	if err := s.repo.CreateBooking(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	metrics.BookingsCreated.Inc()
	s.logger.LogBookingCreated(ctx, booking.ID, booking.CheckIn, booking.CheckOut)
	s.afterCommit(ctx, LifecycleEvent{
		Kind:       EventBookingRequested,
		Booking:    *booking,
		OccurredAt: now,
	})

	return booking, nil
}

func (s *service) GetBooking(ctx context.Context, id string) (*Booking, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	return s.repo.GetBookingByID(ctx, id)
}

func (s *service) ListBookings(ctx context.Context, query BookingListQuery) (*PaginatedBookings, error) {
	query.Status = strings.ToUpper(strings.TrimSpace(query.Status))
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 20
	}
	if err := s.validate.Struct(query); err != nil {
		return nil, validationError(err)
	}

	bookings, total, err := s.repo.ListBookings(ctx, query)
	if err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []Booking{}
	}

	return &PaginatedBookings{
		Bookings:   bookings,
		Total:      total,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: CalculateTotalPages(total, query.Limit),
	}, nil
}

// SetBookingStatus records an admin decision on a PENDING booking.
// Accepting re-checks the stay against every other accepted booking and manual block.
func (s *service) SetBookingStatus(ctx context.Context, id string, status Status, customMessage string) (*Booking, error) {
	if !status.IsDecision() {
		return nil, fmt.Errorf("%w: status must be ACCEPTED or CANCELLED", ErrValidation)
	}

	booking, err := s.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if !booking.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, status)
	}

	if status == StatusAccepted {
		release, err := s.lock.Acquire(ctx)
		if err != nil {
			return nil, err
		}
		defer release()

		checkIn, errIn := dates.Parse(booking.CheckIn)
		checkOut, errOut := dates.Parse(booking.CheckOut)
		if errIn != nil || errOut != nil {
			return nil, fmt.Errorf("%w: stored stay dates are malformed", ErrValidation)
		}
		if err := s.availability.CheckStayLength(checkIn, checkOut); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrValidation, err)
		}
		if err := s.availability.CheckRange(ctx, checkIn, checkOut, booking.ID); err != nil {
			if errors.Is(err, ErrUnavailableRange) {
				metrics.BookingConflicts.Inc()
			}
			return nil, err
		}
	}

	now := timeNow()
	updated, err := s.repo.TransitionStatus(ctx, booking.ID, StatusPending, status, now.UTC())
	if err != nil {
		return nil, err
	}
	if !updated {
		// lost a race with another decision or a delete
		current, err := s.repo.GetBookingByID(ctx, booking.ID)
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, status)
	}

	// a blank message means none; anything else goes out exactly as typed
	if strings.TrimSpace(customMessage) == "" {
		customMessage = ""
	}

	previous := booking.Status
	decidedAt := now.UTC()
	booking.Status = status
	booking.DecidedAt = &decidedAt
	booking.UpdatedAt = decidedAt

	metrics.BookingDecisions.WithLabelValues(string(status)).Inc()
	s.logger.LogBookingStatusChanged(ctx, booking.ID, string(previous), string(status))
	s.afterCommit(ctx, LifecycleEvent{
		Kind:           EventBookingStatusChanged,
		Booking:        *booking,
		PreviousStatus: previous,
		CustomMessage:  customMessage,
		OccurredAt:     now,
	})

	return booking, nil
}

// DeleteBooking reports whether a record existed. Deleting an unknown id is not an error.
func (s *service) DeleteBooking(ctx context.Context, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		s.logger.LogBookingDeleted(ctx, id, false)
		return false, nil
	}
	removed, err := s.repo.DeleteBooking(ctx, id)
	if err != nil {
		return false, err
	}
	s.logger.LogBookingDeleted(ctx, id, removed)
	return removed, nil
}

// afterCommit hands the event to the hook. Failures never reach the caller.
func (s *service) afterCommit(ctx context.Context, event LifecycleEvent) {
	if err := s.hook.OnBookingEvent(ctx, event); err != nil {
		metrics.NotificationsFailed.WithLabelValues(string(event.Kind)).Inc()
		s.logger.LogNotificationFailed(ctx, string(event.Kind), event.Booking.Email, err)
	}
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeField(fe))
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(msgs, "; "))
}

func describeField(fe validator.FieldError) string {
	field := fe.Field()
	if len(field) > 0 {
		field = strings.ToLower(field[:1]) + field[1:]
	}
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "datetime":
		return field + " must be a date in YYYY-MM-DD format"
	case "gte", "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte", "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
