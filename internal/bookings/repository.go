package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"villa/internal/availability"

	"gorm.io/gorm"
)

type Repository interface {
	CreateBooking(ctx context.Context, booking *Booking) error
	GetBookingByID(ctx context.Context, id string) (*Booking, error)
	ListBookings(ctx context.Context, query BookingListQuery) ([]Booking, int64, error)

	// TransitionStatus moves a booking from one status to another only if it is
	// still in the expected status. It reports false when nothing was updated.
	TransitionStatus(ctx context.Context, id string, from, to Status, decidedAt time.Time) (bool, error)
	DeleteBooking(ctx context.Context, id string) (bool, error)

	// AcceptedStays feeds the availability engine
	AcceptedStays(ctx context.Context) ([]availability.Stay, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateBooking(ctx context.Context, booking *Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *repository) GetBookingByID(ctx context.Context, id string) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) ListBookings(ctx context.Context, query BookingListQuery) ([]Booking, int64, error) {
	var bookings []Booking
	var total int64

	db := r.db.WithContext(ctx).Model(&Booking{})
	if query.Status != "" {
		db = db.Where("status = ?", query.Status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	offset := (query.Page - 1) * query.Limit
	err := db.Order("created_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&bookings).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}

	return bookings, total, nil
}

func (r *repository) TransitionStatus(ctx context.Context, id string, from, to Status, decidedAt time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status":     to,
			"decided_at": decidedAt,
			"updated_at": decidedAt,
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to update booking status: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (r *repository) DeleteBooking(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Booking{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete booking: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *repository) AcceptedStays(ctx context.Context) ([]availability.Stay, error) {
	var rows []struct {
		ID       string
		CheckIn  string
		CheckOut string
	}
	err := r.db.WithContext(ctx).
		Model(&Booking{}).
		Select("id, check_in, check_out").
		Where("status = ?", StatusAccepted).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load accepted bookings: %w", err)
	}

	stays := make([]availability.Stay, 0, len(rows))
	for _, row := range rows {
		stays = append(stays, availability.Stay{
			BookingID: row.ID,
			CheckIn:   row.CheckIn,
			CheckOut:  row.CheckOut,
		})
	}
	return stays, nil
}
