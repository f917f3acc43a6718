package bookings

import (
	"math"
	"time"
)

// Booking is a stay request submitted from the public booking form
type Booking struct {
	ID             string     `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string     `gorm:"type:varchar(200);not null" json:"name"`
	Email          string     `gorm:"type:varchar(320);not null" json:"email"`
	Guests         int        `gorm:"not null;check:guests > 0" json:"guests"`
	CheckIn        string     `gorm:"type:varchar(10);index;not null" json:"checkIn"`
	CheckOut       string     `gorm:"type:varchar(10);not null" json:"checkOut"`
	Message        string     `gorm:"type:text" json:"message,omitempty"`
	Status         Status     `gorm:"type:varchar(20);index;not null;check:status IN ('PENDING', 'ACCEPTED', 'CANCELLED');default:'PENDING'" json:"status"`
	EstimatedPrice *float64   `json:"estimatedPrice,omitempty"`
	CreatedAt      time.Time  `gorm:"not null" json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	DecidedAt      *time.Time `json:"decidedAt,omitempty"`
}

// TableName sets the table name for Booking
func (Booking) TableName() string {
	return "bookings"
}

func (b *Booking) IsPending() bool {
	return b.Status == StatusPending
}

func (b *Booking) IsAccepted() bool {
	return b.Status == StatusAccepted
}

// BookingListQuery filters the admin booking list
type BookingListQuery struct {
	Status string `form:"status" validate:"omitempty,oneof=PENDING ACCEPTED CANCELLED"`
	Page   int    `form:"page" validate:"omitempty,min=1"`
	Limit  int    `form:"limit" validate:"omitempty,min=1,max=100"`
}

// CalculateTotalPages returns the number of pages for totalCount items
func CalculateTotalPages(totalCount int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(totalCount) / float64(limit)))
}
