package bookings

import "strings"

// CreateBookingRequest is the public booking form payload
type CreateBookingRequest struct {
	Name     string `json:"name" binding:"required" validate:"required,max=200"`
	Email    string `json:"email" binding:"required" validate:"required,email,max=320"`
	Guests   int    `json:"guests" binding:"required" validate:"required,gte=1,lte=50"`
	CheckIn  string `json:"checkIn" binding:"required" validate:"required,datetime=2006-01-02"`
	CheckOut string `json:"checkOut" binding:"required" validate:"required,datetime=2006-01-02"`
	Message  string `json:"message,omitempty" validate:"max=4000"`
}

func (r *CreateBookingRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.CheckIn = strings.TrimSpace(r.CheckIn)
	r.CheckOut = strings.TrimSpace(r.CheckOut)
	r.Message = strings.TrimSpace(r.Message)
}

// UpdateStatusRequest is the admin decision payload
type UpdateStatusRequest struct {
	Status             Status `json:"status" binding:"required"`
	CustomEmailMessage string `json:"customEmailMessage,omitempty" validate:"max=10000"`
}
