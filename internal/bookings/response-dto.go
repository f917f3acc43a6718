package bookings

// CreateBookingResponse is returned to the public form
type CreateBookingResponse struct {
	Success bool     `json:"success"`
	ID      string   `json:"id"`
	Booking *Booking `json:"booking"`
}

// DeleteBookingResponse reports whether a record was actually removed
type DeleteBookingResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

// PaginatedBookings is the admin dashboard list
type PaginatedBookings struct {
	Bookings   []Booking `json:"bookings"`
	Total      int64     `json:"total"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"total_pages"`
}
