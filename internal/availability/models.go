package availability

import (
	"errors"
	"time"
)

var (
	ErrUnavailableRange = errors.New("requested dates are not available")
	ErrInvalidRange     = errors.New("check-out must be after check-in")
	ErrStayTooLong      = errors.New("stay exceeds the maximum number of nights")
)

// DefaultMaxStayNights caps a single stay when no limit is configured
const DefaultMaxStayNights = 90

// Stay is the date footprint of an accepted booking
type Stay struct {
	BookingID string
	CheckIn   string
	CheckOut  string
}

// SeasonalPrice overrides the nightly rate for nights inside [StartDate, EndDate]
type SeasonalPrice struct {
	Name      string  `json:"name" validate:"required,max=100"`
	StartDate string  `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string  `json:"endDate" validate:"required,datetime=2006-01-02"`
	Price     float64 `json:"price" validate:"gte=0"`
}

// Pricing is the slice of site content the engine needs to price a stay
type Pricing struct {
	DefaultPrice   float64         `json:"defaultPrice"`
	SeasonalPrices []SeasonalPrice `json:"seasonalPrices"`
}

// NightlyRate is the price applied to a single night of a stay
type NightlyRate struct {
	Date   string  `json:"date"`
	Price  float64 `json:"price"`
	Season string  `json:"season,omitempty"`
}

// Quote is the priced breakdown of a stay
type Quote struct {
	CheckIn  string        `json:"checkIn"`
	CheckOut string        `json:"checkOut"`
	Nights   int           `json:"nights"`
	Total    float64       `json:"total"`
	Currency string        `json:"currency"`
	Nightly  []NightlyRate `json:"nightly"`
}

type season struct {
	name       string
	start, end time.Time
	price      float64
}
