package content

import "villa/internal/availability"

// UpdateContentRequest changes only the fields that are present
type UpdateContentRequest struct {
	HeroTagline     *string `json:"heroTagline,omitempty" validate:"omitempty,max=200"`
	HeroTitle       *string `json:"heroTitle,omitempty" validate:"omitempty,max=500"`
	HeroDescription *string `json:"heroDescription,omitempty" validate:"omitempty,max=5000"`
	HeroImage       *string `json:"heroImage,omitempty" validate:"omitempty,max=2048"`
	AboutTitle      *string `json:"aboutTitle,omitempty" validate:"omitempty,max=500"`
	AboutIntro      *string `json:"aboutIntro,omitempty" validate:"omitempty,max=5000"`
	AboutDetails    *string `json:"aboutDetails,omitempty" validate:"omitempty,max=10000"`
	AboutImage      *string `json:"aboutImage,omitempty" validate:"omitempty,max=2048"`
	ContactEmail    *string `json:"contactEmail,omitempty" validate:"omitempty,email"`
	ContactPhone    *string `json:"contactPhone,omitempty" validate:"omitempty,max=50"`
	Address         *string `json:"address,omitempty" validate:"omitempty,max=500"`

	GalleryImages *[]GalleryImage `json:"galleryImages,omitempty" validate:"omitempty,max=50,dive"`
}

type UpdatePricingRequest struct {
	DefaultPrice   *float64                     `json:"defaultPrice" validate:"required,gte=0"`
	SeasonalPrices []availability.SeasonalPrice `json:"seasonalPrices" validate:"max=100,dive"`
}

type BlockedDateRequest struct {
	Date string `json:"date" binding:"required"`
}

type ReplaceBlockedDatesRequest struct {
	BlockedDates []string `json:"blockedDates"`
}
