package content

import (
	"errors"
	"time"

	"villa/internal/availability"

	"gorm.io/datatypes"
)

// MainContentID is the key of the single site content record
const MainContentID = "main"

var ErrValidation = errors.New("validation failed")

type GalleryImage struct {
	URL   string `json:"url" validate:"required,max=2048"`
	Title string `json:"title" validate:"max=200"`
}

// SiteContent holds the editable landing page, manual blocks and pricing
type SiteContent struct {
	ID string `gorm:"type:varchar(32);primaryKey" json:"id"`

	HeroTagline     string `gorm:"type:text" json:"heroTagline"`
	HeroTitle       string `gorm:"type:text" json:"heroTitle"`
	HeroDescription string `gorm:"type:text" json:"heroDescription"`
	HeroImage       string `gorm:"type:text" json:"heroImage"`
	AboutTitle      string `gorm:"type:text" json:"aboutTitle"`
	AboutIntro      string `gorm:"type:text" json:"aboutIntro"`
	AboutDetails    string `gorm:"type:text" json:"aboutDetails"`
	AboutImage      string `gorm:"type:text" json:"aboutImage"`
	ContactEmail    string `gorm:"type:varchar(320)" json:"contactEmail"`
	ContactPhone    string `gorm:"type:varchar(50)" json:"contactPhone"`
	Address         string `gorm:"type:text" json:"address"`

	GalleryImages datatypes.JSONSlice[GalleryImage] `json:"galleryImages"`

	// BlockedDates has set semantics: sorted, never duplicated
	BlockedDates datatypes.JSONSlice[string] `json:"blockedDates"`

	DefaultPrice   float64                                         `gorm:"not null;default:0" json:"defaultPrice"`
	SeasonalPrices datatypes.JSONSlice[availability.SeasonalPrice] `json:"seasonalPrices"`

	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName sets the table name for SiteContent
func (SiteContent) TableName() string {
	return "site_contents"
}

func (c *SiteContent) Pricing() *availability.Pricing {
	seasons := make([]availability.SeasonalPrice, len(c.SeasonalPrices))
	copy(seasons, c.SeasonalPrices)
	return &availability.Pricing{
		DefaultPrice:   c.DefaultPrice,
		SeasonalPrices: seasons,
	}
}

// DefaultSiteContent is written on first read when no record exists yet
func DefaultSiteContent() *SiteContent {
	return &SiteContent{
		ID:              MainContentID,
		HeroTagline:     "Escapada Exclusiva",
		HeroTitle:       "Donde el Lujo Encuentra la Paz",
		HeroDescription: "Desconecta del mundo en nuestra villa privada. Espacios diseñados meticulosamente para una experiencia inolvidable frente al mar.",
		HeroImage:       "https://images.unsplash.com/photo-1510798831971-661eb04b3739?q=80&w=2600&auto=format&fit=crop",
		AboutTitle:      "Un Refugio Diseñado para los Sentidos",
		AboutIntro:      "Con acabados de primera calidad, luz natural abundante y distribución diáfana, cada rincón está pensado para tu confort.",
		AboutDetails:    "Despierta con el sonido de la brisa, disfruta de desayunos en la terraza cubierta y relájate al atardecer en la piscina infinita climatizada.",
		AboutImage:      "https://images.unsplash.com/photo-1600607688969-a5bfcd64bd40?q=80&w=1400&auto=format&fit=crop",
		GalleryImages: datatypes.JSONSlice[GalleryImage]{
			{URL: "https://images.unsplash.com/photo-1510798831971-661eb04b3739?q=80&w=800&auto=format&fit=crop", Title: "Vista Exterior"},
			{URL: "https://images.unsplash.com/photo-1600607688969-a5bfcd64bd40?q=80&w=800&auto=format&fit=crop", Title: "Salón Principal"},
			{URL: "https://images.unsplash.com/photo-1584622650111-993a426fbf0a?q=80&w=800&auto=format&fit=crop", Title: "Piscina Infinita"},
			{URL: "https://images.unsplash.com/photo-1556910103-1c02745aae4d?q=80&w=800&auto=format&fit=crop", Title: "Cocina Gourmet"},
			{URL: "https://images.unsplash.com/photo-1522708323590-d24dbb6b0267?q=80&w=800&auto=format&fit=crop", Title: "Dormitorio Principal"},
		},
		BlockedDates:   datatypes.JSONSlice[string]{},
		DefaultPrice:   0,
		SeasonalPrices: datatypes.JSONSlice[availability.SeasonalPrice]{},
	}
}
