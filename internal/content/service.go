package content

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"villa/internal/availability"
	"villa/internal/shared/constants"
	"villa/internal/shared/dates"
	"villa/pkg/cache"
	"villa/pkg/logger"
	"villa/pkg/metrics"

	"github.com/go-playground/validator/v10"
)

// Service interface defines the contract for site content and manual blocks.
// It also serves as the availability.ContentSource, always reading from storage.
type Service interface {
	GetContent(ctx context.Context) (*ContentResponse, error)
	UpdateContent(ctx context.Context, req UpdateContentRequest) (*SiteContent, error)
	UpdatePricing(ctx context.Context, req UpdatePricingRequest) (*SiteContent, error)

	AddBlockedDate(ctx context.Context, date string) (bool, error)
	RemoveBlockedDate(ctx context.Context, date string) (bool, error)
	ReplaceBlockedDates(ctx context.Context, values []string) ([]string, error)

	BlockedDates(ctx context.Context) ([]string, error)
	Pricing(ctx context.Context) (*availability.Pricing, error)

	SetCacheService(cacheService cache.Service, ttl time.Duration)
}

type service struct {
	repo     Repository
	cache    cache.Service
	cacheTTL time.Duration
	validate *validator.Validate
	logger   *logger.Logger
}

func NewService(repo Repository) Service {
	return &service{
		repo:     repo,
		cacheTTL: constants.TTL_CONTENT_PUBLIC,
		validate: validator.New(),
		logger:   logger.GetDefault(),
	}
}

func (s *service) SetCacheService(cacheService cache.Service, ttl time.Duration) {
	s.cache = cacheService
	if ttl > 0 {
		s.cacheTTL = ttl
	}
}

func (s *service) GetContent(ctx context.Context) (*ContentResponse, error) {
	if s.cache == nil {
		return s.loadContent(ctx)
	}

	var resp ContentResponse
	err := s.cache.GetOrSet(ctx, constants.CACHE_KEY_CONTENT_PUBLIC, s.cacheTTL, func() (interface{}, error) {
		return s.loadContent(ctx)
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *service) loadContent(ctx context.Context) (*ContentResponse, error) {
	c, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	return toContentResponse(c), nil
}

func (s *service) UpdateContent(ctx context.Context, req UpdateContentRequest) (*SiteContent, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	updated, changed, err := s.repo.Mutate(ctx, func(c *SiteContent) (bool, error) {
		applyString(&c.HeroTagline, req.HeroTagline)
		applyString(&c.HeroTitle, req.HeroTitle)
		applyString(&c.HeroDescription, req.HeroDescription)
		applyString(&c.HeroImage, req.HeroImage)
		applyString(&c.AboutTitle, req.AboutTitle)
		applyString(&c.AboutIntro, req.AboutIntro)
		applyString(&c.AboutDetails, req.AboutDetails)
		applyString(&c.AboutImage, req.AboutImage)
		applyString(&c.ContactEmail, req.ContactEmail)
		applyString(&c.ContactPhone, req.ContactPhone)
		applyString(&c.Address, req.Address)
		if req.GalleryImages != nil {
			c.GalleryImages = append(c.GalleryImages[:0:0], *req.GalleryImages...)
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		s.invalidate(ctx)
	}
	return updated, nil
}

func (s *service) UpdatePricing(ctx context.Context, req UpdatePricingRequest) (*SiteContent, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	for i, season := range req.SeasonalPrices {
		start, errStart := dates.Parse(season.StartDate)
		end, errEnd := dates.Parse(season.EndDate)
		if errStart != nil || errEnd != nil {
			return nil, fmt.Errorf("%w: season %d has invalid dates", ErrValidation, i)
		}
		if end.Before(start) {
			return nil, fmt.Errorf("%w: season %q ends before it starts", ErrValidation, season.Name)
		}
	}

	updated, _, err := s.repo.Mutate(ctx, func(c *SiteContent) (bool, error) {
		c.DefaultPrice = *req.DefaultPrice
		c.SeasonalPrices = append(c.SeasonalPrices[:0:0], req.SeasonalPrices...)
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return updated, nil
}

// AddBlockedDate reports false when the date was already blocked
func (s *service) AddBlockedDate(ctx context.Context, date string) (bool, error) {
	day, err := parseDate(date)
	if err != nil {
		return false, err
	}

	_, added, err := s.repo.Mutate(ctx, func(c *SiteContent) (bool, error) {
		set := dates.NewSet(c.BlockedDates...)
		if set.Has(day) {
			return false, nil
		}
		set.Add(day)
		c.BlockedDates = set.Sorted()
		return true, nil
	})
	if err != nil {
		return false, err
	}

	if added {
		metrics.BlockedDateChanges.WithLabelValues("add").Inc()
		s.invalidate(ctx)
	}
	return added, nil
}

// RemoveBlockedDate reports false when the date was not blocked
func (s *service) RemoveBlockedDate(ctx context.Context, date string) (bool, error) {
	day, err := parseDate(date)
	if err != nil {
		return false, err
	}

	_, removed, err := s.repo.Mutate(ctx, func(c *SiteContent) (bool, error) {
		set := dates.NewSet(c.BlockedDates...)
		if !set.Has(day) {
			return false, nil
		}
		set.Remove(day)
		c.BlockedDates = set.Sorted()
		return true, nil
	})
	if err != nil {
		return false, err
	}

	if removed {
		metrics.BlockedDateChanges.WithLabelValues("remove").Inc()
		s.invalidate(ctx)
	}
	return removed, nil
}

// ReplaceBlockedDates stores the whole list deduplicated and sorted
func (s *service) ReplaceBlockedDates(ctx context.Context, values []string) ([]string, error) {
	for _, v := range values {
		if !dates.IsValid(strings.TrimSpace(v)) {
			return nil, fmt.Errorf("%w: %q is not a YYYY-MM-DD date", ErrValidation, v)
		}
	}
	trimmed := make([]string, len(values))
	for i, v := range values {
		trimmed[i] = strings.TrimSpace(v)
	}
	normalized := dates.Normalize(trimmed)

	updated, changed, err := s.repo.Mutate(ctx, func(c *SiteContent) (bool, error) {
		if slices.Equal([]string(c.BlockedDates), normalized) {
			return false, nil
		}
		c.BlockedDates = normalized
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		metrics.BlockedDateChanges.WithLabelValues("replace").Inc()
		s.invalidate(ctx)
	}
	return []string(updated.BlockedDates), nil
}

func (s *service) BlockedDates(ctx context.Context) ([]string, error) {
	c, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(c.BlockedDates))
	copy(out, c.BlockedDates)
	return out, nil
}

func (s *service) Pricing(ctx context.Context) (*availability.Pricing, error) {
	c, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	return c.Pricing(), nil
}

func (s *service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, constants.CACHE_PATTERN_CONTENT); err != nil {
		s.logger.WarnContext(ctx, "Failed to invalidate content cache", "error", err.Error())
	}
}

func parseDate(value string) (time.Time, error) {
	day, err := dates.Parse(strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a YYYY-MM-DD date", ErrValidation, value)
	}
	return day, nil
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}
