package content

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MutateFunc edits the content in place and reports whether anything changed
type MutateFunc func(content *SiteContent) (bool, error)

type Repository interface {
	// Get returns the main record, creating the defaults on first read
	Get(ctx context.Context) (*SiteContent, error)

	// Mutate runs fn on the row locked FOR UPDATE and saves it when fn reports a change
	Mutate(ctx context.Context, fn MutateFunc) (*SiteContent, bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Get(ctx context.Context) (*SiteContent, error) {
	var content SiteContent
	err := r.db.WithContext(ctx).Where("id = ?", MainContentID).First(&content).Error
	if err == nil {
		return &content, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load site content: %w", err)
	}

	defaults := DefaultSiteContent()
	// a concurrent first read may have inserted the row already
	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(defaults).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create default site content: %w", err)
	}
	if err := r.db.WithContext(ctx).Where("id = ?", MainContentID).First(&content).Error; err != nil {
		return nil, fmt.Errorf("failed to load site content: %w", err)
	}
	return &content, nil
}

func (r *repository) Mutate(ctx context.Context, fn MutateFunc) (*SiteContent, bool, error) {
	// make sure the row exists before locking it
	if _, err := r.Get(ctx); err != nil {
		return nil, false, err
	}

	var content SiteContent
	var changed bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", MainContentID).
			First(&content).Error
		if err != nil {
			return fmt.Errorf("failed to lock site content: %w", err)
		}

		changed, err = fn(&content)
		if err != nil || !changed {
			return err
		}

		if err := tx.Save(&content).Error; err != nil {
			return fmt.Errorf("failed to save site content: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &content, changed, nil
}
