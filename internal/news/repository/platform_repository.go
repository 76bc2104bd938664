package repository

import (
	"context"

	"hotnews-aggregator/internal/entity"

	"gorm.io/gorm"
)

// PlatformRepository defines the interface for platform data operations.
type PlatformRepository interface {
	FindAll(ctx context.Context, enabledOnly bool) ([]entity.Platform, error)
	FindByID(ctx context.Context, id string) (*entity.Platform, error)
	FindEnabledByIDs(ctx context.Context, ids []string) ([]entity.Platform, error)
	FindEnabledByCategory(ctx context.Context, category entity.PlatformCategory) ([]entity.Platform, error)
	Update(ctx context.Context, platform *entity.Platform) error
}

// NewPlatformRepository creates a new GORM-based platform repository.
func NewPlatformRepository(db *gorm.DB) PlatformRepository {
	return &platformRepository{db: db}
}

type platformRepository struct {
	db *gorm.DB
}

// FindAll retrieves platforms ordered by name, optionally only enabled ones.
func (r *platformRepository) FindAll(ctx context.Context, enabledOnly bool) ([]entity.Platform, error) {
	var platforms []entity.Platform
	q := r.db.WithContext(ctx).Order("name")
	if enabledOnly {
		q = q.Where("enabled = ?", true)
	}
	if err := q.Find(&platforms).Error; err != nil {
		return nil, err
	}
	return platforms, nil
}

// FindByID retrieves a single platform by its id.
func (r *platformRepository) FindByID(ctx context.Context, id string) (*entity.Platform, error) {
	var platform entity.Platform
	if err := r.db.WithContext(ctx).First(&platform, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &platform, nil
}

// FindEnabledByIDs retrieves the enabled platforms among the given ids.
func (r *platformRepository) FindEnabledByIDs(ctx context.Context, ids []string) ([]entity.Platform, error) {
	var platforms []entity.Platform
	err := r.db.WithContext(ctx).
		Where("id IN ? AND enabled = ?", ids, true).
		Order("name").
		Find(&platforms).Error
	if err != nil {
		return nil, err
	}
	return platforms, nil
}

// FindEnabledByCategory retrieves all enabled platforms in a category.
func (r *platformRepository) FindEnabledByCategory(ctx context.Context, category entity.PlatformCategory) ([]entity.Platform, error) {
	var platforms []entity.Platform
	err := r.db.WithContext(ctx).
		Where("category = ? AND enabled = ?", category, true).
		Order("name").
		Find(&platforms).Error
	if err != nil {
		return nil, err
	}
	return platforms, nil
}

// Update persists changes to a platform.
func (r *platformRepository) Update(ctx context.Context, platform *entity.Platform) error {
	return r.db.WithContext(ctx).Save(platform).Error
}
