package repository

import (
	"context"
	"errors"

	"hotnews-aggregator/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PreferenceRepository defines the interface for user platform preferences.
type PreferenceRepository interface {
	Get(ctx context.Context, userID string) (*entity.UserPreference, error)
	Save(ctx context.Context, preference *entity.UserPreference) error
}

// NewPreferenceRepository creates a new GORM-based preference repository.
func NewPreferenceRepository(db *gorm.DB) PreferenceRepository {
	return &preferenceRepository{db: db}
}

type preferenceRepository struct {
	db *gorm.DB
}

// Get retrieves a user's preference; nil (no error) when none is saved.
func (r *preferenceRepository) Get(ctx context.Context, userID string) (*entity.UserPreference, error) {
	var preference entity.UserPreference
	err := r.db.WithContext(ctx).First(&preference, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &preference, nil
}

// Save creates or replaces a user's preference.
func (r *preferenceRepository) Save(ctx context.Context, preference *entity.UserPreference) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"platform_ids", "updated_at"}),
	}).Create(preference).Error
}
