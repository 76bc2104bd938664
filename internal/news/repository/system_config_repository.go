package repository

import (
	"context"

	"hotnews-aggregator/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SystemConfigRepository defines the interface for system config operations.
type SystemConfigRepository interface {
	Get(ctx context.Context, key string) (string, error)
	FindAll(ctx context.Context) ([]entity.SystemConfig, error)
	Upsert(ctx context.Context, key, value string) error
}

// NewSystemConfigRepository creates a new GORM-based system config repository.
func NewSystemConfigRepository(db *gorm.DB) SystemConfigRepository {
	return &systemConfigRepository{db: db}
}

type systemConfigRepository struct {
	db *gorm.DB
}

// Get retrieves a config value; gorm.ErrRecordNotFound when the key is absent.
func (r *systemConfigRepository) Get(ctx context.Context, key string) (string, error) {
	var cfg entity.SystemConfig
	if err := r.db.WithContext(ctx).First(&cfg, "key = ?", key).Error; err != nil {
		return "", err
	}
	return cfg.Value, nil
}

// FindAll retrieves all config entries ordered by key.
func (r *systemConfigRepository) FindAll(ctx context.Context) ([]entity.SystemConfig, error) {
	var configs []entity.SystemConfig
	if err := r.db.WithContext(ctx).Order("key").Find(&configs).Error; err != nil {
		return nil, err
	}
	return configs, nil
}

// Upsert creates or updates a config entry.
func (r *systemConfigRepository) Upsert(ctx context.Context, key, value string) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entity.SystemConfig{Key: key, Value: value}).Error
}
