package repository

import (
	"context"
	"errors"

	"hotnews-aggregator/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FavoriteRepository defines the interface for user favorite operations.
type FavoriteRepository interface {
	Create(ctx context.Context, favorite *entity.UserFavorite) error
	Delete(ctx context.Context, userID, newsID string) error
	FindByUser(ctx context.Context, userID string, limit, offset int) ([]entity.UserFavorite, error)
	Exists(ctx context.Context, userID, newsID string) (bool, error)
}

// NewFavoriteRepository creates a new GORM-based favorite repository.
func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

type favoriteRepository struct {
	db *gorm.DB
}

// Create saves a favorite; adding the same (user, news) twice is a no-op.
func (r *favoriteRepository) Create(ctx context.Context, favorite *entity.UserFavorite) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "news_id"}},
		DoNothing: true,
	}).Create(favorite).Error
}

// Delete removes a favorite pair.
func (r *favoriteRepository) Delete(ctx context.Context, userID, newsID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND news_id = ?", userID, newsID).
		Delete(&entity.UserFavorite{}).Error
}

// FindByUser retrieves a user's favorites, newest first, with the news and its
// platform preloaded.
func (r *favoriteRepository) FindByUser(ctx context.Context, userID string, limit, offset int) ([]entity.UserFavorite, error) {
	var favorites []entity.UserFavorite
	err := r.db.WithContext(ctx).
		Preload("News").
		Preload("News.Platform").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&favorites).Error
	if err != nil {
		return nil, err
	}
	return favorites, nil
}

// Exists reports whether the user already favorited the news item.
func (r *favoriteRepository) Exists(ctx context.Context, userID, newsID string) (bool, error) {
	var favorite entity.UserFavorite
	err := r.db.WithContext(ctx).
		Select("id").
		Where("user_id = ? AND news_id = ?", userID, newsID).
		First(&favorite).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
