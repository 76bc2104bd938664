package repository

import (
	"context"
	"errors"
	"time"

	"hotnews-aggregator/internal/entity"

	"gorm.io/gorm"
)

// SearchHistoryRepository defines the interface for search history operations.
type SearchHistoryRepository interface {
	Record(ctx context.Context, userID *string, keyword string) error
	FindTopKeywords(ctx context.Context, limit int) ([]entity.SearchHistory, error)
	FindByUser(ctx context.Context, userID string, limit int) ([]entity.SearchHistory, error)
}

// NewSearchHistoryRepository creates a new GORM-based search history repository.
func NewSearchHistoryRepository(db *gorm.DB) SearchHistoryRepository {
	return &searchHistoryRepository{db: db}
}

type searchHistoryRepository struct {
	db *gorm.DB
}

// Record upserts a (user, keyword) row: an existing row gets its count
// incremented and its timestamp refreshed, otherwise a new row starts at 1.
// A nil userID scopes the row to the anonymous/global bucket.
func (r *searchHistoryRepository) Record(ctx context.Context, userID *string, keyword string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Where("keyword = ?", keyword)
		if userID != nil {
			q = q.Where("user_id = ?", *userID)
		} else {
			q = q.Where("user_id IS NULL")
		}

		var existing entity.SearchHistory
		err := q.First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(&entity.SearchHistory{
				UserID:         userID,
				Keyword:        keyword,
				SearchCount:    1,
				LastSearchedAt: time.Now(),
			}).Error
		}
		if err != nil {
			return err
		}

		return tx.Model(&existing).Updates(map[string]interface{}{
			"search_count":     existing.SearchCount + 1,
			"last_searched_at": time.Now(),
		}).Error
	})
}

// FindTopKeywords retrieves the most searched keywords.
func (r *searchHistoryRepository) FindTopKeywords(ctx context.Context, limit int) ([]entity.SearchHistory, error) {
	var rows []entity.SearchHistory
	err := r.db.WithContext(ctx).
		Order("search_count DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByUser retrieves a user's recent searches.
func (r *searchHistoryRepository) FindByUser(ctx context.Context, userID string, limit int) ([]entity.SearchHistory, error) {
	var rows []entity.SearchHistory
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("last_searched_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
