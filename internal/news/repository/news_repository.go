package repository

import (
	"context"
	"time"

	"hotnews-aggregator/internal/entity"

	"gorm.io/gorm"
)

// SortMode selects the feed ordering.
type SortMode string

const (
	SortHot  SortMode = "hot"
	SortTime SortMode = "time"
)

// NewsQuery filters and paginates the news feed.
type NewsQuery struct {
	PlatformID string
	Category   entity.PlatformCategory
	Keyword    string
	Sort       SortMode
	Limit      int
	Offset     int
}

// NewsRepository defines the interface for news data operations. DeleteBatch
// and InsertBatch are separate on purpose: the pipeline treats a failed delete
// as a warning but a failed insert as the loss of the platform's batch.
type NewsRepository interface {
	DeleteBatch(ctx context.Context, platformID, fetchedDate string) error
	InsertBatch(ctx context.Context, items []entity.News) error
	Find(ctx context.Context, q NewsQuery) ([]entity.News, error)
	FindByID(ctx context.Context, id string) (*entity.News, error)
	FindHot(ctx context.Context, limit int) ([]entity.News, error)
	FindLatestByPlatform(ctx context.Context, platformID string, limit int) ([]entity.News, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// NewNewsRepository creates a new GORM-based news repository.
func NewNewsRepository(db *gorm.DB) NewsRepository {
	return &newsRepository{db: db}
}

type newsRepository struct {
	db *gorm.DB
}

// DeleteBatch removes all news rows for one (platform, fetched date) pair.
func (r *newsRepository) DeleteBatch(ctx context.Context, platformID, fetchedDate string) error {
	return r.db.WithContext(ctx).
		Where("platform_id = ? AND fetched_date = ?", platformID, fetchedDate).
		Delete(&entity.News{}).Error
}

// InsertBatch inserts a full scored batch.
func (r *newsRepository) InsertBatch(ctx context.Context, items []entity.News) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

// Find retrieves a filtered, sorted, paginated page of news. Hot sorting uses
// fetched_at and id as deterministic tiebreaks for equal scores.
func (r *newsRepository) Find(ctx context.Context, q NewsQuery) ([]entity.News, error) {
	db := r.db.WithContext(ctx).Model(&entity.News{}).Preload("Platform")

	if q.PlatformID != "" {
		db = db.Where("platform_id = ?", q.PlatformID)
	}
	if q.Category != "" {
		db = db.Joins("JOIN platforms ON platforms.id = news.platform_id").
			Where("platforms.category = ?", q.Category)
	}
	if q.Keyword != "" {
		db = db.Where("news.title ILIKE ?", "%"+q.Keyword+"%")
	}

	if q.Sort == SortTime {
		db = db.Order("news.fetched_at DESC")
	} else {
		db = db.Order("news.final_score DESC").
			Order("news.fetched_at ASC").
			Order("news.id ASC")
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 20
	}
	db = db.Limit(limit).Offset(q.Offset)

	var items []entity.News
	if err := db.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindByID retrieves one news item with its platform.
func (r *newsRepository) FindByID(ctx context.Context, id string) (*entity.News, error) {
	var item entity.News
	if err := r.db.WithContext(ctx).Preload("Platform").First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// FindHot retrieves the top items across all platforms by final score.
func (r *newsRepository) FindHot(ctx context.Context, limit int) ([]entity.News, error) {
	var items []entity.News
	err := r.db.WithContext(ctx).Preload("Platform").
		Order("final_score DESC").
		Order("fetched_at ASC").
		Order("id ASC").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// FindLatestByPlatform retrieves a platform's most recent batch in rank order.
func (r *newsRepository) FindLatestByPlatform(ctx context.Context, platformID string, limit int) ([]entity.News, error) {
	var items []entity.News
	err := r.db.WithContext(ctx).
		Where("platform_id = ?", platformID).
		Order("fetched_date DESC").
		Order("hot_rank ASC").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// DeleteOlderThan prunes news fetched before the cutoff and returns the number
// of rows removed.
func (r *newsRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("fetched_at < ?", cutoff).
		Delete(&entity.News{})
	return res.RowsAffected, res.Error
}
