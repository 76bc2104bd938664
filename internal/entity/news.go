package entity

import (
	"time"

	"gorm.io/datatypes"
)

// News represents one normalized item fetched from a platform's hot list.
// Rows are never mutated in place: the pipeline replaces the whole batch for a
// (platform_id, fetched_date) pair on every refresh.
type News struct {
	ID             string            `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	PlatformID     string            `gorm:"not null;size:64;index:idx_news_platform_date" json:"platform_id"`
	Title          string            `gorm:"not null;size:512" json:"title"`
	URL            string            `gorm:"not null;size:1024" json:"url"`
	APIScore       float64           `gorm:"not null" json:"api_score"`
	FinalScore     float64           `gorm:"not null;index" json:"final_score"`
	HotRank        *int              `json:"hot_rank,omitempty"`
	ContentSnippet *string           `gorm:"size:1200" json:"content_snippet,omitempty"`
	ImageURL       *string           `json:"image_url,omitempty"`
	PublishedAt    *time.Time        `json:"published_at,omitempty"`
	FetchedAt      time.Time         `gorm:"not null;index" json:"fetched_at"`
	FetchedDate    string            `gorm:"not null;size:10;index:idx_news_platform_date" json:"fetched_date"`
	Extra          datatypes.JSONMap `gorm:"type:jsonb" json:"extra,omitempty"`
	CreatedAt      time.Time         `gorm:"autoCreateTime" json:"created_at"`

	Platform *Platform `gorm:"foreignKey:PlatformID" json:"platform,omitempty"`
}

// TableName specifies the table name for the News model.
func (News) TableName() string {
	return "news"
}
