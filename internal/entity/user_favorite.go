package entity

import "time"

// UserFavorite marks a news item saved by a user. Unique per (user, news).
type UserFavorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"not null;size:64;uniqueIndex:idx_favorite_user_news" json:"user_id"`
	NewsID    string    `gorm:"not null;type:uuid;uniqueIndex:idx_favorite_user_news" json:"news_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	News *News `gorm:"foreignKey:NewsID" json:"news,omitempty"`
}

// TableName specifies the table name for the UserFavorite model.
func (UserFavorite) TableName() string {
	return "user_favorites"
}
