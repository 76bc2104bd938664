package entity

import "time"

// SearchHistory records a keyword searched by a user (or anonymously when
// UserID is nil) with a running count.
type SearchHistory struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         *string   `gorm:"size:64;index" json:"user_id,omitempty"`
	Keyword        string    `gorm:"not null;size:256;index" json:"keyword"`
	SearchCount    int       `gorm:"not null;default:1" json:"search_count"`
	LastSearchedAt time.Time `gorm:"not null" json:"last_searched_at"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the SearchHistory model.
func (SearchHistory) TableName() string {
	return "search_history"
}
