package entity

import (
	"time"

	"github.com/lib/pq"
)

// UserPreference is a user's chosen platform subset in display order. When a
// preference exists, the home feed shows exactly these platforms in exactly
// this order.
type UserPreference struct {
	UserID      string         `gorm:"primaryKey;size:64" json:"user_id"`
	PlatformIDs pq.StringArray `gorm:"type:text[];not null" json:"platform_ids"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the UserPreference model.
func (UserPreference) TableName() string {
	return "user_preferences"
}
