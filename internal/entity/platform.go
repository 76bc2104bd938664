package entity

import "time"

// PlatformCategory classifies a news platform.
type PlatformCategory string

const (
	CategorySocial  PlatformCategory = "social"
	CategoryTech    PlatformCategory = "tech"
	CategoryFinance PlatformCategory = "finance"
	CategoryGeneral PlatformCategory = "general"
	CategoryOther   PlatformCategory = "other"
)

// ValidCategory reports whether c is one of the known platform categories.
func ValidCategory(c string) bool {
	switch PlatformCategory(c) {
	case CategorySocial, CategoryTech, CategoryFinance, CategoryGeneral, CategoryOther:
		return true
	}
	return false
}

// Platform represents a configured external news source, e.g. a specific
// site's trending list. Disabling a platform removes it from fetching and
// from the feed without deleting its historical news.
type Platform struct {
	ID          string           `gorm:"primaryKey;size:64" json:"id"`
	Name        string           `gorm:"not null;size:128" json:"name"`
	Category    PlatformCategory `gorm:"not null;size:32;index" json:"category"`
	Weight      float64          `gorm:"not null;default:5" json:"weight"`
	Enabled     bool             `gorm:"not null;default:true;index" json:"enabled"`
	IconURL     *string          `json:"icon_url,omitempty"`
	Description *string          `json:"description,omitempty"`
	CreatedAt   time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the Platform model.
func (Platform) TableName() string {
	return "platforms"
}
