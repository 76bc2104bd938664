package entity

import "time"

// SystemConfig is an administrator-owned key/value setting read by the
// pipeline, e.g. news_fetch_limit.
type SystemConfig struct {
	Key       string    `gorm:"primaryKey;size:128" json:"key"`
	Value     string    `gorm:"not null" json:"value"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the SystemConfig model.
func (SystemConfig) TableName() string {
	return "system_config"
}
