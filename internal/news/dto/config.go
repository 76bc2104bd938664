package dto

import "time"

// SystemConfigResponse represents one system config entry.
type SystemConfigResponse struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateConfigRequest sets a system config value.
type UpdateConfigRequest struct {
	Value string `json:"value"`
}
