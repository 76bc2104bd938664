package dto

import "time"

// SavePreferenceRequest replaces a user's platform subset and display order.
type SavePreferenceRequest struct {
	PlatformIDs []string `json:"platform_ids"`
}

// PreferenceResponse represents a user's saved platform preference.
type PreferenceResponse struct {
	PlatformIDs []string  `json:"platform_ids"`
	UpdatedAt   time.Time `json:"updated_at"`
}
