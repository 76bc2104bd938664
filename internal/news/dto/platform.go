package dto

import "time"

// PlatformResponse represents a platform in API responses.
type PlatformResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Weight      float64   `json:"weight"`
	Enabled     bool      `json:"enabled"`
	IconURL     *string   `json:"icon_url,omitempty"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UpdatePlatformRequest is the DTO for editing a platform. Nil fields are left
// unchanged.
type UpdatePlatformRequest struct {
	Name        *string  `json:"name,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Weight      *float64 `json:"weight,omitempty"`
	Enabled     *bool    `json:"enabled,omitempty"`
	IconURL     *string  `json:"icon_url,omitempty"`
	Description *string  `json:"description,omitempty"`
}
