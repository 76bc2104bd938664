package dto

// RefreshRequest triggers a refresh cycle for an explicit platform list, a
// whole category, or all enabled platforms when both fields are empty.
type RefreshRequest struct {
	Platforms []string `json:"platforms,omitempty"`
	Category  string   `json:"category,omitempty"`
}

// RefreshResponse summarizes one refresh cycle. Success stays true even when
// individual platforms failed; only a top-level error yields a non-200.
type RefreshResponse struct {
	Success         bool     `json:"success"`
	Message         string   `json:"message"`
	TotalInserted   int      `json:"totalInserted"`
	TotalFailed     int      `json:"totalFailed"`
	FailedPlatforms []string `json:"failedPlatforms"`
}
