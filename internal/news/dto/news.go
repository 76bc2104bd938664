package dto

import "time"

// NewsQueryParams filters and paginates the news feed endpoint.
type NewsQueryParams struct {
	PlatformID string `query:"platform_id"`
	Category   string `query:"category"`
	Keyword    string `query:"keyword"`
	Sort       string `query:"sort"` // "hot" (default) or "time"
	Limit      int    `query:"limit"`
	Offset     int    `query:"offset"`
}

// NewsResponse represents a news item in API responses.
type NewsResponse struct {
	ID             string            `json:"id"`
	PlatformID     string            `json:"platform_id"`
	Title          string            `json:"title"`
	URL            string            `json:"url"`
	APIScore       float64           `json:"api_score"`
	FinalScore     float64           `json:"final_score"`
	HotRank        *int              `json:"hot_rank,omitempty"`
	ContentSnippet *string           `json:"content_snippet,omitempty"`
	ImageURL       *string           `json:"image_url,omitempty"`
	PublishedAt    *time.Time        `json:"published_at,omitempty"`
	FetchedAt      time.Time         `json:"fetched_at"`
	FetchedDate    string            `json:"fetched_date"`
	Platform       *PlatformResponse `json:"platform,omitempty"`
}

// PlatformFeed is one platform's column on the home feed: the platform plus
// its latest batch in rank order.
type PlatformFeed struct {
	Platform PlatformResponse `json:"platform"`
	Items    []NewsResponse   `json:"items"`
}
