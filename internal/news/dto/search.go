package dto

import "time"

// SearchKeywordResponse represents a keyword row in search history responses.
type SearchKeywordResponse struct {
	Keyword        string    `json:"keyword"`
	SearchCount    int       `json:"search_count"`
	LastSearchedAt time.Time `json:"last_searched_at"`
}
