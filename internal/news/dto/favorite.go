package dto

import "time"

// AddFavoriteRequest is the DTO for saving a news item.
type AddFavoriteRequest struct {
	NewsID string `json:"news_id"`
}

// FavoriteResponse represents a saved news item in API responses.
type FavoriteResponse struct {
	ID        uint          `json:"id"`
	NewsID    string        `json:"news_id"`
	CreatedAt time.Time     `json:"created_at"`
	News      *NewsResponse `json:"news,omitempty"`
}
