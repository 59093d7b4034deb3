package model

import "time"

// DefaultCategory is assigned to articles created without an explicit category.
const DefaultCategory = "general"

// Article represents a news article persisted by the service.
// Articles are created lazily on first save and are immutable afterwards;
// the source URL is unique and acts as the de-duplication key.
type Article struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	ImageURL    string    `json:"image_url,omitempty"`
	Source      string    `json:"source"`
	Category    string    `json:"category"`
	PublishedAt time.Time `json:"published_at"`
	CreatedAt   time.Time `json:"created_at"`
}
