package model

import "time"

// SavedArticle is a user's bookmark of an article with an optional note.
// At most one record exists per (user, article) pair.
type SavedArticle struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ArticleID string    `json:"article_id"`
	Notes     *string   `json:"notes,omitempty"`
	SavedAt   time.Time `json:"saved_at"`

	// Article is populated when the record is read joined with its article.
	Article *Article `json:"article,omitempty"`
}
