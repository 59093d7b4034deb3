package dto

import (
	"github.com/newsdesk/newsdesk/internal/model"
	"github.com/newsdesk/newsdesk/internal/service"
)

// ArticleData is the caller-supplied article payload used for lazy
// creation when the referenced article is not yet persisted.
type ArticleData struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Content     string `json:"content,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	Source      string `json:"source,omitempty"`
	Category    string `json:"category,omitempty"`
	PublishedAt string `json:"published_at,omitempty"`
}

// SaveArticleRequest represents the request body for saving an article.
type SaveArticleRequest struct {
	ArticleID string       `json:"article_id"`
	Article   *ArticleData `json:"article,omitempty"`
	Notes     *string      `json:"notes,omitempty"`
}

// SavedArticleListResponse represents a user's saved articles.
type SavedArticleListResponse struct {
	Data  []*model.SavedArticle `json:"data"`
	Count int                   `json:"count"`
}

// MessageResponse is a simple confirmation payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// ToArticleData converts the request payload to the service input form.
func (a *ArticleData) ToArticleData() *service.ArticleData {
	if a == nil {
		return nil
	}
	return &service.ArticleData{
		URL:         a.URL,
		Title:       a.Title,
		Description: a.Description,
		Content:     a.Content,
		ImageURL:    a.ImageURL,
		Source:      a.Source,
		Category:    a.Category,
		PublishedAt: a.PublishedAt,
	}
}
