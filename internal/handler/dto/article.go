package dto

import "github.com/newsdesk/newsdesk/internal/model"

// ArticleListResponse represents a page of articles.
type ArticleListResponse struct {
	Data  []*model.Article `json:"data"`
	Count int              `json:"count"`
}
