// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/newsdesk/newsdesk/internal/metrics"
	"github.com/newsdesk/newsdesk/internal/model"
	"github.com/newsdesk/newsdesk/internal/repository"
)

// Service errors.
var (
	ErrArticleNotFound      = errors.New("article not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrAlreadySaved         = errors.New("article already saved")
	ErrSavedArticleNotFound = errors.New("saved article not found")
	ErrInvalidArticleData   = errors.New("invalid article data")
)

// SavedArticleStore is the persistence surface the saved-article flow needs.
// *repository.Repository satisfies it.
type SavedArticleStore interface {
	GetArticleByID(ctx context.Context, id string) (*model.Article, error)
	GetArticleByURL(ctx context.Context, url string) (*model.Article, error)
	CreateArticle(ctx context.Context, article *model.Article) error
	UserExists(ctx context.Context, id string) (bool, error)
	GetSavedArticle(ctx context.Context, userID, articleID string) (*model.SavedArticle, error)
	CreateSavedArticle(ctx context.Context, saved *model.SavedArticle) error
	ListSavedArticles(ctx context.Context, userID string) ([]*model.SavedArticle, error)
	DeleteSavedArticle(ctx context.Context, userID, articleID string) error
}

// SavedArticleService handles the saved-article reconciliation flow.
type SavedArticleService struct {
	store   SavedArticleStore
	metrics metrics.Recorder
}

// NewSavedArticleService creates a new SavedArticleService.
func NewSavedArticleService(store SavedArticleStore, recorder metrics.Recorder) *SavedArticleService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &SavedArticleService{store: store, metrics: recorder}
}

// ArticleData is caller-supplied article content used to create an
// article lazily when it is not yet persisted.
type ArticleData struct {
	URL         string
	Title       string
	Description string
	Content     string
	ImageURL    string
	Source      string
	Category    string
	PublishedAt string // RFC 3339; malformed input fails the creation
}

// SaveArticleInput defines input for saving an article.
type SaveArticleInput struct {
	UserID    string
	ArticleID string
	Article   *ArticleData // optional; enables lazy creation
	Notes     *string
}

// SaveArticle resolves the referenced article and records the save.
//
// Resolution order: primary identifier, then URL (de-duplication for
// articles persisted under a different key), then lazy creation from the
// supplied data. Duplicate saves are rejected with ErrAlreadySaved, never
// merged.
func (s *SavedArticleService) SaveArticle(ctx context.Context, input SaveArticleInput) (*model.SavedArticle, error) {
	article, err := s.resolveArticle(ctx, input.ArticleID, input.Article)
	if err != nil {
		return nil, err
	}

	exists, err := s.store.UserExists(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}
	if !exists {
		// Stale or inconsistent session identifier
		return nil, ErrUserNotFound
	}

	_, err = s.store.GetSavedArticle(ctx, input.UserID, article.ID)
	if err == nil {
		s.metrics.IncSaveConflict()
		return nil, ErrAlreadySaved
	}
	if !errors.Is(err, repository.ErrSavedArticleNotFound) {
		return nil, fmt.Errorf("check existing save: %w", err)
	}

	saved := &model.SavedArticle{
		ID:        uuid.New().String(),
		UserID:    input.UserID,
		ArticleID: article.ID,
		Notes:     input.Notes,
		SavedAt:   time.Now().UTC(),
	}

	if err := s.store.CreateSavedArticle(ctx, saved); err != nil {
		if errors.Is(err, repository.ErrAlreadySaved) {
			// Lost a race with a concurrent save of the same pair
			s.metrics.IncSaveConflict()
			return nil, ErrAlreadySaved
		}
		return nil, fmt.Errorf("create saved article: %w", err)
	}

	s.metrics.IncArticleSaved()
	saved.Article = article
	return saved, nil
}

// RemoveSavedArticle deletes a saved-article record by composite key.
func (s *SavedArticleService) RemoveSavedArticle(ctx context.Context, userID, articleID string) error {
	if err := s.store.DeleteSavedArticle(ctx, userID, articleID); err != nil {
		if errors.Is(err, repository.ErrSavedArticleNotFound) {
			return ErrSavedArticleNotFound
		}
		return fmt.Errorf("delete saved article: %w", err)
	}

	s.metrics.IncArticleUnsaved()
	return nil
}

// ListSavedArticles returns all saved records for a user joined with
// their articles, most recent first.
func (s *SavedArticleService) ListSavedArticles(ctx context.Context, userID string) ([]*model.SavedArticle, error) {
	saved, err := s.store.ListSavedArticles(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list saved articles: %w", err)
	}
	return saved, nil
}

// resolveArticle finds the article by ID, then by URL, then creates it
// from the supplied data. Returns ErrArticleNotFound when no path resolves.
func (s *SavedArticleService) resolveArticle(ctx context.Context, articleID string, data *ArticleData) (*model.Article, error) {
	article, err := s.store.GetArticleByID(ctx, articleID)
	if err == nil {
		return article, nil
	}
	if !errors.Is(err, repository.ErrArticleNotFound) {
		return nil, fmt.Errorf("get article: %w", err)
	}

	if data == nil {
		return nil, ErrArticleNotFound
	}

	if data.URL != "" {
		article, err = s.store.GetArticleByURL(ctx, data.URL)
		if err == nil {
			return article, nil
		}
		if !errors.Is(err, repository.ErrArticleNotFound) {
			return nil, fmt.Errorf("get article by URL: %w", err)
		}
	}

	return s.createArticle(ctx, articleID, data)
}

// createArticle persists a new article from caller-supplied data,
// defaulting summary and content to empty strings and category to
// "general" when absent.
func (s *SavedArticleService) createArticle(ctx context.Context, articleID string, data *ArticleData) (*model.Article, error) {
	if data.URL == "" || data.Title == "" {
		return nil, ErrInvalidArticleData
	}

	publishedAt := time.Now().UTC()
	if data.PublishedAt != "" {
		parsed, err := time.Parse(time.RFC3339, data.PublishedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: bad published_at: %v", ErrInvalidArticleData, err)
		}
		publishedAt = parsed
	}

	category := data.Category
	if category == "" {
		category = model.DefaultCategory
	}

	id := articleID
	if id == "" {
		id = uuid.New().String()
	}

	article := &model.Article{
		ID:          id,
		URL:         data.URL,
		Title:       data.Title,
		Description: data.Description,
		Content:     data.Content,
		ImageURL:    data.ImageURL,
		Source:      data.Source,
		Category:    category,
		PublishedAt: publishedAt,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.store.CreateArticle(ctx, article); err != nil {
		if errors.Is(err, repository.ErrURLExists) {
			// Another request created it first; fetch the winner.
			existing, getErr := s.store.GetArticleByURL(ctx, article.URL)
			if getErr == nil {
				return existing, nil
			}
		}
		return nil, fmt.Errorf("create article: %w", err)
	}

	s.metrics.IncArticleCreated()
	return article, nil
}
