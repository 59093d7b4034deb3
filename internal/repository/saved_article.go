package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/newsdesk/newsdesk/internal/model"
)

// Common errors for saved-article repository operations.
var (
	ErrSavedArticleNotFound = errors.New("saved article not found")
	ErrAlreadySaved         = errors.New("article already saved")
)

// CreateSavedArticle inserts a new saved-article record.
// The (user_id, article_id) pair is unique; a duplicate insert fails with
// ErrAlreadySaved rather than merging.
func (r *Repository) CreateSavedArticle(ctx context.Context, saved *model.SavedArticle) error {
	query := `
		INSERT INTO saved_articles (id, user_id, article_id, notes, saved_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		saved.ID,
		saved.UserID,
		saved.ArticleID,
		saved.Notes,
		saved.SavedAt,
	)

	if err != nil {
		if isUniqueViolationOn(err, "saved_articles_user_article_unique") {
			return ErrAlreadySaved
		}
		return fmt.Errorf("failed to create saved article: %w", err)
	}

	return nil
}

// GetSavedArticle retrieves a saved-article record by its composite key.
func (r *Repository) GetSavedArticle(ctx context.Context, userID, articleID string) (*model.SavedArticle, error) {
	query := `
		SELECT id, user_id, article_id, notes, saved_at
		FROM saved_articles
		WHERE user_id = $1 AND article_id = $2
	`

	var saved model.SavedArticle
	err := r.pool.QueryRow(ctx, query, userID, articleID).Scan(
		&saved.ID,
		&saved.UserID,
		&saved.ArticleID,
		&saved.Notes,
		&saved.SavedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSavedArticleNotFound
		}
		return nil, fmt.Errorf("failed to get saved article: %w", err)
	}

	return &saved, nil
}

// ListSavedArticles retrieves all saved records for a user joined with
// their articles, most recently saved first.
func (r *Repository) ListSavedArticles(ctx context.Context, userID string) ([]*model.SavedArticle, error) {
	query := `
		SELECT s.id, s.user_id, s.article_id, s.notes, s.saved_at,
		       a.id, a.url, a.title, a.description, a.content, a.image_url, a.source, a.category, a.published_at, a.created_at
		FROM saved_articles s
		JOIN articles a ON a.id = s.article_id
		WHERE s.user_id = $1
		ORDER BY s.saved_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved articles: %w", err)
	}
	defer rows.Close()

	saved := []*model.SavedArticle{}
	for rows.Next() {
		record, err := scanSavedArticleJoined(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan saved article: %w", err)
		}
		saved = append(saved, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating saved articles: %w", err)
	}

	return saved, nil
}

// CountSavedArticles returns the number of saved records for a user.
func (r *Repository) CountSavedArticles(ctx context.Context, userID string) (int, error) {
	query := `SELECT COUNT(*) FROM saved_articles WHERE user_id = $1`

	var count int
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count saved articles: %w", err)
	}

	return count, nil
}

// DeleteSavedArticle removes a saved-article record by composite key.
// This is a hard delete.
func (r *Repository) DeleteSavedArticle(ctx context.Context, userID, articleID string) error {
	query := `DELETE FROM saved_articles WHERE user_id = $1 AND article_id = $2`

	result, err := r.pool.Exec(ctx, query, userID, articleID)
	if err != nil {
		return fmt.Errorf("failed to delete saved article: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrSavedArticleNotFound
	}

	return nil
}

// scanSavedArticleJoined scans a saved-article row joined with its article.
func scanSavedArticleJoined(rows pgx.Rows) (*model.SavedArticle, error) {
	var saved model.SavedArticle
	var article model.Article
	err := rows.Scan(
		&saved.ID,
		&saved.UserID,
		&saved.ArticleID,
		&saved.Notes,
		&saved.SavedAt,
		&article.ID,
		&article.URL,
		&article.Title,
		&article.Description,
		&article.Content,
		&article.ImageURL,
		&article.Source,
		&article.Category,
		&article.PublishedAt,
		&article.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	saved.Article = &article
	return &saved, nil
}
