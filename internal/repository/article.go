package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/newsdesk/newsdesk/internal/model"
)

// Common errors for article repository operations.
var (
	ErrArticleNotFound = errors.New("article not found")
	ErrURLExists       = errors.New("article URL already exists")
)

// ArticleFilter defines filters for listing articles.
type ArticleFilter struct {
	Category string
	Query    string
}

const articleColumns = `id, url, title, description, content, image_url, source, category, published_at, created_at`

// CreateArticle inserts a new article into the database.
func (r *Repository) CreateArticle(ctx context.Context, article *model.Article) error {
	query := `
		INSERT INTO articles (id, url, title, description, content, image_url, source, category, published_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		article.ID,
		article.URL,
		article.Title,
		article.Description,
		article.Content,
		article.ImageURL,
		article.Source,
		article.Category,
		article.PublishedAt,
		article.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrURLExists
		}
		return fmt.Errorf("failed to create article: %w", err)
	}

	return nil
}

// GetArticleByID retrieves an article by its ID.
func (r *Repository) GetArticleByID(ctx context.Context, id string) (*model.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE id = $1`

	article, err := scanArticle(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrArticleNotFound
		}
		return nil, fmt.Errorf("failed to get article by ID: %w", err)
	}

	return article, nil
}

// GetArticleByURL retrieves an article by its unique source URL.
// Used by the save flow to de-duplicate articles persisted under a
// different identifier.
func (r *Repository) GetArticleByURL(ctx context.Context, url string) (*model.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE url = $1`

	article, err := scanArticle(r.pool.QueryRow(ctx, query, url))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrArticleNotFound
		}
		return nil, fmt.Errorf("failed to get article by URL: %w", err)
	}

	return article, nil
}

// GetArticlesByIDs retrieves the articles matching the given IDs.
// Missing IDs are silently skipped; order follows publication time descending.
func (r *Repository) GetArticlesByIDs(ctx context.Context, ids []string) ([]*model.Article, error) {
	if len(ids) == 0 {
		return []*model.Article{}, nil
	}

	query := `SELECT ` + articleColumns + ` FROM articles WHERE id = ANY($1) ORDER BY published_at DESC`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get articles by IDs: %w", err)
	}
	defer rows.Close()

	return collectArticles(rows)
}

// ListArticles retrieves articles newest first, optionally filtered by
// category and a title/description search term.
func (r *Repository) ListArticles(ctx context.Context, filter ArticleFilter, limit int) ([]*model.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE 1=1`
	args := []any{}
	argIndex := 1

	if filter.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", argIndex)
		args = append(args, filter.Category)
		argIndex++
	}

	if filter.Query != "" {
		query += fmt.Sprintf(" AND (title ILIKE $%d OR description ILIKE $%d)", argIndex, argIndex)
		args = append(args, "%"+filter.Query+"%")
		argIndex++
	}

	query += fmt.Sprintf(" ORDER BY published_at DESC LIMIT $%d", argIndex)
	args = append(args, limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	defer rows.Close()

	return collectArticles(rows)
}

// scanArticle scans a single row into an Article model.
func scanArticle(row pgx.Row) (*model.Article, error) {
	var article model.Article
	err := row.Scan(
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
	return &article, nil
}

// collectArticles drains rows into a slice of Article models.
func collectArticles(rows pgx.Rows) ([]*model.Article, error) {
	articles := []*model.Article{}
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		articles = append(articles, article)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating articles: %w", err)
	}

	return articles, nil
}
