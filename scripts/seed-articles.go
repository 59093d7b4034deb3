// Command seed-articles loads articles from a JSON file into the database.
// Existing articles (matched by URL) are left untouched.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/newsdesk/newsdesk/internal/model"
	"github.com/newsdesk/newsdesk/internal/repository"
)

type seedArticle struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	ImageURL    string `json:"image_url"`
	Source      string `json:"source"`
	Category    string `json:"category"`
	PublishedAt string `json:"published_at"`
}

func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		file        = flag.String("file", "articles.json", "Path to a JSON array of articles")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		fmt.Fprintln(os.Stderr, "read file:", err)
		os.Exit(1)
	}

	var articles []seedArticle
	if err := json.Unmarshal(data, &articles); err != nil {
		fmt.Fprintln(os.Stderr, "parse file:", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo, err := repository.New(ctx, *databaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect database:", err)
		os.Exit(1)
	}
	defer repo.Close()

	var created, skipped, failed int
	for _, a := range articles {
		switch err := seedOne(ctx, repo, a); {
		case err == nil:
			created++
		case errors.Is(err, repository.ErrURLExists):
			skipped++
		default:
			failed++
			fmt.Fprintf(os.Stderr, "seed %s: %v\n", a.URL, err)
		}
	}

	fmt.Printf("seeded %d articles (%d already present, %d failed)\n", created, skipped, failed)
	if failed > 0 {
		os.Exit(1)
	}
}

func seedOne(ctx context.Context, repo *repository.Repository, a seedArticle) error {
	if a.URL == "" || a.Title == "" {
		return fmt.Errorf("url and title are required")
	}

	publishedAt := time.Now().UTC()
	if a.PublishedAt != "" {
		parsed, err := time.Parse(time.RFC3339, a.PublishedAt)
		if err != nil {
			return fmt.Errorf("bad published_at: %w", err)
		}
		publishedAt = parsed
	}

	category := a.Category
	if category == "" {
		category = model.DefaultCategory
	}

	return repo.CreateArticle(ctx, &model.Article{
		ID:          uuid.New().String(),
		URL:         a.URL,
		Title:       a.Title,
		Description: a.Description,
		Content:     a.Content,
		ImageURL:    a.ImageURL,
		Source:      a.Source,
		Category:    category,
		PublishedAt: publishedAt,
		CreatedAt:   time.Now().UTC(),
	})
}
