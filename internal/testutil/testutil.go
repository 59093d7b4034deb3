// Package testutil provides shared helpers for integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/newsdesk/newsdesk/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 731731

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// applyMigrationPair applies a down migration followed by its up migration.
func applyMigrationPair(ctx context.Context, pool *pgxpool.Pool, name string) error {
	root, err := ProjectRoot()
	if err != nil {
		return err
	}

	downPath := filepath.Join(root, "migrations", name+".down.sql")
	upPath := filepath.Join(root, "migrations", name+".up.sql")

	downSQL, err := os.ReadFile(downPath)
	if err != nil {
		return fmt.Errorf("read %s down migration: %w", name, err)
	}
	if _, err := pool.Exec(ctx, string(downSQL)); err != nil {
		return fmt.Errorf("apply %s down migration: %w", name, err)
	}

	upSQL, err := os.ReadFile(upPath)
	if err != nil {
		return fmt.Errorf("read %s up migration: %w", name, err)
	}
	if _, err := pool.Exec(ctx, string(upSQL)); err != nil {
		return fmt.Errorf("apply %s up migration: %w", name, err)
	}

	return nil
}

// ResetUsersSchema drops and recreates the users schema for tests.
func ResetUsersSchema(ctx context.Context, pool *pgxpool.Pool) error {
	return applyMigrationPair(ctx, pool, "000002_users")
}

// ResetArticlesSchema drops and recreates the articles schema for tests.
func ResetArticlesSchema(ctx context.Context, pool *pgxpool.Pool) error {
	return applyMigrationPair(ctx, pool, "000003_articles")
}

// ResetSavedArticlesSchema drops and recreates the saved_articles schema for tests.
// users and articles must exist first; saved_articles references both.
func ResetSavedArticlesSchema(ctx context.Context, pool *pgxpool.Pool) error {
	return applyMigrationPair(ctx, pool, "000004_saved_articles")
}

// ResetChatSchema drops and recreates the chat schema for tests.
// users must exist first; chat_sessions references it.
func ResetChatSchema(ctx context.Context, pool *pgxpool.Pool) error {
	return applyMigrationPair(ctx, pool, "000005_chat")
}

// ResetAllSchemas rebuilds every table in dependency order.
func ResetAllSchemas(ctx context.Context, pool *pgxpool.Pool) error {
	if err := ResetChatSchema(ctx, pool); err != nil {
		return err
	}
	if err := ResetSavedArticlesSchema(ctx, pool); err != nil {
		return err
	}
	if err := ResetArticlesSchema(ctx, pool); err != nil {
		return err
	}
	if err := ResetUsersSchema(ctx, pool); err != nil {
		return err
	}
	// Re-apply dependents after their referenced tables were recreated.
	if err := ResetSavedArticlesSchema(ctx, pool); err != nil {
		return err
	}
	return ResetChatSchema(ctx, pool)
}

// FlushRedis clears the current Redis database.
func FlushRedis(ctx context.Context, client *redis.Client) error {
	return client.FlushDB(ctx).Err()
}

// ProjectRoot returns the project root directory.
func ProjectRoot() (string, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("failed to resolve testutil path")
	}
	root := filepath.Clean(filepath.Join(filepath.Dir(filename), "..", ".."))
	return root, nil
}

// ============================================================================
// Test Data Factories
// ============================================================================

// NewTestUser creates a test user with sensible defaults.
func NewTestUser(t testing.TB, email string) *model.User {
	t.Helper()
	now := time.Now().UTC()
	return &model.User{
		ID:           fmt.Sprintf("user-%d", now.UnixNano()),
		Email:        email,
		Name:         model.DefaultName(email),
		PasswordHash: "$2a$12$test-hash-not-a-real-credential",
		CreatedAt:    now,
	}
}

// NewTestArticle creates a test article with sensible defaults.
func NewTestArticle(t testing.TB, slug string) *model.Article {
	t.Helper()
	now := time.Now().UTC()
	return &model.Article{
		ID:          fmt.Sprintf("article-%d", now.UnixNano()),
		URL:         "https://news.example.com/" + slug,
		Title:       "Test article " + slug,
		Description: "A test article about " + slug,
		Content:     "Body text for " + slug,
		Source:      "example.com",
		Category:    model.DefaultCategory,
		PublishedAt: now,
		CreatedAt:   now,
	}
}

// NewTestSavedArticle creates a saved-article record linking a user and article.
func NewTestSavedArticle(t testing.TB, userID, articleID string) *model.SavedArticle {
	t.Helper()
	return &model.SavedArticle{
		ID:        UniqueID("saved"),
		UserID:    userID,
		ArticleID: articleID,
		SavedAt:   time.Now().UTC(),
	}
}

// NewTestChatSession creates a test chat session with sensible defaults.
func NewTestChatSession(t testing.TB, userID string) *model.ChatSession {
	t.Helper()
	now := time.Now().UTC()
	return &model.ChatSession{
		ID:        UniqueID("session"),
		UserID:    userID,
		Title:     "Test session",
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UniqueID generates a unique ID for tests.
func UniqueID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

// UniqueEmail generates a unique email address for tests.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@example.com", prefix, time.Now().UnixNano())
}
