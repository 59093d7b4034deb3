//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/newsdesk/newsdesk/internal/auth"
	"github.com/newsdesk/newsdesk/internal/model"
	"github.com/newsdesk/newsdesk/internal/testutil"
)

func newSessionTestEnv(t *testing.T) (context.Context, *Cache) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	ctx := context.Background()
	redisURL := testutil.RequireEnv(t, "REDIS_URL")

	cache, err := New(ctx, redisURL)
	if err != nil {
		t.Fatalf("connect redis: %v", err)
	}
	t.Cleanup(func() {
		_ = testutil.FlushRedis(ctx, cache.Client())
		_ = cache.Close()
	})

	return ctx, cache
}

func TestIntegrationSession_Roundtrip(t *testing.T) {
	ctx, cache := newSessionTestEnv(t)

	token, err := auth.NewSessionToken()
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	identity := &model.Identity{UserID: "user-1", Email: "alice@example.com"}
	if err := cache.SetSession(ctx, token, identity, time.Minute); err != nil {
		t.Fatalf("SetSession failed: %v", err)
	}

	got, err := cache.GetSession(ctx, token)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected identity, got nil")
	}
	if got.UserID != "user-1" || got.Email != "alice@example.com" {
		t.Errorf("unexpected identity: %+v", got)
	}
}

func TestIntegrationSession_UnknownToken(t *testing.T) {
	ctx, cache := newSessionTestEnv(t)

	got, err := cache.GetSession(ctx, "nd_unknown_token")
	if err != nil {
		t.Fatalf("GetSession should not error for unknown tokens: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil identity for unknown token, got %+v", got)
	}
}

func TestIntegrationSession_CorruptEntry(t *testing.T) {
	ctx, cache := newSessionTestEnv(t)

	token, err := auth.NewSessionToken()
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	// A mangled record is treated like a missing session, not a failure.
	if err := cache.Client().Set(ctx, "session:"+token, "{not json", time.Minute).Err(); err != nil {
		t.Fatalf("seed corrupt entry: %v", err)
	}

	got, err := cache.GetSession(ctx, token)
	if err != nil {
		t.Fatalf("GetSession should not error for corrupt entries: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil identity for corrupt entry, got %+v", got)
	}
}

func TestIntegrationSession_Expiry(t *testing.T) {
	ctx, cache := newSessionTestEnv(t)

	token, err := auth.NewSessionToken()
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	identity := &model.Identity{UserID: "user-1", Email: "alice@example.com"}
	if err := cache.SetSession(ctx, token, identity, 50*time.Millisecond); err != nil {
		t.Fatalf("SetSession failed: %v", err)
	}

	time.Sleep(100 * time.Millisecond)

	got, err := cache.GetSession(ctx, token)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected expired session to resolve to nil, got %+v", got)
	}
}

func TestIntegrationSession_Delete(t *testing.T) {
	ctx, cache := newSessionTestEnv(t)

	token, err := auth.NewSessionToken()
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	identity := &model.Identity{UserID: "user-1", Email: "alice@example.com"}
	if err := cache.SetSession(ctx, token, identity, time.Minute); err != nil {
		t.Fatalf("SetSession failed: %v", err)
	}

	if err := cache.DeleteSession(ctx, token); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}

	got, err := cache.GetSession(ctx, token)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil after deletion, got %+v", got)
	}

	// Deleting again is a no-op.
	if err := cache.DeleteSession(ctx, token); err != nil {
		t.Errorf("second DeleteSession should not error: %v", err)
	}
}
