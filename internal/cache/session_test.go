package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// unreachableCache points at a port nothing listens on, so every command
// fails with a connection error rather than redis.Nil.
func unreachableCache() *Cache {
	return &Cache{
		client: redis.NewClient(&redis.Options{
			Addr:        "127.0.0.1:1",
			DialTimeout: 100 * time.Millisecond,
			MaxRetries:  -1,
		}),
	}
}

func TestGetSession_StoreUnavailableReturnsError(t *testing.T) {
	cache := unreachableCache()
	defer cache.Close()

	identity, err := cache.GetSession(context.Background(), "nd_token")
	if err == nil {
		t.Fatal("expected an error when the store is unreachable, got nil")
	}
	if identity != nil {
		t.Errorf("expected nil identity on store failure, got %+v", identity)
	}
}
