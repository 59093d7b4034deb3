package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/newsdesk/newsdesk/internal/model"
)

// sessionKeyPrefix is the Redis key prefix for session records.
const sessionKeyPrefix = "session:"

// storedSession is the session payload persisted in Redis.
type storedSession struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// SetSession stores a session token mapped to its verified identity.
func (c *Cache) SetSession(ctx context.Context, token string, identity *model.Identity, ttl time.Duration) error {
	data, err := json.Marshal(storedSession{
		UserID: identity.UserID,
		Email:  identity.Email,
	})
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	return c.client.Set(ctx, sessionKeyPrefix+token, data, ttl).Err()
}

// GetSession resolves a session token to its identity.
// Returns (nil, nil) when the token is unknown or expired: absence of a
// session is a normal outcome, not an error. Infrastructure failures are
// returned as errors so callers can tell an outage from a bad token.
func (c *Cache) GetSession(ctx context.Context, token string) (*model.Identity, error) {
	data, err := c.client.Get(ctx, sessionKeyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// Unknown token or expired key - treat as unauthenticated
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	var stored storedSession
	if err := json.Unmarshal(data, &stored); err != nil {
		// Corrupted entry - treat as unauthenticated
		return nil, nil //nolint:nilerr
	}

	return &model.Identity{
		UserID: stored.UserID,
		Email:  stored.Email,
	}, nil
}

// DeleteSession removes a session token. Used at logout.
func (c *Cache) DeleteSession(ctx context.Context, token string) error {
	return c.client.Del(ctx, sessionKeyPrefix+token).Err()
}
