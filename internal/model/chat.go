package model

import (
	"encoding/json"
	"time"
)

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatSession is a conversation a user holds with the assistant.
// At most one session per user is active at a time; activating a new
// session deactivates all others first.
type ChatSession struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// SelectedArticles is the ordered list of article IDs the session is
	// about. Stored serialized as a JSON array; nil means no selection.
	SelectedArticles []string `json:"selected_articles,omitempty"`

	// Messages are ordered by creation time ascending.
	Messages     []*ChatMessage `json:"messages,omitempty"`
	MessageCount int            `json:"message_count"`
}

// ChatMessage is a single message within a session.
type ChatMessage struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// EncodeSelection serializes an article-ID selection for storage.
// Returns nil for an empty selection so the column stays NULL.
func EncodeSelection(ids []string) (*string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return nil, err
	}
	s := string(data)
	return &s, nil
}

// DecodeSelection parses a stored selection back into article IDs.
// A NULL column decodes to nil.
func DecodeSelection(raw *string) ([]string, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(*raw), &ids); err != nil {
		return nil, err
	}
	return ids, nil
}
