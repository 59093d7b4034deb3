package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/newsdesk/newsdesk/internal/model"
)

// Common errors for chat repository operations.
var (
	ErrSessionNotFound = errors.New("chat session not found")
)

// CreateChatSession inserts a new chat session.
func (r *Repository) CreateChatSession(ctx context.Context, session *model.ChatSession) error {
	selection, err := model.EncodeSelection(session.SelectedArticles)
	if err != nil {
		return fmt.Errorf("failed to encode article selection: %w", err)
	}

	query := `
		INSERT INTO chat_sessions (id, user_id, title, is_active, selected_articles, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = r.pool.Exec(ctx, query,
		session.ID,
		session.UserID,
		session.Title,
		session.IsActive,
		selection,
		session.CreatedAt,
		session.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create chat session: %w", err)
	}

	return nil
}

// GetChatSession retrieves a session by ID, scoped to its owner.
func (r *Repository) GetChatSession(ctx context.Context, userID, sessionID string) (*model.ChatSession, error) {
	query := `
		SELECT id, user_id, title, is_active, selected_articles, created_at, updated_at
		FROM chat_sessions
		WHERE id = $1 AND user_id = $2
	`

	session, err := scanChatSession(r.pool.QueryRow(ctx, query, sessionID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get chat session: %w", err)
	}

	return session, nil
}

// ListChatSessions retrieves all sessions for a user ordered by last
// update descending, each populated with its messages and message count.
func (r *Repository) ListChatSessions(ctx context.Context, userID string) ([]*model.ChatSession, error) {
	query := `
		SELECT id, user_id, title, is_active, selected_articles, created_at, updated_at
		FROM chat_sessions
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat sessions: %w", err)
	}
	defer rows.Close()

	sessions := []*model.ChatSession{}
	for rows.Next() {
		session, err := scanChatSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan chat session: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating chat sessions: %w", err)
	}

	for _, session := range sessions {
		messages, err := r.ListChatMessages(ctx, session.ID)
		if err != nil {
			return nil, err
		}
		session.Messages = messages
		session.MessageCount = len(messages)
	}

	return sessions, nil
}

// DeactivateChatSessions marks every session for a user inactive.
// Called strictly before inserting a new active session; two concurrent
// creations can race, which is accepted behavior.
func (r *Repository) DeactivateChatSessions(ctx context.Context, userID string) error {
	query := `UPDATE chat_sessions SET is_active = FALSE, updated_at = $2 WHERE user_id = $1`

	if _, err := r.pool.Exec(ctx, query, userID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to deactivate chat sessions: %w", err)
	}

	return nil
}

// TouchChatSession bumps a session's updated_at timestamp.
func (r *Repository) TouchChatSession(ctx context.Context, sessionID string) error {
	query := `UPDATE chat_sessions SET updated_at = $2 WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, sessionID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to touch chat session: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// CreateChatMessage appends a message to a session.
func (r *Repository) CreateChatMessage(ctx context.Context, message *model.ChatMessage) error {
	query := `
		INSERT INTO chat_messages (id, session_id, role, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		message.ID,
		message.SessionID,
		message.Role,
		message.Content,
		message.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create chat message: %w", err)
	}

	return nil
}

// ListChatMessages retrieves a session's messages ordered by creation
// time ascending.
func (r *Repository) ListChatMessages(ctx context.Context, sessionID string) ([]*model.ChatMessage, error) {
	query := `
		SELECT id, session_id, role, content, created_at
		FROM chat_messages
		WHERE session_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}
	defer rows.Close()

	messages := []*model.ChatMessage{}
	for rows.Next() {
		var message model.ChatMessage
		err := rows.Scan(
			&message.ID,
			&message.SessionID,
			&message.Role,
			&message.Content,
			&message.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan chat message: %w", err)
		}
		messages = append(messages, &message)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating chat messages: %w", err)
	}

	return messages, nil
}

// scanChatSession scans a single row into a ChatSession model.
func scanChatSession(row pgx.Row) (*model.ChatSession, error) {
	var session model.ChatSession
	var selection *string
	err := row.Scan(
		&session.ID,
		&session.UserID,
		&session.Title,
		&session.IsActive,
		&selection,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	ids, err := model.DecodeSelection(selection)
	if err != nil {
		return nil, fmt.Errorf("failed to decode article selection: %w", err)
	}
	session.SelectedArticles = ids

	return &session, nil
}
