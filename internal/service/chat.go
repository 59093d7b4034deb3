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

// Chat service errors.
var (
	ErrSessionNotFound = errors.New("chat session not found")
	ErrEmptyMessage    = errors.New("message content is required")
)

// ChatStore is the persistence surface the chat flow needs.
// *repository.Repository satisfies it.
type ChatStore interface {
	UserExists(ctx context.Context, id string) (bool, error)
	CreateChatSession(ctx context.Context, session *model.ChatSession) error
	GetChatSession(ctx context.Context, userID, sessionID string) (*model.ChatSession, error)
	ListChatSessions(ctx context.Context, userID string) ([]*model.ChatSession, error)
	DeactivateChatSessions(ctx context.Context, userID string) error
	TouchChatSession(ctx context.Context, sessionID string) error
	CreateChatMessage(ctx context.Context, message *model.ChatMessage) error
	ListChatMessages(ctx context.Context, sessionID string) ([]*model.ChatMessage, error)
	GetArticlesByIDs(ctx context.Context, ids []string) ([]*model.Article, error)
}

// Assistant produces a reply to the user's question about the selected
// articles, given the conversation so far.
type Assistant interface {
	Reply(ctx context.Context, articles []*model.Article, history []*model.ChatMessage, question string) (string, error)
}

// ChatService manages chat sessions and assistant conversations.
type ChatService struct {
	store     ChatStore
	assistant Assistant
	metrics   metrics.Recorder
}

// NewChatService creates a new ChatService.
func NewChatService(store ChatStore, assistant Assistant, recorder metrics.Recorder) *ChatService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &ChatService{store: store, assistant: assistant, metrics: recorder}
}

// ListSessions returns all sessions for a user with their messages,
// most recently updated first.
func (s *ChatService) ListSessions(ctx context.Context, userID string) ([]*model.ChatSession, error) {
	exists, err := s.store.UserExists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	sessions, err := s.store.ListChatSessions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

// CreateSessionInput defines input for creating a chat session.
type CreateSessionInput struct {
	UserID           string
	Title            string   // optional; defaults to the creation date
	SelectedArticles []string // optional ordered article IDs
}

// CreateSession deactivates every existing session for the user and then
// inserts a new active one. The deactivate precedes the insert; two
// concurrent creations can transiently race, which is accepted.
func (s *ChatService) CreateSession(ctx context.Context, input CreateSessionInput) (*model.ChatSession, error) {
	exists, err := s.store.UserExists(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	if err := s.store.DeactivateChatSessions(ctx, input.UserID); err != nil {
		return nil, fmt.Errorf("deactivate sessions: %w", err)
	}

	now := time.Now().UTC()
	title := input.Title
	if title == "" {
		title = "Chat " + now.Format("January 2, 2006")
	}

	session := &model.ChatSession{
		ID:               uuid.New().String(),
		UserID:           input.UserID,
		Title:            title,
		IsActive:         true,
		SelectedArticles: input.SelectedArticles,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.store.CreateChatSession(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.metrics.IncSessionCreated()
	session.Messages = []*model.ChatMessage{}
	return session, nil
}

// SendMessage appends a user message to a session and asks the assistant
// for a reply about the session's selected articles.
//
// The user message is persisted before the assistant is called; an
// assistant failure leaves the user message in place.
func (s *ChatService) SendMessage(ctx context.Context, userID, sessionID, content string) (*model.ChatMessage, *model.ChatMessage, error) {
	if content == "" {
		return nil, nil, ErrEmptyMessage
	}

	session, err := s.store.GetChatSession(ctx, userID, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, nil, ErrSessionNotFound
		}
		return nil, nil, fmt.Errorf("get session: %w", err)
	}

	history, err := s.store.ListChatMessages(ctx, sessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("list messages: %w", err)
	}

	userMessage := &model.ChatMessage{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Role:      model.RoleUser,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.CreateChatMessage(ctx, userMessage); err != nil {
		return nil, nil, fmt.Errorf("store user message: %w", err)
	}

	articles, err := s.store.GetArticlesByIDs(ctx, session.SelectedArticles)
	if err != nil {
		return nil, nil, fmt.Errorf("load selected articles: %w", err)
	}

	start := time.Now()
	reply, err := s.assistant.Reply(ctx, articles, history, content)
	s.metrics.ObserveAssistantDuration(time.Since(start))
	if err != nil {
		s.metrics.IncAssistantReply("failed")
		return nil, nil, fmt.Errorf("assistant reply: %w", err)
	}
	s.metrics.IncAssistantReply("success")

	assistantMessage := &model.ChatMessage{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Role:      model.RoleAssistant,
		Content:   reply,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.CreateChatMessage(ctx, assistantMessage); err != nil {
		return nil, nil, fmt.Errorf("store assistant message: %w", err)
	}

	if err := s.store.TouchChatSession(ctx, sessionID); err != nil {
		return nil, nil, fmt.Errorf("touch session: %w", err)
	}

	return userMessage, assistantMessage, nil
}
