package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/newsdesk/newsdesk/internal/auth"
	"github.com/newsdesk/newsdesk/internal/handler/dto"
	"github.com/newsdesk/newsdesk/internal/service"
)

// ChatHandler handles HTTP requests for chat session operations.
type ChatHandler struct {
	svc    *service.ChatService
	logger *slog.Logger
	dev    bool
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(svc *service.ChatService, logger *slog.Logger, dev bool) *ChatHandler {
	return &ChatHandler{
		svc:    svc,
		logger: logger,
		dev:    dev,
	}
}

// List handles GET /api/v1/chat-sessions.
func (h *ChatHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	sessions, err := h.svc.ListSessions(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ChatSessionListResponse{
		Data:  sessions,
		Count: len(sessions),
	})
}

// Create handles POST /api/v1/chat-sessions.
func (h *ChatHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	var req dto.CreateChatSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.svc.CreateSession(r.Context(), service.CreateSessionInput{
		UserID:           userID,
		Title:            req.Title,
		SelectedArticles: req.SelectedArticles,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("chat_session_created",
		"user_id", userID,
		"session_id", session.ID,
		"selected_articles", len(session.SelectedArticles),
	)

	writeJSON(w, http.StatusCreated, session)
}

// SendMessage handles POST /api/v1/chat-sessions/{id}/messages.
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	sessionID := chi.URLParam(r, "id")
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "session ID is required")
		return
	}

	var req dto.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	userMsg, assistantMsg, err := h.svc.SendMessage(r.Context(), userID, sessionID, req.Content)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("chat_message_exchanged",
		"user_id", userID,
		"session_id", sessionID,
	)

	writeJSON(w, http.StatusOK, dto.ChatExchangeResponse{
		UserMessage:      userMsg,
		AssistantMessage: assistantMsg,
	})
}

// handleServiceError maps service errors to HTTP responses.
func (h *ChatHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyMessage):
		writeError(w, http.StatusBadRequest, "message content is required")
	case errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "user not found")
	case errors.Is(err, service.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "chat session not found")
	default:
		h.logger.Error("internal_error", "error", err)
		writeErrorDetails(w, http.StatusInternalServerError, "an internal error occurred", err.Error(), h.dev)
	}
}
