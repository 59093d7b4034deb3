package dto

import "github.com/newsdesk/newsdesk/internal/model"

// CreateChatSessionRequest represents the request body for creating a session.
type CreateChatSessionRequest struct {
	Title            string   `json:"title,omitempty"`
	SelectedArticles []string `json:"selected_articles,omitempty"`
}

// ChatSessionListResponse represents a user's chat sessions.
type ChatSessionListResponse struct {
	Data  []*model.ChatSession `json:"data"`
	Count int                  `json:"count"`
}

// SendMessageRequest represents the request body for sending a message.
type SendMessageRequest struct {
	Content string `json:"content"`
}

// ChatExchangeResponse carries the stored user message and the
// assistant's reply.
type ChatExchangeResponse struct {
	UserMessage      *model.ChatMessage `json:"user_message"`
	AssistantMessage *model.ChatMessage `json:"assistant_message"`
}
