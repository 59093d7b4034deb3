package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/newsdesk/newsdesk/internal/auth"
	"github.com/newsdesk/newsdesk/internal/handler/dto"
	"github.com/newsdesk/newsdesk/internal/service"
)

// SavedArticleHandler handles HTTP requests for saved-article operations.
type SavedArticleHandler struct {
	svc    *service.SavedArticleService
	logger *slog.Logger
	dev    bool
}

// NewSavedArticleHandler creates a new SavedArticleHandler.
func NewSavedArticleHandler(svc *service.SavedArticleService, logger *slog.Logger, dev bool) *SavedArticleHandler {
	return &SavedArticleHandler{
		svc:    svc,
		logger: logger,
		dev:    dev,
	}
}

// List handles GET /api/v1/saved-articles.
func (h *SavedArticleHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	saved, err := h.svc.ListSavedArticles(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.SavedArticleListResponse{
		Data:  saved,
		Count: len(saved),
	})
}

// Save handles POST /api/v1/saved-articles.
func (h *SavedArticleHandler) Save(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	var req dto.SaveArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.ArticleID == "" {
		writeError(w, http.StatusBadRequest, "article_id is required")
		return
	}

	saved, err := h.svc.SaveArticle(r.Context(), service.SaveArticleInput{
		UserID:    userID,
		ArticleID: req.ArticleID,
		Article:   req.Article.ToArticleData(),
		Notes:     req.Notes,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("article_saved",
		"user_id", userID,
		"article_id", saved.ArticleID,
		"has_notes", saved.Notes != nil,
	)

	writeJSON(w, http.StatusOK, saved)
}

// Remove handles DELETE /api/v1/saved-articles?articleId=ID.
func (h *SavedArticleHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	articleID := r.URL.Query().Get("articleId")
	if articleID == "" {
		writeError(w, http.StatusBadRequest, "articleId query parameter is required")
		return
	}

	if err := h.svc.RemoveSavedArticle(r.Context(), userID, articleID); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("article_unsaved", "user_id", userID, "article_id", articleID)

	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "article removed from saved list"})
}

// handleServiceError maps service errors to HTTP responses.
func (h *SavedArticleHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidArticleData):
		writeError(w, http.StatusBadRequest, "invalid article data")
	case errors.Is(err, service.ErrArticleNotFound):
		writeError(w, http.StatusNotFound, "article not found")
	case errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "user not found")
	case errors.Is(err, service.ErrAlreadySaved):
		writeError(w, http.StatusConflict, "article already saved")
	case errors.Is(err, service.ErrSavedArticleNotFound):
		writeError(w, http.StatusNotFound, "saved article not found")
	default:
		h.logger.Error("internal_error", "error", err)
		writeErrorDetails(w, http.StatusInternalServerError, "an internal error occurred", err.Error(), h.dev)
	}
}
