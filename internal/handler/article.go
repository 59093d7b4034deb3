package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/newsdesk/newsdesk/internal/handler/dto"
	"github.com/newsdesk/newsdesk/internal/model"
	"github.com/newsdesk/newsdesk/internal/repository"
)

// ArticleReader is the read surface the article endpoints need.
// *repository.Repository satisfies it.
type ArticleReader interface {
	ListArticles(ctx context.Context, filter repository.ArticleFilter, limit int) ([]*model.Article, error)
	GetArticleByID(ctx context.Context, id string) (*model.Article, error)
}

// ArticleHandler handles public article browsing.
type ArticleHandler struct {
	store  ArticleReader
	logger *slog.Logger
	dev    bool
}

// NewArticleHandler creates a new ArticleHandler.
func NewArticleHandler(store ArticleReader, logger *slog.Logger, dev bool) *ArticleHandler {
	return &ArticleHandler{
		store:  store,
		logger: logger,
		dev:    dev,
	}
}

// List handles GET /api/v1/articles?category=&q=&limit=.
func (h *ArticleHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := repository.ArticleFilter{
		Category: query.Get("category"),
		Query:    query.Get("q"),
	}

	articles, err := h.store.ListArticles(r.Context(), filter, parseLimit(query.Get("limit")))
	if err != nil {
		h.logger.Error("internal_error", "error", err)
		writeErrorDetails(w, http.StatusInternalServerError, "an internal error occurred", err.Error(), h.dev)
		return
	}

	writeJSON(w, http.StatusOK, dto.ArticleListResponse{
		Data:  articles,
		Count: len(articles),
	})
}

// Get handles GET /api/v1/articles/{id}.
func (h *ArticleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "article ID is required")
		return
	}

	article, err := h.store.GetArticleByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrArticleNotFound) {
			writeError(w, http.StatusNotFound, "article not found")
			return
		}
		h.logger.Error("internal_error", "error", err)
		writeErrorDetails(w, http.StatusInternalServerError, "an internal error occurred", err.Error(), h.dev)
		return
	}

	writeJSON(w, http.StatusOK, article)
}

// parseLimit ensures a sane integer limit, with bounds.
func parseLimit(s string) int {
	l, err := strconv.Atoi(s)
	if err != nil || l <= 0 {
		return 20
	}
	if l > 100 {
		return 100
	}
	return l
}
