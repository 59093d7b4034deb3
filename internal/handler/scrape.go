package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/newsdesk/newsdesk/internal/scraper"
)

// ContentFetcher fetches and extracts article content from a URL.
// *scraper.Scraper satisfies it.
type ContentFetcher interface {
	FetchArticleContent(ctx context.Context, url string) (*scraper.Result, error)
}

// ScrapeHandler serves the content-fetch diagnostic endpoint.
type ScrapeHandler struct {
	fetcher ContentFetcher
	logger  *slog.Logger
}

// NewScrapeHandler creates a new ScrapeHandler.
func NewScrapeHandler(fetcher ContentFetcher, logger *slog.Logger) *ScrapeHandler {
	return &ScrapeHandler{
		fetcher: fetcher,
		logger:  logger,
	}
}

// Scrape handles GET /test-scrape?url=URL.
// Fetch failures surface the underlying message; this endpoint exists
// for diagnostics, not production traffic.
func (h *ScrapeHandler) Scrape(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	if url == "" {
		writeError(w, http.StatusBadRequest, "url query parameter is required")
		return
	}

	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		writeError(w, http.StatusBadRequest, "url must be http or https")
		return
	}

	result, err := h.fetcher.FetchArticleContent(r.Context(), url)
	if err != nil {
		h.logger.Error("scrape_failed", "url", url, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}
