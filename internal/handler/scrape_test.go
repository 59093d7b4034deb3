package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/newsdesk/newsdesk/internal/scraper"
)

type fakeFetcher struct {
	result *scraper.Result
	err    error
	gotURL string
}

func (f *fakeFetcher) FetchArticleContent(ctx context.Context, url string) (*scraper.Result, error) {
	f.gotURL = url
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func newScrapeTestHandler(fetcher *fakeFetcher) *ScrapeHandler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewScrapeHandler(fetcher, logger)
}

func TestScrapeHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		fetcher := &fakeFetcher{result: &scraper.Result{
			URL:     "https://news.example.com/story",
			Title:   "Story",
			Content: "Extracted text",
			Length:  14,
		}}
		h := newScrapeTestHandler(fetcher)

		req := httptest.NewRequest(http.MethodGet, "/test-scrape?url=https://news.example.com/story", nil)
		rec := httptest.NewRecorder()
		h.Scrape(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
		if fetcher.gotURL != "https://news.example.com/story" {
			t.Errorf("fetcher received %q", fetcher.gotURL)
		}

		var result scraper.Result
		if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if result.Content != "Extracted text" {
			t.Errorf("unexpected content: %q", result.Content)
		}
	})

	t.Run("missing url returns 400", func(t *testing.T) {
		h := newScrapeTestHandler(&fakeFetcher{})

		req := httptest.NewRequest(http.MethodGet, "/test-scrape", nil)
		rec := httptest.NewRecorder()
		h.Scrape(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rec.Code)
		}
	})

	t.Run("non-http scheme returns 400", func(t *testing.T) {
		h := newScrapeTestHandler(&fakeFetcher{})

		req := httptest.NewRequest(http.MethodGet, "/test-scrape?url=ftp://example.com/file", nil)
		rec := httptest.NewRecorder()
		h.Scrape(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rec.Code)
		}
	})

	t.Run("fetch failure surfaces the underlying message", func(t *testing.T) {
		h := newScrapeTestHandler(&fakeFetcher{err: errors.New("unexpected status 403")})

		req := httptest.NewRequest(http.MethodGet, "/test-scrape?url=https://news.example.com/blocked", nil)
		rec := httptest.NewRecorder()
		h.Scrape(rec, req)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected status 500, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "unexpected status 403") {
			t.Errorf("expected underlying error in body, got %s", rec.Body.String())
		}
	})
}
