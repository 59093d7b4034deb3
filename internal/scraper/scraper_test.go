package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const fixturePage = `<!DOCTYPE html>
<html>
<head>
	<title>Breaking: Go Module Released</title>
	<style>body { color: red; }</style>
	<script>console.log("tracking");</script>
</head>
<body>
	<nav>Home | World | Tech</nav>
	<header>Site banner</header>
	<article>
		<h1>Breaking: Go Module Released</h1>
		<p>The first paragraph of   the story.</p>
		<p>The second paragraph.</p>
	</article>
	<aside>Related links</aside>
	<footer>Copyright notice</footer>
</body>
</html>`

func TestFetchArticleContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); !strings.HasPrefix(ua, "newsdesk-bot/") {
			t.Errorf("unexpected User-Agent: %s", ua)
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(fixturePage))
	}))
	defer srv.Close()

	s := New(5 * time.Second)
	result, err := s.FetchArticleContent(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("FetchArticleContent failed: %v", err)
	}

	if result.Title != "Breaking: Go Module Released" {
		t.Errorf("title = %q", result.Title)
	}
	if !strings.Contains(result.Content, "The first paragraph of the story.") {
		t.Errorf("content missing article text (whitespace should be collapsed): %q", result.Content)
	}
	if !strings.Contains(result.Content, "The second paragraph.") {
		t.Errorf("content missing second paragraph: %q", result.Content)
	}

	// Non-content subtrees are skipped.
	for _, chrome := range []string{"console.log", "color: red", "Home | World | Tech", "Site banner", "Related links", "Copyright notice"} {
		if strings.Contains(result.Content, chrome) {
			t.Errorf("content should not include %q", chrome)
		}
	}

	if result.Length != len(result.Content) {
		t.Errorf("length = %d, want %d", result.Length, len(result.Content))
	}
	if result.URL != srv.URL {
		t.Errorf("url = %q, want %q", result.URL, srv.URL)
	}
}

func TestFetchArticleContent_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	s := New(5 * time.Second)
	_, err := s.FetchArticleContent(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("expected error for 403 response")
	}
	if !strings.Contains(err.Error(), "403") {
		t.Errorf("error should mention the status code: %v", err)
	}
}

func TestFetchArticleContent_EmptyPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head><script>only.scripts()</script></head><body></body></html>`))
	}))
	defer srv.Close()

	s := New(5 * time.Second)
	_, err := s.FetchArticleContent(context.Background(), srv.URL)
	if !errors.Is(err, ErrEmptyContent) {
		t.Errorf("expected ErrEmptyContent, got %v", err)
	}
}

func TestFetchArticleContent_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New(5 * time.Second)
	if _, err := s.FetchArticleContent(ctx, srv.URL); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestExtract_TitleOnlyOnce(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head><title>First</title></head><body><p>Text here.</p><title>Second</title></body></html>`))
	}))
	defer srv.Close()

	s := New(5 * time.Second)
	result, err := s.FetchArticleContent(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("FetchArticleContent failed: %v", err)
	}
	if result.Title != "First" {
		t.Errorf("title = %q, want First", result.Title)
	}
}
