// Package scraper fetches article pages and extracts their readable text.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// maxBodyBytes caps how much of a page is read before parsing.
const maxBodyBytes = 5 << 20 // 5MB

// userAgent identifies the fetcher to origin servers.
const userAgent = "newsdesk-bot/1.0 (+https://github.com/newsdesk/newsdesk)"

// ErrEmptyContent indicates the page yielded no extractable text.
var ErrEmptyContent = errors.New("no readable content found")

// Result holds the extracted content of a fetched page.
type Result struct {
	URL     string `json:"url"`
	Title   string `json:"title,omitempty"`
	Content string `json:"content"`
	Length  int    `json:"length"`
}

// Scraper fetches and extracts article content over HTTP.
type Scraper struct {
	client *http.Client
}

// New creates a Scraper with the given request timeout.
func New(timeout time.Duration) *Scraper {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Scraper{
		client: &http.Client{Timeout: timeout},
	}
}

// FetchArticleContent downloads the page at url and extracts its text.
func (s *Scraper) FetchArticleContent(ctx context.Context, url string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}

	title, content := extract(doc)
	if content == "" {
		return nil, ErrEmptyContent
	}

	return &Result{
		URL:     url,
		Title:   title,
		Content: content,
		Length:  len(content),
	}, nil
}

// skippedElements are tags whose subtree carries no article text.
var skippedElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"iframe":   true,
	"svg":      true,
	"nav":      true,
	"header":   true,
	"footer":   true,
	"aside":    true,
	"form":     true,
}

// extract walks the parsed document collecting the title and body text.
func extract(doc *html.Node) (title, content string) {
	var parts []string

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if skippedElements[n.Data] {
				return
			}
			if n.Data == "title" && title == "" && n.FirstChild != nil {
				title = strings.TrimSpace(n.FirstChild.Data)
				return
			}
		}

		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				parts = append(parts, text)
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	// Collapse runs of whitespace left by markup boundaries.
	content = strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
	return title, content
}
