// Package extract fetches landing pages and reduces them to their visible copy.
package extract

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/f3rmion/grader/internal/grader"
	"github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
)

// maxPageBytes caps how much of a page is read.
const maxPageBytes = 5 << 20

// junkSelector matches elements that never carry landing page copy.
const junkSelector = "script, style, nav, footer, header"

// Page is the readable content of a fetched page.
type Page struct {
	URL   string
	Title string
	Text  string
}

// Fetcher downloads pages over HTTP.
type Fetcher struct {
	client    *http.Client
	userAgent string
	logger    *slog.Logger
}

// NewFetcher creates a fetcher. A nil client uses http.DefaultClient.
func NewFetcher(client *http.Client, userAgent string, logger *slog.Logger) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Fetcher{client: client, userAgent: userAgent, logger: logger}
}

// Fetch downloads rawURL and extracts its readable text.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	pageURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing url: %w", err)
	}
	if pageURL.Scheme != "http" && pageURL.Scheme != "https" {
		return nil, fmt.Errorf("unsupported url scheme %q", pageURL.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	f.logger.Info("fetching page", "url", rawURL)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching page: status code %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("reading page: %w", err)
	}

	page, err := ExtractText(string(body), pageURL)
	if err != nil {
		return nil, err
	}

	f.logger.Debug("extracted page", "url", rawURL, "title", page.Title, "chars", len(page.Text))
	return page, nil
}

// ExtractText strips non-content elements from raw HTML and returns the remaining
// text one trimmed, non-empty line at a time.
func ExtractText(rawHTML string, pageURL *url.URL) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}

	page := &Page{}
	if pageURL != nil {
		page.URL = pageURL.String()
	} else {
		pageURL = &url.URL{}
	}

	// Readability is only a helper here; a page it can't score still has text.
	rp := readability.NewParser()
	article, rErr := rp.Parse(strings.NewReader(rawHTML), pageURL)

	page.Title = strings.TrimSpace(doc.Find("title").First().Text())
	if rErr == nil && strings.TrimSpace(article.Title) != "" {
		page.Title = strings.TrimSpace(article.Title)
	}

	doc.Find(junkSelector).Remove()
	page.Text = visibleText(doc.Selection)

	if page.Text == "" && rErr == nil && article.Content != "" {
		if main, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content)); err == nil {
			page.Text = visibleText(main.Selection)
		}
	}

	if page.Text == "" {
		return nil, fmt.Errorf("no readable text found at %s", page.URL)
	}

	return page, nil
}

// visibleText joins every text node under sel, one trimmed line per line of source text.
func visibleText(sel *goquery.Selection) string {
	var lines []string

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			for _, line := range strings.Split(n.Data, "\n") {
				if line = strings.TrimSpace(line); line != "" {
					lines = append(lines, line)
				}
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for _, n := range sel.Nodes {
		walk(n)
	}

	return strings.Join(lines, "\n")
}

// LocalAnalyzer fetches URL submissions itself and forwards them as raw text.
type LocalAnalyzer struct {
	Fetcher *Fetcher
	Next    grader.Analyzer
}

// Analyze implements grader.Analyzer.
func (a *LocalAnalyzer) Analyze(ctx context.Context, req grader.AnalyzeRequest) (*grader.AnalyzeResponse, error) {
	if req.URL == "" {
		return a.Next.Analyze(ctx, req)
	}

	page, err := a.Fetcher.Fetch(ctx, req.URL)
	if err != nil {
		return nil, fmt.Errorf("fetching %s locally: %w", req.URL, err)
	}

	return a.Next.Analyze(ctx, grader.AnalyzeRequest{RawText: page.Text})
}
