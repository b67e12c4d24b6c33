package search

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"ArticlesPublisher/internal/infrastructure/httpx"
	"ArticlesPublisher/internal/ports"
)

const (
	// DefaultEndpoint is the Google Custom Search JSON API.
	DefaultEndpoint = "https://www.googleapis.com/customsearch/v1"
	// NoContext is returned whenever search yields nothing usable.
	NoContext = ports.NoSearchContext

	defaultResults = 3
)

// GoogleSearcher collects short "- title: snippet" lines for a query.
type GoogleSearcher struct {
	endpoint string
	apiKey   string
	cseID    string
	results  int
	client   *http.Client
	logger   *slog.Logger
}

var _ ports.ContextSearcher = (*GoogleSearcher)(nil)

// Option customises a GoogleSearcher.
type Option func(*GoogleSearcher)

// WithEndpoint points the searcher at another base URL.
func WithEndpoint(endpoint string) Option {
	return func(g *GoogleSearcher) {
		if endpoint != "" {
			g.endpoint = endpoint
		}
	}
}

// WithHTTPClient swaps the underlying client.
func WithHTTPClient(client *http.Client) Option {
	return func(g *GoogleSearcher) {
		if client != nil {
			g.client = client
		}
	}
}

// NewGoogleSearcher builds a searcher; missing credentials make it return NoContext.
func NewGoogleSearcher(apiKey, cseID string, logger *slog.Logger, opts ...Option) *GoogleSearcher {
	if logger == nil {
		logger = slog.Default()
	}
	g := &GoogleSearcher{
		endpoint: DefaultEndpoint,
		apiKey:   apiKey,
		cseID:    cseID,
		results:  defaultResults,
		client:   &http.Client{Timeout: 15 * time.Second},
		logger:   logger,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

type searchResponse struct {
	Items []struct {
		Title       string `json:"title"`
		Snippet     string `json:"snippet"`
		HTMLSnippet string `json:"htmlSnippet"`
	} `json:"items"`
}

// SearchContext never fails; errors are logged and NoContext returned.
func (g *GoogleSearcher) SearchContext(ctx context.Context, query string) string {
	query = strings.TrimSpace(query)
	if query == "" || g.apiKey == "" || g.cseID == "" {
		return NoContext
	}

	params := url.Values{}
	params.Set("key", g.apiKey)
	params.Set("cx", g.cseID)
	params.Set("q", query)
	params.Set("num", strconv.Itoa(g.results))

	var resp searchResponse
	err := httpx.DoJSON(ctx, g.client, httpx.Request{URL: g.endpoint + "?" + params.Encode()}, &resp)
	if err != nil {
		g.logger.Warn("google search failed", "query", query, "error", err)
		return NoContext
	}

	lines := make([]string, 0, g.results)
	for _, item := range resp.Items {
		if len(lines) == g.results {
			break
		}
		snippet := item.Snippet
		if snippet == "" {
			snippet = plainText(item.HTMLSnippet)
		}
		title := plainText(item.Title)
		snippet = plainText(snippet)
		if title == "" && snippet == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("- %s: %s", title, snippet))
	}

	if len(lines) == 0 {
		return NoContext
	}
	return strings.Join(lines, "\n")
}

func plainText(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return strings.Join(strings.Fields(fragment), " ")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.Join(strings.Fields(fragment), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
