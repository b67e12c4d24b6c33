package wordpress

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"html"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"ArticlesPublisher/internal/domain"
	"ArticlesPublisher/internal/infrastructure/httpx"
	"ArticlesPublisher/internal/ports"
	"ArticlesPublisher/internal/termcache"
)

const (
	TaxonomyTags       = "tags"
	TaxonomyCategories = "categories"

	maxImageBytes = 20 << 20
)

// Config holds site credentials.
type Config struct {
	URL         string
	Username    string
	AppPassword string
	Status      domain.PublishStatus
}

// Client publishes posts and media through the WordPress REST API.
type Client struct {
	cfg    Config
	terms  termcache.Cache
	http   *http.Client
	logger *slog.Logger
}

var (
	_ ports.Publisher     = (*Client)(nil)
	_ ports.MediaUploader = (*Client)(nil)
)

// NewClient wires credentials with a term cache; a nil cache means in-memory.
func NewClient(cfg Config, terms termcache.Cache, logger *slog.Logger) *Client {
	if terms == nil {
		terms = termcache.NewMemory()
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Status == "" {
		cfg.Status = domain.StatusPublish
	}
	cfg.URL = strings.TrimRight(cfg.URL, "/")
	return &Client{
		cfg:    cfg,
		terms:  terms,
		http:   &http.Client{Timeout: 30 * time.Second},
		logger: logger,
	}
}

// SiteURL is the base URL posts are published under.
func (c *Client) SiteURL() string {
	return c.cfg.URL
}

func (c *Client) endpoint(path string) string {
	return c.cfg.URL + "/wp-json/wp/v2/" + path
}

func (c *Client) authHeader() http.Header {
	h := http.Header{}
	creds := c.cfg.Username + ":" + c.cfg.AppPassword
	h.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(creds)))
	return h
}

// UploadMedia downloads the image and stores it in the media library.
func (c *Client) UploadMedia(ctx context.Context, imageURL, title string) (int, error) {
	if c.cfg.URL == "" {
		return 0, errors.New("wordpress client misconfigured")
	}

	data, contentType, err := c.download(ctx, imageURL)
	if err != nil {
		return 0, err
	}

	filename := uuid.NewString() + extensionFor(contentType)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("media"), bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("new upload request: %w", err)
	}
	req.Header = c.authHeader()
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	req.Header.Set("Accept", "application/json")

	var media struct {
		ID int `json:"id"`
	}
	if err := httpx.Do(c.http, req, []int{http.StatusCreated}, &media); err != nil {
		return 0, fmt.Errorf("upload media %q: %w", title, err)
	}
	if media.ID == 0 {
		return 0, errors.New("upload media: empty id")
	}
	return media.ID, nil
}

func (c *Client) download(ctx context.Context, imageURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("new download request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("download image: unexpected status %s", resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, "", fmt.Errorf("read image: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil && strings.HasPrefix(mediaType, "image/") {
		return data, mediaType, nil
	}
	return data, "image/jpeg", nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}

type postPayload struct {
	Title         string `json:"title"`
	Content       string `json:"content"`
	Status        string `json:"status"`
	Slug          string `json:"slug"`
	Excerpt       string `json:"excerpt"`
	FeaturedMedia int    `json:"featured_media,omitempty"`
	Tags          []int  `json:"tags,omitempty"`
	Categories    []int  `json:"categories,omitempty"`
}

// Publish creates the post; WordPress must answer 201.
func (c *Client) Publish(ctx context.Context, draft domain.ArticleDraft, featuredMediaID int) (domain.Published, error) {
	if c.cfg.URL == "" {
		return domain.Published{}, errors.New("wordpress client misconfigured")
	}

	payload := postPayload{
		Title:         draft.Title,
		Content:       draft.HTMLContent,
		Status:        string(c.cfg.Status),
		Slug:          draft.Slug,
		Excerpt:       draft.MetaDescription,
		FeaturedMedia: featuredMediaID,
		Tags:          c.EnsureTerms(ctx, draft.Tags, TaxonomyTags),
	}
	if draft.Category != "" {
		payload.Categories = c.EnsureTerms(ctx, []string{draft.Category}, TaxonomyCategories)
	}

	var post struct {
		ID     int    `json:"id"`
		Link   string `json:"link"`
		Status string `json:"status"`
	}
	err := httpx.DoJSON(ctx, c.http, httpx.Request{
		Method:  http.MethodPost,
		URL:     c.endpoint("posts"),
		Payload: payload,
		Header:  c.authHeader(),
		Expect:  []int{http.StatusCreated},
	}, &post)
	if err != nil {
		return domain.Published{}, fmt.Errorf("publish post: %w", err)
	}

	status := domain.PublishStatus(post.Status)
	if status == "" {
		status = c.cfg.Status
	}
	return domain.Published{ID: post.ID, Link: post.Link, Status: status}, nil
}

// EnsureTerms resolves names to term ids, creating missing terms. Names that
// cannot be resolved are logged and skipped.
func (c *Client) EnsureTerms(ctx context.Context, names []string, taxonomy string) []int {
	var ids []int
	seen := map[int]bool{}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		id, err := c.termID(ctx, name, taxonomy)
		if err != nil {
			c.logger.Warn("resolve term failed", "taxonomy", taxonomy, "name", name, "error", err)
			continue
		}
		if id > 0 && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}

func (c *Client) termID(ctx context.Context, name, taxonomy string) (int, error) {
	if id, ok := c.terms.Get(taxonomy, name); ok {
		return id, nil
	}

	id, err := c.findTerm(ctx, name, taxonomy)
	if err != nil {
		c.logger.Debug("term search failed", "taxonomy", taxonomy, "name", name, "error", err)
	}
	if id == 0 {
		id, err = c.createTerm(ctx, name, taxonomy)
		if err != nil {
			return 0, err
		}
	}

	if err := c.terms.Put(taxonomy, name, id); err != nil {
		c.logger.Warn("cache term failed", "taxonomy", taxonomy, "name", name, "error", err)
	}
	return id, nil
}

type term struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func (c *Client) findTerm(ctx context.Context, name, taxonomy string) (int, error) {
	params := url.Values{}
	params.Set("search", name)
	params.Set("per_page", strconv.Itoa(50))

	var terms []term
	err := httpx.DoJSON(ctx, c.http, httpx.Request{
		URL:    c.endpoint(taxonomy) + "?" + params.Encode(),
		Header: c.authHeader(),
	}, &terms)
	if err != nil {
		return 0, fmt.Errorf("search %s: %w", taxonomy, err)
	}

	want := strings.ToLower(name)
	for _, t := range terms {
		if strings.ToLower(html.UnescapeString(t.Name)) == want {
			return t.ID, nil
		}
	}
	return 0, nil
}

func (c *Client) createTerm(ctx context.Context, name, taxonomy string) (int, error) {
	var created term
	err := httpx.DoJSON(ctx, c.http, httpx.Request{
		Method:  http.MethodPost,
		URL:     c.endpoint(taxonomy),
		Payload: map[string]string{"name": name},
		Header:  c.authHeader(),
		Expect:  []int{http.StatusOK, http.StatusCreated},
	}, &created)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", taxonomy, err)
	}
	if created.ID == 0 {
		return 0, fmt.Errorf("create %s: empty id", taxonomy)
	}
	return created.ID, nil
}
