package images

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ArticlesPublisher/internal/infrastructure/httpx"
	"ArticlesPublisher/internal/ports"
)

// DefaultEndpoint is the Pexels photo search API.
const DefaultEndpoint = "https://api.pexels.com/v1/search"

// ErrNoImage means the search returned no usable photo.
var ErrNoImage = errors.New("no image found")

// Photo is the subset of a Pexels photo the finder scores.
type Photo struct {
	Width  int               `json:"width"`
	Height int               `json:"height"`
	Alt    string            `json:"alt"`
	Src    map[string]string `json:"src"`
}

// PexelsFinder picks the most relevant landscape photo for a query.
type PexelsFinder struct {
	endpoint string
	apiKey   string
	perPage  int
	client   *http.Client
}

var _ ports.ImageFinder = (*PexelsFinder)(nil)

// NewPexelsFinder builds a finder; endpoint may be empty for the public API.
func NewPexelsFinder(apiKey, endpoint string) *PexelsFinder {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &PexelsFinder{
		endpoint: endpoint,
		apiKey:   apiKey,
		perPage:  8,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// FindImage returns the URL of the best-scoring photo.
func (p *PexelsFinder) FindImage(ctx context.Context, query string) (string, error) {
	if p.apiKey == "" {
		return "", fmt.Errorf("pexels finder misconfigured")
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", fmt.Sprint(p.perPage))
	params.Set("orientation", "landscape")
	params.Set("size", "large")

	var resp struct {
		Photos []Photo `json:"photos"`
	}
	err := httpx.DoJSON(ctx, p.client, httpx.Request{
		URL:    p.endpoint + "?" + params.Encode(),
		Header: http.Header{"Authorization": {p.apiKey}},
	}, &resp)
	if err != nil {
		return "", fmt.Errorf("pexels search: %w", err)
	}

	best, ok := BestPhoto(resp.Photos, Keywords(query))
	if !ok {
		return "", ErrNoImage
	}
	if src := PreferredSource(best); src != "" {
		return src, nil
	}
	return "", ErrNoImage
}

// Keywords lower-cases the query words longer than two characters.
func Keywords(query string) []string {
	var out []string
	for _, w := range strings.Fields(strings.ToLower(query)) {
		if len([]rune(w)) > 2 {
			out = append(out, w)
		}
	}
	return out
}

// Score gives +2 per keyword found in the alt text and +1 for landscape shape.
func Score(photo Photo, keywords []string) int {
	alt := strings.ToLower(photo.Alt)
	score := 0
	for _, k := range keywords {
		if strings.Contains(alt, k) {
			score += 2
		}
	}
	if photo.Width >= photo.Height {
		score++
	}
	return score
}

// BestPhoto returns the first photo with the highest score.
func BestPhoto(photos []Photo, keywords []string) (Photo, bool) {
	if len(photos) == 0 {
		return Photo{}, false
	}
	best, bestScore := photos[0], Score(photos[0], keywords)
	for _, photo := range photos[1:] {
		if s := Score(photo, keywords); s > bestScore {
			best, bestScore = photo, s
		}
	}
	return best, true
}

// PreferredSource prefers optimised sizes over the original upload.
func PreferredSource(photo Photo) string {
	for _, size := range []string{"large", "medium", "large2x", "original"} {
		if src := photo.Src[size]; src != "" {
			return src
		}
	}
	return ""
}
