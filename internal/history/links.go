package history

import (
	"regexp"
	"sort"
	"strings"

	"ArticlesPublisher/internal/domain"
)

const (
	// DefaultMaxLinks is how many related articles get cross-linked.
	DefaultMaxLinks = 2
	// DefaultRecentTitles bounds the titles handed to the generator.
	DefaultRecentTitles = 50
)

var wordTokens = regexp.MustCompile(`[\p{L}\p{N}\p{Mn}_']+`)

// IsDuplicate reports whether title matches any recorded title, ignoring case
// and surrounding whitespace.
func IsDuplicate(title string, records []domain.ArticleRecord) bool {
	normalized := normalizeTitle(title)
	for _, rec := range records {
		if normalizeTitle(rec.Title) == normalized {
			return true
		}
	}
	return false
}

func normalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// RecentTitles returns up to limit of the newest titles, oldest first.
func RecentTitles(records []domain.ArticleRecord, limit int) []string {
	if limit <= 0 {
		limit = DefaultRecentTitles
	}
	start := 0
	if len(records) > limit {
		start = len(records) - limit
	}

	titles := make([]string, 0, len(records)-start)
	for _, rec := range records[start:] {
		titles = append(titles, rec.Title)
	}
	return titles
}

type candidate struct {
	score  int
	record domain.ArticleRecord
}

// FindInternalLinks picks up to maxLinks related records by shared tokens of
// tags, title and category. Records sharing the draft's slug, lacking a URL,
// or sharing no token are never returned. Ties go to newer records.
func FindInternalLinks(draft domain.ArticleDraft, records []domain.ArticleRecord, maxLinks int) []domain.Link {
	if maxLinks <= 0 {
		maxLinks = DefaultMaxLinks
	}
	if len(records) == 0 {
		return nil
	}

	articleTokens := tokenSet(draft.Tags, draft.Title, draft.Category)
	category := strings.ToLower(draft.Category)

	var scored []candidate
	for i := len(records) - 1; i >= 0; i-- {
		rec := records[i]
		if rec.Slug == draft.Slug || rec.URL == "" {
			continue
		}

		overlap := 0
		for token := range tokenSet(rec.Tags, rec.Title, rec.Category) {
			if _, ok := articleTokens[token]; ok {
				overlap++
			}
		}
		if overlap == 0 {
			continue
		}

		score := overlap
		if strings.ToLower(rec.Category) == category {
			score++
		}
		scored = append(scored, candidate{score: score, record: rec})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	if len(scored) > maxLinks {
		scored = scored[:maxLinks]
	}
	links := make([]domain.Link, 0, len(scored))
	for _, c := range scored {
		links = append(links, domain.Link{Title: c.record.Title, URL: c.record.URL})
	}
	return links
}

func tokenSet(tags []string, title, category string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags)+8)
	for _, tag := range tags {
		set[strings.ToLower(tag)] = struct{}{}
	}
	for _, token := range wordTokens.FindAllString(strings.ToLower(title), -1) {
		set[token] = struct{}{}
	}
	if category != "" {
		set[strings.ToLower(category)] = struct{}{}
	}
	return set
}
