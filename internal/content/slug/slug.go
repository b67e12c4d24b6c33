// Package slug derives SEO-friendly URL slugs from generated headings.
package slug

import (
	"regexp"
	"strings"

	"ArticlesPublisher/internal/content/translit"
)

const (
	// DefaultMaxLength caps slugs when the caller passes a non-positive limit.
	DefaultMaxLength = 75
	// FallbackSlug replaces empty or templated slugs.
	FallbackSlug = "ukrfix-article"

	maxKeywords = 5
	minKeywords = 3
)

var (
	nonSlugChars    = regexp.MustCompile(`[^a-z0-9\s_-]`)
	tokenSeparators = regexp.MustCompile(`[\s_-]+`)
	hyphenRuns      = regexp.MustCompile(`-+`)
	templated       = regexp.MustCompile(`^(article|post|page|blog)-\d+$`)
)

// Builder turns free text into slugs. It is safe for concurrent use.
type Builder struct {
	translit  *translit.Transliterator
	stopWords map[string]struct{}
}

// NewBuilder wires a transliterator; nil means the table-only default.
func NewBuilder(t *translit.Transliterator) *Builder {
	if t == nil {
		t = translit.New()
	}
	return &Builder{translit: t, stopWords: stopWords}
}

// Generate returns a lowercase, hyphen-delimited ASCII slug no longer than
// maxLength. The same input always yields the same slug.
func (b *Builder) Generate(text string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}

	tokens := tokenize(b.translit.Transliterate(text))
	meaningful := b.filterStopWords(tokens)
	if len(meaningful) == 0 {
		meaningful = tokens
	}
	meaningful = trimKeywords(meaningful)

	slug := collapseHyphens(strings.Join(meaningful, "-"))
	if len(slug) > maxLength {
		slug = collapseHyphens(slug[:maxLength])
	}

	if slug == "" || templated.MatchString(slug) {
		slug = FallbackSlug
		if len(slug) > maxLength {
			slug = collapseHyphens(slug[:maxLength])
		}
	}
	return slug
}

// FromDraft seeds the slug from the first <h1> of the body, falling back to
// the title when the body has no heading.
func (b *Builder) FromDraft(html, title string, maxLength int) string {
	source := FirstHeading(html)
	if source == "" {
		source = title
	}
	return b.Generate(source, maxLength)
}

func tokenize(text string) []string {
	cleaned := nonSlugChars.ReplaceAllString(strings.ToLower(text), " ")
	parts := tokenSeparators.Split(cleaned, -1)

	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			tokens = append(tokens, part)
		}
	}
	return tokens
}

// filterStopWords drops stop-words and repeated tokens, keeping first-seen order.
func (b *Builder) filterStopWords(tokens []string) []string {
	filtered := make([]string, 0, len(tokens))
	seen := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		if b.isStopWord(token) {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		filtered = append(filtered, token)
	}
	return filtered
}

func trimKeywords(words []string) []string {
	if len(words) <= maxKeywords {
		return words
	}
	trimmed := words[:maxKeywords]
	if len(trimmed) < minKeywords {
		return words[:minKeywords]
	}
	return trimmed
}

func collapseHyphens(s string) string {
	return strings.Trim(hyphenRuns.ReplaceAllString(s, "-"), "-")
}

func (b *Builder) isStopWord(token string) bool {
	_, ok := b.stopWords[token]
	return ok
}
