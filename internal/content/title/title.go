// Package title normalizes generated headlines into SEO-friendly titles.
package title

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// DefaultMaxLength is the title budget used for non-positive limits.
	DefaultMaxLength = 60
	// DefaultTitle replaces degenerate input.
	DefaultTitle = "UkrFix: нова стаття"

	edgePunctuation     = "-–—:;,."
	trailingPunctuation = "-–—:;,"
	ellipsis            = "..."
)

// Common Ukrainian function words that add nothing to a headline.
var stopWords = map[string]struct{}{
	"і": {}, "й": {}, "та": {}, "а": {}, "але": {}, "чи": {}, "або": {},
	"у": {}, "в": {}, "з": {}, "із": {}, "зі": {}, "за": {}, "як": {},
	"що": {}, "для": {}, "про": {}, "на": {}, "до": {}, "без": {}, "при": {},
	"під": {}, "над": {}, "через": {}, "після": {},
}

// Result holds the chosen title and both case variants.
type Result struct {
	Chosen       string
	TitleCase    string
	SentenceCase string
}

// Optimize cleans rawTitle, strips leading stop-words and returns both case
// variants cut to maxLength runes, preferring the title-case one.
func Optimize(rawTitle string, maxLength int) Result {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}

	base := trimLeadingStopWords(clean(rawTitle))
	sentence := truncate(sentenceCase(base), maxLength)
	titled := truncate(titleCase(base), maxLength)

	chosen := sentence
	if utf8.RuneCountInString(titled) <= maxLength {
		chosen = titled
	}
	if chosen == "" {
		chosen = truncate(DefaultTitle, maxLength)
	}

	res := Result{Chosen: chosen, TitleCase: titled, SentenceCase: sentence}
	if res.TitleCase == "" {
		res.TitleCase = chosen
	}
	if res.SentenceCase == "" {
		res.SentenceCase = chosen
	}
	return res
}

func clean(text string) string {
	cleaned := strings.Join(strings.Fields(text), " ")
	cleaned = strings.Trim(cleaned, edgePunctuation)
	return strings.TrimSpace(cleaned)
}

func isStopWord(word string) bool {
	_, ok := stopWords[strings.ToLower(word)]
	return ok
}

func trimLeadingStopWords(text string) string {
	words := strings.Fields(text)
	for len(words) > 0 && isStopWord(words[0]) {
		words = words[1:]
	}
	return strings.Join(words, " ")
}

func sentenceCase(text string) string {
	return upperFirst(clean(text))
}

func titleCase(text string) string {
	words := strings.Fields(clean(text))
	for i, word := range words {
		if i != 0 && isStopWord(word) {
			words[i] = strings.ToLower(word)
			continue
		}
		words[i] = upperFirst(word)
	}
	return strings.Join(words, " ")
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// truncate keeps whole words where possible and marks the cut with an
// ellipsis. If the ellipsis itself overflows the limit it is hard-cut too, so
// very small limits can end in ".." or ".".
func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}

	cut := string(runes[:limit])
	if i := strings.LastIndex(cut, " "); i >= 0 {
		cut = cut[:i]
	}
	cut = strings.TrimRight(cut, trailingPunctuation)

	trimmed := []rune(cut + ellipsis)
	if len(trimmed) > limit {
		trimmed = trimmed[:limit]
	}
	return string(trimmed)
}
