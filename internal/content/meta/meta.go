// Package meta normalizes meta descriptions for search snippets.
package meta

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// DefaultMaxLength is the usual snippet budget of search engines.
const DefaultMaxLength = 160

const edgePunctuation = "-–—:;,"

// Normalize returns a plain-text description of at most maxLength runes.
// When description is empty after cleaning, the first non-empty paragraph of
// html is used instead. The result may be empty.
func Normalize(description, html string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}

	text := clean(plainText(description))
	if text == "" {
		text = clean(firstParagraph(html))
	}
	return truncate(text, maxLength)
}

func plainText(fragment string) string {
	if !strings.Contains(fragment, "<") {
		return fragment
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}
	return doc.Text()
}

func firstParagraph(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	var text string
	doc.Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		text = strings.TrimSpace(p.Text())
		return text == ""
	})
	return text
}

func clean(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	return strings.TrimSpace(strings.Trim(text, edgePunctuation))
}

// truncate cuts at the last word boundary inside the budget and appends an
// ellipsis only when it still fits.
func truncate(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}

	runes := []rune(text)
	cut := string(runes[:limit])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	cut = strings.TrimSpace(strings.TrimRight(cut, edgePunctuation+"."))

	if utf8.RuneCountInString(cut)+3 <= limit {
		return cut + "..."
	}
	return cut
}
