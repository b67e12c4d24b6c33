package slug

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// FirstHeading returns the plain text of the first <h1> in html, with nested
// tags stripped and whitespace collapsed. It returns "" when there is none.
func FirstHeading(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	h1 := doc.Find("h1").First()
	if h1.Length() == 0 {
		return ""
	}

	var parts []string
	h1.Contents().Each(func(_ int, s *goquery.Selection) {
		parts = append(parts, s.Text())
	})
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}
