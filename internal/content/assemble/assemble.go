// Package assemble finishes the HTML body before publishing: markdown
// rendering, internal links and the call-to-action block.
package assemble

import (
	"fmt"
	"html"
	"strings"

	"ArticlesPublisher/internal/domain"
)

const (
	// CTAText is the marker phrase of the call-to-action block.
	CTAText = "Якщо вам потрібна допомога — звертайтеся в UkrFix. Знайдемо найкраще рішення 🚀"
	// CTAURLMarker identifies an existing call-to-action button.
	CTAURLMarker = "add-listing"

	ctaOpen             = `<div class="cta-block">`
	internalLinksMarker = "internal-links"
	internalLinksTitle  = "Читайте також:"
)

// CTABlock is appended to every article body.
var CTABlock = ctaOpen + `
  <p>` + CTAText + `</p>
  <a href="https://ukrfix.com/add-listing/" class="btn-submit">Подати оголошення на UkrFix безкоштовно</a>
</div>`

// EnsureCTA appends CTABlock unless the body already carries the CTA text or
// button link. Calling it twice changes nothing.
func EnsureCTA(body string) string {
	lower := strings.ToLower(body)
	if strings.Contains(lower, strings.ToLower(CTAText)) || strings.Contains(lower, CTAURLMarker) {
		return body
	}
	return strings.TrimRight(body, " \t\r\n") + "\n\n" + CTABlock + "\n"
}

// InjectInternalLinks adds a "read also" list built from links. The list goes
// right before the CTA block when there is one, otherwise at the end. Bodies
// that already contain internal links are left alone.
func InjectInternalLinks(body string, links []domain.Link) string {
	if len(links) == 0 || strings.Contains(body, internalLinksMarker) {
		return body
	}

	var items strings.Builder
	for _, link := range links {
		if link.URL == "" {
			continue
		}
		fmt.Fprintf(&items, `<li><a href="%s" target="_blank" rel="noopener">%s</a></li>`,
			html.EscapeString(link.URL), html.EscapeString(link.Title))
	}
	if items.Len() == 0 {
		return body
	}

	block := `<div class="internal-links">
  <h3>` + internalLinksTitle + `</h3>
  <ul>
    ` + items.String() + `
  </ul>
</div>`

	if before, after, ok := strings.Cut(body, ctaOpen); ok {
		return strings.TrimRight(before, " \t\r\n") + "\n\n" + block + "\n\n" + ctaOpen + after
	}
	return strings.TrimRight(body, " \t\r\n") + "\n\n" + block + "\n"
}
