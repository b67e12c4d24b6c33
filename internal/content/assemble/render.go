package assemble

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	codeFence = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*\\n(.*?)\\n?```$")
	htmlBlock = regexp.MustCompile(`(?i)<(h[1-6]|p|ul|ol|div|table|section|article)[\s>]`)
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// RenderBody turns a generated body into HTML. Models sometimes wrap the
// answer in a code fence or answer in Markdown; HTML passes through as is.
func RenderBody(text string) (string, error) {
	body := StripCodeFence(text)
	if body == "" || htmlBlock.MatchString(body) {
		return body, nil
	}

	var buf bytes.Buffer
	if err := markdown.Convert([]byte(body), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// StripCodeFence removes a single ``` fence around the whole text.
func StripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if m := codeFence.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return text
}
