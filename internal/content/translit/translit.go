// Package translit renders Ukrainian text in Latin letters for URL slugs.
//
// A Transliterator always ends with the deterministic table, so its output is
// ASCII-only no matter which richer converter is configured in front of it.
package translit

import (
	"strings"
	"unicode"

	"github.com/gosimple/slug"
	"golang.org/x/text/unicode/norm"
)

// Converter is a single transliteration strategy. ok=false means the caller
// should try the next strategy.
type Converter interface {
	Convert(text string) (string, bool)
}

var table = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "h", 'ґ': "g", 'д': "d", 'е': "e",
	'є': "ie", 'ж': "zh", 'з': "z", 'и': "y", 'і': "i", 'ї': "yi", 'й': "i",
	'к': "k", 'л': "l", 'м': "m", 'н': "n", 'о': "o", 'п': "p", 'р': "r",
	'с': "s", 'т': "t", 'у': "u", 'ф': "f", 'х': "kh", 'ц': "ts", 'ч': "ch",
	'ш': "sh", 'щ': "shch", 'ю': "yu", 'я': "ya",
}

// TableConverter maps the Ukrainian alphabet with a fixed table. Latin
// letters and digits pass through lower-cased, whitespace and -_ become a
// single space, everything else is dropped.
type TableConverter struct{}

// Convert never fails.
func (TableConverter) Convert(text string) (string, bool) {
	var b strings.Builder
	b.Grow(len(text))
	pendingSpace := false

	for _, r := range text {
		r = unicode.ToLower(r)
		var piece string
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			piece = string(r)
		case unicode.IsSpace(r) || r == '-' || r == '_':
			pendingSpace = b.Len() > 0
			continue
		default:
			mapped, ok := table[r]
			if !ok {
				continue
			}
			piece = mapped
		}
		if pendingSpace {
			b.WriteByte(' ')
			pendingSpace = false
		}
		b.WriteString(piece)
	}

	return b.String(), true
}

// LibraryConverter delegates to gosimple/slug, which knows far more scripts
// than the table but renders some Ukrainian letters the Russian way
// (як -> iak, г -> g).
type LibraryConverter struct{}

// Convert transliterates word by word so separators stay where the text had
// them. Soft signs and apostrophes are removed first; the library would turn
// them into word breaks. Returns ok=false on empty output or if the library
// panics.
func (LibraryConverter) Convert(text string) (out string, ok bool) {
	defer func() {
		if recover() != nil {
			out, ok = "", false
		}
	}()

	words := strings.Fields(text)
	kept := words[:0]
	for _, word := range words {
		if w := slug.Make(stripInWord.Replace(word)); w != "" {
			kept = append(kept, w)
		}
	}
	if len(kept) == 0 {
		return "", false
	}
	return strings.Join(kept, " "), true
}

var stripInWord = strings.NewReplacer("ь", "", "Ь", "", "'", "", "’", "", "ʼ", "", "`", "")

// Transliterator tries its converters in order and falls back to the table.
type Transliterator struct {
	converters []Converter
	fallback   TableConverter
}

// Option customises a Transliterator.
type Option func(*Transliterator)

// WithConverter adds a richer converter tried before the table.
func WithConverter(c Converter) Option {
	return func(t *Transliterator) {
		if c != nil {
			t.converters = append(t.converters, c)
		}
	}
}

// New builds a Transliterator; without options only the table is used.
func New(opts ...Option) *Transliterator {
	t := &Transliterator{}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Transliterate returns a lower-case Latin rendering of text.
func (t *Transliterator) Transliterate(text string) string {
	text = norm.NFC.String(text)

	if t != nil {
		for _, c := range t.converters {
			out, ok := safeConvert(c, text)
			if !ok || containsCyrillic(out) {
				continue
			}
			// Run the result through the table too, so separators and stray
			// symbols follow the same rules whichever strategy won.
			normalized, _ := t.fallback.Convert(out)
			return normalized
		}
	}

	out, _ := TableConverter{}.Convert(text)
	return out
}

func safeConvert(c Converter, text string) (out string, ok bool) {
	defer func() {
		if recover() != nil {
			out, ok = "", false
		}
	}()
	return c.Convert(text)
}

func containsCyrillic(s string) bool {
	for _, r := range s {
		if r >= 0x0400 && r <= 0x04FF {
			return true
		}
	}
	return false
}
