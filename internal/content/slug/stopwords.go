package slug

// stopWords holds transliterated Ukrainian function words and common English
// ones. Matching is by whole token only.
var stopWords = toSet(
	// Ukrainian, transliterated
	"i", "ta", "a", "y", "yi", "yiyi", "ale", "abo", "chi", "pro", "dlia", "dla",
	"dlya", "na", "u", "v", "za", "vid", "do", "po", "pid", "nad", "pere", "yak",
	"tse", "ce", "hto", "khto", "tylki", "tilky", "tilki", "te", "tsya", "tsyi",
	"tsye", "miz", "z", "iz",
	// the same words as gosimple/slug romanises them
	"iak", "shcho", "tsia", "tsi",
	// English
	"the", "and", "or", "for", "of", "to", "in", "on", "with", "by", "from",
	"an", "how", "where", "what", "why", "when", "best", "top",
)

func toSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
