package brand

import (
	"regexp"
	"strings"
)

var camelBoundary = regexp.MustCompile(`([a-z])([A-Z])`)

// SplitWords breaks a camel-case compound brand into its component words.
// "LeapScholar" -> ["leap", "scholar"], "Yocket" -> ["yocket"].
func SplitWords(brand string) []string {
	spaced := camelBoundary.ReplaceAllString(brand, "$1 $2")
	return strings.Fields(strings.ToLower(spaced))
}

// Expand produces the ordered, deduplicated set of search query variants
// for a brand. The brand itself always comes first, then its lowercase
// form, then the space-separated form of a camel-case compound and its
// lowercase variant.
// "LeapScholar" -> ["LeapScholar", "leapscholar", "Leap Scholar", "leap scholar"].
func Expand(brand string) []string {
	queries := []string{brand}

	if lower := strings.ToLower(brand); lower != brand {
		queries = append(queries, lower)
	}

	if spaced := camelBoundary.ReplaceAllString(brand, "$1 $2"); spaced != brand {
		queries = append(queries, spaced, strings.ToLower(spaced))
	}

	seen := make(map[string]bool, len(queries))
	var unique []string
	for _, q := range queries {
		if !seen[q] {
			seen[q] = true
			unique = append(unique, q)
		}
	}

	return unique
}

// IsRelevant reports whether a text actually refers to the brand rather
// than coincidentally containing one of its words. Compound brands like
// "LeapScholar" must appear either concatenated ("leapscholar") or
// space-joined ("leap scholar"); a lone "leap" does not count. Single-word
// brands use a plain case-insensitive substring match.
func IsRelevant(text, brand string) bool {
	lower := strings.ToLower(text)
	words := SplitWords(brand)

	if len(words) == 0 {
		return false
	}

	if len(words) > 1 {
		joined := strings.Join(words, "")
		spaced := strings.Join(words, " ")
		return strings.Contains(lower, joined) || strings.Contains(lower, spaced)
	}

	return strings.Contains(lower, words[0])
}
