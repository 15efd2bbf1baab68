package match

import (
	"regexp"
	"strings"
)

var (
	parentheticalRe = regexp.MustCompile(`\([^)]*\)`)
	bracketedRe     = regexp.MustCompile(`\[[^\]]*\]`)
	yearRe          = regexp.MustCompile(`\b(19|20)\d{2}\b`)
)

// fallbackQueryWords bounds how much of a raw description seeds the
// low-confidence fallback search.
const fallbackQueryWords = 10

// CleanTitle turns a raw YouTube video title into a catalog search query.
//
// Parenthetical and bracketed segments ("(Official Video)", "[Lyrics]"),
// standalone 4-digit years, and a trailing " - YouTube" suffix are removed,
// then whitespace is collapsed.
func CleanTitle(title string) string {
	title = strings.TrimSuffix(strings.TrimSpace(title), " - YouTube")
	title = parentheticalRe.ReplaceAllString(title, "")
	title = bracketedRe.ReplaceAllString(title, "")
	title = yearRe.ReplaceAllString(title, "")
	return strings.Join(strings.Fields(title), " ")
}

// FallbackQuery derives a search query from a raw video description: its
// first ten words. Returns "" for blank descriptions.
func FallbackQuery(description string) string {
	words := strings.Fields(description)
	if len(words) > fallbackQueryWords {
		words = words[:fallbackQueryWords]
	}
	return strings.Join(words, " ")
}
