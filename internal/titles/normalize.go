package titles

import (
	"regexp"
	"strings"
	"unicode"
)

var trailingYearPattern = regexp.MustCompile(`\s*\(\d{4}\)\s*$`)

// Normalize canonicalizes a raw title into the comparison and cache key form:
// lowercase, trailing " (YYYY)" annotation removed, separator punctuation
// folded to single spaces, remaining punctuation dropped, one leading article
// stripped, whitespace collapsed. Deterministic and total; never errors.
func Normalize(raw string) string {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return ""
	}

	// The year suffix must go before punctuation handling, while the
	// parentheses the pattern anchors on are still intact.
	normalized = trailingYearPattern.ReplaceAllString(normalized, "")

	// Letters and digits survive. Separators become a single space, other
	// punctuation vanishes without one: "charlie wilson's war" ends up as
	// "charlie wilsons war" but "bucket-list" as "bucket list".
	var cleaned strings.Builder
	cleaned.Grow(len(normalized))
	prevSpace := false
	for _, r := range normalized {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			cleaned.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.':
			if !prevSpace && cleaned.Len() > 0 {
				cleaned.WriteRune(' ')
				prevSpace = true
			}
		}
	}

	return stripLeadingArticle(strings.TrimSpace(cleaned.String()))
}

// stripLeadingArticle removes at most one leading "the", "a", or "an". The
// article must be followed by a space so titles like "Aeon" stay whole.
func stripLeadingArticle(title string) string {
	for _, article := range []string{"the ", "an ", "a "} {
		if strings.HasPrefix(title, article) {
			return strings.TrimSpace(title[len(article):])
		}
	}
	return title
}
