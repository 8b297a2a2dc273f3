package prompt

import (
	"regexp"
	"strings"
)

var (
	nonNameRegex   = regexp.MustCompile(`[^\w\s-]`)
	separatorRegex = regexp.MustCompile(`[\s_-]+`)
)

// SanitizeTitle converts a title into a URL-safe lookup name: lowercased,
// punctuation stripped, runs of whitespace/underscores/dashes collapsed to a
// single dash. "Code Review Helper" becomes "code-review-helper".
func SanitizeTitle(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = nonNameRegex.ReplaceAllString(s, "")
	s = separatorRegex.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
