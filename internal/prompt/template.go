package prompt

import (
	"math"
	"regexp"
	"strings"
)

// variableRegex matches {{name}} placeholder markers.
var variableRegex = regexp.MustCompile(`\{\{(\w+)\}\}`)

// ExtractVariables returns the unique placeholder names appearing in body as
// {{name}} markers, in order of first appearance.
func ExtractVariables(body string) []string {
	matches := variableRegex.FindAllStringSubmatch(body, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(matches))
	vars := make([]string, 0, len(matches))
	for _, m := range matches {
		if !seen[m[1]] {
			seen[m[1]] = true
			vars = append(vars, m[1])
		}
	}
	return vars
}

// ContentStats holds derived metadata about a prompt body, attached to MCP
// responses for context budgeting.
type ContentStats struct {
	WordCount         int      `json:"word_count"`
	TokenEstimate     int      `json:"token_count"`
	TemplateVariables []string `json:"template_variables,omitempty"`
}

// Stats computes word count, an estimated token count (1.3x words), and the
// template variables for the given body.
func Stats(body string) ContentStats {
	words := strings.Fields(body)
	return ContentStats{
		WordCount:         len(words),
		TokenEstimate:     int(math.Ceil(float64(len(words)) * 1.3)),
		TemplateVariables: ExtractVariables(body),
	}
}
