package prompt

import "testing"

func TestSanitizeTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Code Review Helper", "code-review-helper"},
		{"  Trim Me  ", "trim-me"},
		{"What's up?!", "whats-up"},
		{"snake_case_title", "snake-case-title"},
		{"many   spaces", "many-spaces"},
		{"--dashed--", "dashed"},
		{"", ""},
		{"???", ""},
	}

	for _, tt := range tests {
		if got := SanitizeTitle(tt.in); got != tt.want {
			t.Errorf("SanitizeTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
