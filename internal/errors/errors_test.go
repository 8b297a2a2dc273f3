package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestErrorCodesAndStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    *PromptError
		code   ErrorCode
		status int
	}{
		{"invalid request", NewInvalidRequest("bad"), ErrInvalidRequest, 400},
		{"invalid category", NewInvalidCategory("x", []string{"a"}), ErrInvalidCategory, 400},
		{"not found", NewNotFound("id1"), ErrNotFound, 404},
		{"invalid token", NewInvalidToken(), ErrInvalidToken, 404},
		{"rate limited", NewRateLimited(60), ErrRateLimited, 429},
		{"malformed record", NewMalformedRecord("/p/x.json", nil), ErrMalformedRecord, 500},
		{"storage io", NewStorageIO("read", nil), ErrStorageIO, 500},
		{"internal", NewInternal(nil), ErrInternal, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Code = %s, want %s", tt.err.Code, tt.code)
			}
			if tt.err.Status != tt.status {
				t.Errorf("Status = %d, want %d", tt.err.Status, tt.status)
			}
			if !Is(tt.err, tt.code) {
				t.Errorf("Is(err, %s) = false", tt.code)
			}
		})
	}
}

func TestIsRejectsOtherErrors(t *testing.T) {
	if Is(stderrors.New("plain"), ErrNotFound) {
		t.Error("plain errors must not match any code")
	}
	if Is(nil, ErrNotFound) {
		t.Error("nil must not match")
	}
	if Is(NewNotFound("x"), ErrInvalidToken) {
		t.Error("codes must not cross-match")
	}
}

func TestErrorString(t *testing.T) {
	err := NewNotFound("abc123")
	if !strings.Contains(err.Error(), "NOT_FOUND") || !strings.Contains(err.Error(), "abc123") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestRateLimitedDetails(t *testing.T) {
	err := NewRateLimited(42)
	if err.Details["retry_after_seconds"] != 42 {
		t.Errorf("Details = %v", err.Details)
	}
}
