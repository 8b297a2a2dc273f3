package errors

import "fmt"

// ErrorCode represents a PromptBin error code.
type ErrorCode string

const (
	ErrInvalidRequest  ErrorCode = "INVALID_REQUEST"  // 400
	ErrInvalidCategory ErrorCode = "INVALID_CATEGORY" // 400
	ErrNotFound        ErrorCode = "NOT_FOUND"        // 404
	ErrInvalidToken    ErrorCode = "INVALID_TOKEN"    // 404
	ErrRateLimited     ErrorCode = "RATE_LIMITED"     // 429
	ErrMalformedRecord ErrorCode = "MALFORMED_RECORD" // 500
	ErrStorageIO       ErrorCode = "STORAGE_IO"       // 500
	ErrInternal        ErrorCode = "INTERNAL"         // 500
)

// PromptError represents a structured error with code, status, and details.
type PromptError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *PromptError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *PromptError {
	return &PromptError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewInvalidCategory creates a 400 error for a category outside the configured set.
func NewInvalidCategory(category string, valid []string) *PromptError {
	return &PromptError{
		Code:    ErrInvalidCategory,
		Status:  400,
		Message: fmt.Sprintf("invalid category %q, must be one of: %v", category, valid),
		Details: map[string]any{"category": category, "valid_categories": valid},
	}
}

// NewNotFound creates a 404 error for when a prompt cannot be found.
func NewNotFound(identifier string) *PromptError {
	return &PromptError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("prompt not found: %s", identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewInvalidToken creates a 404 error for an unknown, revoked, or expired share token.
func NewInvalidToken() *PromptError {
	return &PromptError{
		Code:    ErrInvalidToken,
		Status:  404,
		Message: "share token is invalid or has been revoked",
	}
}

// NewRateLimited creates a 429 error when a requester exceeds the share issuance limit.
func NewRateLimited(retryAfterSec int) *PromptError {
	return &PromptError{
		Code:    ErrRateLimited,
		Status:  429,
		Message: "too many share requests, try again later",
		Details: map[string]any{"retry_after_seconds": retryAfterSec},
	}
}

// NewMalformedRecord creates a 500 error for a prompt file that exists but
// cannot be decoded. Corruption is surfaced, never silently skipped.
func NewMalformedRecord(path string, cause error) *PromptError {
	msg := fmt.Sprintf("malformed prompt file: %s", path)
	if cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, cause)
	}
	return &PromptError{
		Code:    ErrMalformedRecord,
		Status:  500,
		Message: msg,
		Details: map[string]any{"path": path},
	}
}

// NewStorageIO creates a 500 error wrapping a filesystem failure.
func NewStorageIO(op string, cause error) *PromptError {
	msg := fmt.Sprintf("storage %s failed", op)
	if cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, cause)
	}
	return &PromptError{
		Code:    ErrStorageIO,
		Status:  500,
		Message: msg,
		Details: map[string]any{"op": op},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *PromptError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &PromptError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a PromptError with the given code.
func Is(err error, code ErrorCode) bool {
	if pErr, ok := err.(*PromptError); ok {
		return pErr.Code == code
	}
	return false
}
