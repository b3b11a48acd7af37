package errors

import "fmt"

// ErrorCode represents a starred error code.
type ErrorCode string

const (
	ErrInvalidRequest  ErrorCode = "INVALID_REQUEST"  // 400
	ErrTokenRequired   ErrorCode = "TOKEN_REQUIRED"   // 401
	ErrAccessDenied    ErrorCode = "ACCESS_DENIED"    // 403
	ErrNotFound        ErrorCode = "NOT_FOUND"        // 404
	ErrNoChange        ErrorCode = "NO_CHANGE"        // 409
	ErrAlreadyArchived ErrorCode = "ALREADY_ARCHIVED" // 409
	ErrInternal        ErrorCode = "INTERNAL"         // 500
)

// StarredError represents a structured error with code, status, and details.
type StarredError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *StarredError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *StarredError {
	return &StarredError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewTokenRequired creates a 401 error for publish runs without a credential.
func NewTokenRequired() *StarredError {
	return &StarredError{
		Code:    ErrTokenRequired,
		Status:  401,
		Message: "publishing to a repository requires a token",
	}
}

// NewAccessDenied creates a 403 error for rejected or rate-limited API calls.
func NewAccessDenied(err error) *StarredError {
	msg := "access denied by GitHub"
	if err != nil {
		msg = fmt.Sprintf("talk to GitHub failed: %v", err)
	}
	return &StarredError{
		Code:    ErrAccessDenied,
		Status:  403,
		Message: msg,
	}
}

// NewRepoNotFound creates a 404 error for a missing remote repository.
// The publisher treats this as expected control flow, not a failure.
func NewRepoNotFound(owner, name string) *StarredError {
	return &StarredError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("repository not found: %s/%s", owner, name),
		Details: map[string]any{"owner": owner, "name": name},
	}
}

// NewNoChange creates a 409 error for a publish run with an unchanged star list.
func NewNoChange(date string) *StarredError {
	return &StarredError{
		Code:    ErrNoChange,
		Status:  409,
		Message: fmt.Sprintf("starred repositories not changed in %s", date),
		Details: map[string]any{"date": date},
	}
}

// NewAlreadyArchived creates a 409 error when today's archive already exists.
func NewAlreadyArchived(path string) *StarredError {
	return &StarredError{
		Code:    ErrAlreadyArchived,
		Status:  409,
		Message: fmt.Sprintf("already committed [%s]", path),
		Details: map[string]any{"path": path},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *StarredError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &StarredError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a StarredError with the given code.
func Is(err error, code ErrorCode) bool {
	if sErr, ok := err.(*StarredError); ok {
		return sErr.Code == code
	}
	return false
}
