package model

import "fmt"

// ErrorKind classifies an operation failure for structured reporting.
type ErrorKind string

const (
	KindInvalidPath         ErrorKind = "invalid_path"
	KindNotFound            ErrorKind = "not_found"
	KindNotAllowed          ErrorKind = "not_allowed"
	KindFileTooLarge        ErrorKind = "file_too_large"
	KindExtensionNotAllowed ErrorKind = "extension_not_allowed"
	KindIOError             ErrorKind = "io_error"
	KindNotConfigured       ErrorKind = "not_configured"
)

// Error is the structured error returned at operation boundaries.
// Every failure surfaced to a caller carries a kind from the fixed
// taxonomy plus a human-readable message.
type Error struct {
	Kind    ErrorKind `json:"error_kind"`
	Message string    `json:"message"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewError creates a structured error with the given kind and message.
func NewError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NotAllowed returns the access-denied error for the given requested path.
// The message repeats only the caller's own input. It must never include
// resolved paths or reveal whether anything exists outside the sandbox.
func NotAllowed(requested string) *Error {
	return &Error{
		Kind:    KindNotAllowed,
		Message: fmt.Sprintf("access denied: %q is not within the allowed directories", requested),
	}
}
