// Package errors defines domain-specific error types for request resolution.
// Using typed errors (instead of strings) allows the HTTP layer to map each
// case to the right status code without string matching.
//
// Pattern: Sentinel Errors + Custom Error Types
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the resolution taxonomy
var (
	// ErrBadRequest - запрошенный путь синтаксически некорректен
	ErrBadRequest = errors.New("malformed request path")

	// ErrForbidden - путь выходит за пределы served root
	ErrForbidden = errors.New("path escapes served root")

	// ErrNotFound - файл не существует или недоступен для чтения
	ErrNotFound = errors.New("file not found")
)

// Machine-readable error codes carried by ResolveError.
const (
	CodeBadRequest = "BAD_REQUEST"
	CodeForbidden  = "FORBIDDEN"
	CodeNotFound   = "NOT_FOUND"
	CodeInternal   = "INTERNAL_ERROR"
)

// ResolveError is a custom error type that wraps resolution failures with
// additional context. It keeps the error chain intact so errors.Is still
// matches the sentinels above.
//
// Pattern: Error Wrapping with Context
type ResolveError struct {
	Code string // Machine-readable code (e.g., "FORBIDDEN")
	Path string // Request path that failed to resolve
	Err  error  // Underlying error (sentinel or I/O error)
}

// Error implements the error interface.
func (e *ResolveError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Path, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Path)
}

// Unwrap implements error unwrapping for errors.Is and errors.As.
func (e *ResolveError) Unwrap() error {
	return e.Err
}

// BadRequest creates a ResolveError for a malformed path.
func BadRequest(path string, err error) *ResolveError {
	if err == nil {
		err = ErrBadRequest
	}
	return &ResolveError{Code: CodeBadRequest, Path: path, Err: err}
}

// Forbidden creates a ResolveError for a path escaping the root.
func Forbidden(path string) *ResolveError {
	return &ResolveError{Code: CodeForbidden, Path: path, Err: ErrForbidden}
}

// NotFound creates a ResolveError for a missing or unreadable file.
func NotFound(path string, err error) *ResolveError {
	if err == nil {
		err = ErrNotFound
	}
	return &ResolveError{Code: CodeNotFound, Path: path, Err: err}
}

// Internal creates a ResolveError for an unexpected I/O failure on a file
// that already passed existence checks.
func Internal(path string, err error) *ResolveError {
	return &ResolveError{Code: CodeInternal, Path: path, Err: err}
}

// Helper functions for common error checking

// IsBadRequest checks if an error is a malformed-path error.
func IsBadRequest(err error) bool {
	return errors.Is(err, ErrBadRequest)
}

// IsForbidden checks if an error is a root-escape error.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsNotFound checks if an error is a missing-file error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Code extracts the machine-readable code from an error chain.
// Unknown errors are reported as internal.
func Code(err error) string {
	var re *ResolveError
	if errors.As(err, &re) {
		return re.Code
	}
	switch {
	case IsBadRequest(err):
		return CodeBadRequest
	case IsForbidden(err):
		return CodeForbidden
	case IsNotFound(err):
		return CodeNotFound
	default:
		return CodeInternal
	}
}
