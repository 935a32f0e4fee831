package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ResolveError
		expected string
	}{
		{
			name:     "with underlying error",
			err:      Forbidden("/../etc/passwd"),
			expected: "[FORBIDDEN] /../etc/passwd: path escapes served root",
		},
		{
			name:     "without underlying error",
			err:      &ResolveError{Code: CodeNotFound, Path: "/missing.txt"},
			expected: "[NOT_FOUND] /missing.txt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestResolveError_Unwrap(t *testing.T) {
	err := NotFound("/missing.txt", nil)

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrForbidden))
}

func TestResolveError_WrapsIOError(t *testing.T) {
	underlying := fs.ErrPermission
	err := NotFound("/secret.txt", underlying)

	assert.True(t, errors.Is(err, underlying))

	var re *ResolveError
	assert.True(t, errors.As(err, &re))
	assert.Equal(t, CodeNotFound, re.Code)
	assert.Equal(t, "/secret.txt", re.Path)
}

func TestHelpers(t *testing.T) {
	assert.True(t, IsBadRequest(BadRequest("/\x00", nil)))
	assert.True(t, IsForbidden(Forbidden("/..")))
	assert.True(t, IsNotFound(NotFound("/nope", nil)))

	// Wrapped one level deeper
	wrapped := fmt.Errorf("resolve: %w", Forbidden("/.."))
	assert.True(t, IsForbidden(wrapped))
}

func TestCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"bad request", BadRequest("/", nil), CodeBadRequest},
		{"forbidden", Forbidden("/.."), CodeForbidden},
		{"not found", NotFound("/x", nil), CodeNotFound},
		{"internal", Internal("/x", errors.New("disk gone")), CodeInternal},
		{"bare sentinel", ErrForbidden, CodeForbidden},
		{"unknown error", errors.New("boom"), CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Code(tt.err))
		})
	}
}
