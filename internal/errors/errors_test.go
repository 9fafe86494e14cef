package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseError_MessageWithoutLocationIsVerbatim(t *testing.T) {
	err := NewValidationError("no package declaration specified")
	assert.Equal(t, "no package declaration specified", err.Error())
	assert.Equal(t, ValidationErrorCode, err.ErrorCode())

	err.WithLocation(SourceLocation{File: "A.java", Line: 3, Column: 7})
	assert.Equal(t, "A.java:3:7: no package declaration specified", err.Error())
}

func TestCodeOf_ThroughWrapping(t *testing.T) {
	base := NewTypeNotFoundError("java.util.Map", nil)
	wrapped := fmt.Errorf("loading decorator: %w", base)

	assert.Equal(t, TypeResolutionErrorCode, CodeOf(wrapped))
	assert.True(t, HasCode(wrapped, TypeResolutionErrorCode))
	assert.False(t, HasCode(wrapped, ValidationErrorCode))
	assert.Equal(t, UnknownErrorCode, CodeOf(stderrors.New("plain")))
	assert.False(t, HasCode(nil, UnknownErrorCode))
}

func TestNewIOError(t *testing.T) {
	err := NewIOError("/tmp/missing.java", fs.ErrNotExist)
	assert.Equal(t, IOErrorCode, err.ErrorCode())
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), "/tmp/missing.java")
	assert.Equal(t, "/tmp/missing.java", err.Context()["path"])
}

func TestNewInvariantError(t *testing.T) {
	err := NewInvariantError("visibility %q is neither public nor protected", "private")

	assert.True(t, IsInvariant(err))
	assert.Equal(t, InvariantErrorCode, err.ErrorCode())
	assert.Contains(t, err.Error(), `visibility "private" is neither public nor protected`)

	assert.False(t, IsInvariant(NewValidationError("x")))
	assert.False(t, IsInvariant(nil))
}

func TestMultipleErrors(t *testing.T) {
	multi := NewMultipleErrors()
	require.NoError(t, multi.ErrorOrNil())

	multi.Add(NewValidationError("first"))
	assert.Equal(t, "first", multi.Error())

	multi.Add(NewTypeNotFoundError("a.B", nil))
	assert.Equal(t, 2, multi.Count())
	assert.Contains(t, multi.Error(), "multiple errors (2 total)")
	assert.Len(t, multi.GetByCode(TypeResolutionErrorCode), 1)

	var coded DecoratorError
	require.True(t, stderrors.As(multi, &coded))
	assert.Equal(t, ValidationErrorCode, coded.ErrorCode())
}

func TestSourceLocation_String(t *testing.T) {
	assert.Equal(t, "unknown location", SourceLocation{}.String())
	assert.Equal(t, "a.java", SourceLocation{File: "a.java"}.String())
	assert.Equal(t, "a.java:2", SourceLocation{File: "a.java", Line: 2}.String())
	assert.Equal(t, "a.java:2:5", SourceLocation{File: "a.java", Line: 2, Column: 5}.String())
}
