package errors

import (
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceLocation_String(t *testing.T) {
	tests := []struct {
		name string
		loc  SourceLocation
		want string
	}{
		{name: "full", loc: SourceLocation{File: "a.ts", Line: 3, Column: 7}, want: "a.ts:3:7"},
		{name: "no column", loc: SourceLocation{File: "a.ts", Line: 3}, want: "a.ts:3"},
		{name: "inline text", loc: SourceLocation{Line: 1, Column: 2}, want: "<input>:1:2"},
		{name: "file only", loc: SourceLocation{File: "a.ts"}, want: "a.ts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.loc.String())
		})
	}
	assert.True(t, SourceLocation{}.IsEmpty())
	assert.False(t, SourceLocation{Line: 1}.IsEmpty())
}

func TestErrorCode_String(t *testing.T) {
	assert.Equal(t, "SyntaxError", SyntaxErrorCode.String())
	assert.Equal(t, "UnknownTypeError", UnknownTypeErrorCode.String())
	assert.Equal(t, "UnresolvedReferenceError", UnresolvedReferenceErrorCode.String())
	assert.Equal(t, "FileSystemError", FileSystemErrorCode.String())
	assert.Equal(t, "UnknownError", ErrorCode(99).String())
}

func TestSyntaxError(t *testing.T) {
	loc := SourceLocation{File: "x.ts", Line: 2, Column: 5}
	err := NewSyntaxError(`unexpected token "}"`, loc).
		WithExpected("Ident").
		WithSuggestion("close the brace")

	assert.Equal(t, `x.ts:2:5: unexpected token "}"`, err.Error())
	assert.Equal(t, `unexpected token "}"`, MessageOf(err))
	assert.Equal(t, SyntaxErrorCode, CodeOf(err))
	assert.Equal(t, loc, LocationOf(err))
	assert.Equal(t, "Ident", err.Context()["expected"])
	assert.Equal(t, []string{"close the brace"}, Hints(err))
	assert.True(t, IsTranslationError(err))
}

func TestUnknownTypeError(t *testing.T) {
	err := NewUnknownTypeError("A | B", "unions are not supported", SourceLocation{Line: 1, Column: 9})
	assert.Equal(t, `unsupported type "A | B": unions are not supported`, MessageOf(err))
	assert.Equal(t, "A | B", err.TypeText)
	assert.NotEmpty(t, err.Suggestions())

	var target *UnknownTypeError
	wrapped := fmt.Errorf("translating: %w", err)
	require.True(t, As(wrapped, &target))
	assert.Equal(t, "A | B", target.TypeText)
	assert.True(t, IsTranslationError(wrapped))
}

func TestUnresolvedReferenceError(t *testing.T) {
	err := NewUnresolvedReferenceError("B", "A", "b", []string{"A", "C"})
	assert.Equal(t, "field A.b references unknown type B", err.Error())
	assert.Equal(t, []string{
		"Known interfaces: A, C",
		"Declare the referenced interface in the same document or disable strict mode",
	}, err.Suggestions())

	bare := NewUnresolvedReferenceError("B", "A", "b", nil)
	assert.Len(t, bare.Suggestions(), 1)
}

func TestWrapFileSystemError(t *testing.T) {
	err := WrapFileSystemError("read", "/tmp/missing.ts", os.ErrNotExist)

	assert.Equal(t, "failed to read /tmp/missing.ts", err.Error())
	assert.Equal(t, FileSystemErrorCode, CodeOf(err))
	assert.True(t, Is(err, os.ErrNotExist))
	assert.Equal(t, "/tmp/missing.ts", err.Context()["path"])
	assert.False(t, IsTranslationError(err))
}

func TestNewConfigurationError(t *testing.T) {
	err := NewConfigurationError("no source file provided", "pass a path", "or use --raw")
	assert.Equal(t, ConfigurationErrorCode, err.ErrorCode())
	assert.Equal(t, []string{"pass a path", "or use --raw"}, Hints(err))
}

func TestHints_IncludesWrappedHints(t *testing.T) {
	err := WithHint(NewSyntaxError("bad", SourceLocation{}).WithSuggestion("first"), "second")
	assert.Equal(t, []string{"first", "second"}, Hints(err))
}

func TestPlainErrors(t *testing.T) {
	err := fmt.Errorf("plain")
	assert.Equal(t, UnknownErrorCode, CodeOf(err))
	assert.Equal(t, SourceLocation{}, LocationOf(err))
	assert.Equal(t, "plain", MessageOf(err))
	assert.Empty(t, Hints(err))
}

func TestMultipleErrors(t *testing.T) {
	var none MultipleErrors
	assert.NoError(t, none.ErrorOrNil())
	assert.Equal(t, "no errors", none.Error())

	var multi MultipleErrors
	multi.Add(nil)
	multi.Add(NewSyntaxError("first", SourceLocation{File: "a.ts", Line: 1}))
	require.Error(t, multi.ErrorOrNil())
	assert.Equal(t, "a.ts:1: first", multi.Error())

	multi.Add(WrapFileSystemError("read", "b.ts", os.ErrPermission))
	assert.Equal(t, "multiple errors (2 total):\n  1. a.ts:1: first\n  2. failed to read b.ts", multi.Error())
	assert.Len(t, multi.Unwrap(), 2)
}
