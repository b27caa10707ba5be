package errors

import (
	"strings"

	crdb "github.com/cockroachdb/errors"
)

// Error inspection re-exported from cockroachdb/errors so callers only
// import this package.
var (
	Is          = crdb.Is
	As          = crdb.As
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	GetAllHints = crdb.GetAllHints
)

// WrapFileSystemError wraps file system related errors
func WrapFileSystemError(operation, path string, cause error) *BaseError {
	return Wrapf(FileSystemErrorCode, cause, "failed to %s %s", operation, path).
		WithContext("operation", operation).
		WithContext("path", path)
}

// NewConfigurationError reports invalid or missing caller configuration
func NewConfigurationError(message string, suggestions ...string) *BaseError {
	return New(ConfigurationErrorCode, message).WithSuggestions(suggestions...)
}

// Hints collects every suggestion attached to err: structured suggestions
// from any Error in the chain plus hints added with WithHint.
func Hints(err error) []string {
	var hints []string
	var structured Error
	if As(err, &structured) {
		hints = append(hints, structured.Suggestions()...)
	}
	hints = append(hints, GetAllHints(err)...)
	return hints
}

// CodeOf returns the ErrorCode of the first structured error in the chain
func CodeOf(err error) ErrorCode {
	var structured Error
	if As(err, &structured) {
		return structured.ErrorCode()
	}
	return UnknownErrorCode
}

// LocationOf returns the location of the first structured error in the chain
func LocationOf(err error) SourceLocation {
	var structured Error
	if As(err, &structured) {
		return structured.Location()
	}
	return SourceLocation{}
}

// MessageOf returns the message of err without the location prefix that
// BaseError.Error adds
func MessageOf(err error) string {
	var structured Error
	if !As(err, &structured) {
		return err.Error()
	}
	msg := structured.Error()
	if loc := structured.Location(); !loc.IsEmpty() {
		msg = strings.TrimPrefix(msg, loc.String()+": ")
	}
	return msg
}

// IsTranslationError reports whether err rejects the document itself rather
// than its environment
func IsTranslationError(err error) bool {
	switch CodeOf(err) {
	case SyntaxErrorCode, UnknownTypeErrorCode, UnresolvedReferenceErrorCode:
		return true
	default:
		return false
	}
}
