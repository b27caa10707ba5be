package errors

import (
	"fmt"
	"strings"
)

// SyntaxError reports a document that does not conform to the declaration
// grammar or the option sub-language.
type SyntaxError struct {
	*BaseError
	Expected string // what the parser expected at Loc, when known
}

// NewSyntaxError creates a syntax error at the given location
func NewSyntaxError(message string, loc SourceLocation) *SyntaxError {
	err := &SyntaxError{BaseError: New(SyntaxErrorCode, message)}
	err.WithLocation(loc)
	return err
}

// WithExpected records the expectation message reported by the parser
func (e *SyntaxError) WithExpected(expected string) *SyntaxError {
	e.Expected = expected
	e.WithContext("expected", expected)
	return e
}

// WithSuggestion adds a hint while keeping the concrete error type
func (e *SyntaxError) WithSuggestion(suggestion string) *SyntaxError {
	e.BaseError.WithSuggestion(suggestion)
	return e
}

// UnknownTypeError reports a type expression outside the supported subset
// (primitives, arrays and bare identifiers).
type UnknownTypeError struct {
	*BaseError
	TypeText string // source rendering of the rejected type
}

// NewUnknownTypeError creates an unknown-type error for typeText
func NewUnknownTypeError(typeText, reason string, loc SourceLocation) *UnknownTypeError {
	err := &UnknownTypeError{
		BaseError: New(UnknownTypeErrorCode, fmt.Sprintf("unsupported type %q: %s", typeText, reason)),
		TypeText:  typeText,
	}
	err.WithLocation(loc)
	err.WithSuggestion("Use string, number, boolean, an interface name, or T[]; add '/** retype: <type>; **/' to supply the target type directly")
	return err
}

// UnresolvedReferenceError reports a named type that does not match any
// translated interface (strict mode only).
type UnresolvedReferenceError struct {
	*BaseError
	Reference string
	Interface string
	Field     string
}

// NewUnresolvedReferenceError creates an unresolved-reference error
func NewUnresolvedReferenceError(reference, iface, field string, known []string) *UnresolvedReferenceError {
	err := &UnresolvedReferenceError{
		BaseError: New(UnresolvedReferenceErrorCode,
			fmt.Sprintf("field %s.%s references unknown type %s", iface, field, reference)),
		Reference: reference,
		Interface: iface,
		Field:     field,
	}
	if len(known) > 0 {
		err.WithSuggestion("Known interfaces: " + strings.Join(known, ", "))
	}
	err.WithSuggestion("Declare the referenced interface in the same document or disable strict mode")
	return err
}
