// Package resolver maps parsed type expressions to semantic types.
package resolver

import (
	"unicode"
	"unicode/utf8"

	"github.com/toyz/tsport/internal/errors"
	"github.com/toyz/tsport/internal/grammar"
	"github.com/toyz/tsport/internal/models"
)

// Primitive keywords of the declaration language
const (
	KeywordString  = "string"
	KeywordNumber  = "number"
	KeywordBoolean = "boolean"
)

// Resolve maps a type node to its semantic TypeExpr. Primitives map one to
// one, each trailing [] wraps in Array, and any other identifier becomes a
// Named reference to the capitalized identifier without checking that such
// an interface exists. Unions, intersections, generic arguments and literal
// types are rejected with an UnknownTypeError.
func Resolve(node *grammar.TypeNode) (models.TypeExpr, error) {
	if node == nil || node.Head == nil {
		return models.TypeExpr{}, errors.NewSyntaxError("missing type expression", errors.SourceLocation{})
	}
	if len(node.Tail) > 0 {
		reason := "unions are not supported"
		if node.Tail[0].Op == "&" {
			reason = "intersections are not supported"
		}
		return models.TypeExpr{}, unknownType(node, reason)
	}
	return resolveTerm(node, node.Head)
}

func resolveTerm(node *grammar.TypeNode, term *grammar.TypeTerm) (models.TypeExpr, error) {
	if len(term.Args) > 0 {
		return models.TypeExpr{}, unknownType(node, "generic type arguments are not supported")
	}

	var base models.TypeExpr
	switch p := term.Primary; {
	case p == nil:
		return models.TypeExpr{}, unknownType(node, "empty type")
	case p.Group != nil:
		inner, err := Resolve(p.Group)
		if err != nil {
			return models.TypeExpr{}, err
		}
		base = inner
	case p.Literal != "":
		return models.TypeExpr{}, unknownType(node, "literal types are not supported")
	default:
		base = resolveName(p.Name)
	}

	for range term.Arrays {
		base = models.ArrayOf(base)
	}
	return base, nil
}

func resolveName(name string) models.TypeExpr {
	switch name {
	case KeywordString:
		return models.String()
	case KeywordNumber:
		return models.Number()
	case KeywordBoolean:
		return models.Boolean()
	default:
		return models.NamedRef(Capitalize(name))
	}
}

// Capitalize upper-cases the first rune of s when it is a cased letter and
// leaves s untouched otherwise (empty strings, digits, '_' or '$' prefixes).
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || !unicode.IsLower(r) {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func unknownType(node *grammar.TypeNode, reason string) error {
	return errors.NewUnknownTypeError(node.String(), reason, grammar.Location(node.Pos))
}
