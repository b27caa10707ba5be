package grammar

import (
	stderrors "errors"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/toyz/tsport/internal/errors"
)

// The parsers are immutable once built and safe for concurrent use.
var (
	declarationParser = participle.MustBuild[DeclarationFile](
		participle.Lexer(declarationLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment"),
		participle.UseLookahead(2),
	)

	optionParser = participle.MustBuild[OptionComment](
		participle.Lexer(optionLexer),
		participle.Elide("Whitespace"),
	)
)

// Parse parses a declaration document. filename is only used in positions
// and may be empty for inline text.
func Parse(filename, source string) (*DeclarationFile, error) {
	file, err := declarationParser.ParseString(filename, source)
	if err != nil {
		return nil, syntaxError(err, lexer.Position{}, "declaration")
	}
	return file, nil
}

// ParseOptionBlock parses the clauses of one `/** ... **/` block. Positions
// of the returned clauses are absolute within the enclosing document.
func ParseOptionBlock(block *OptionBlock) (*OptionComment, error) {
	comment, err := optionParser.ParseString(block.Pos.Filename, block.Text)
	if err != nil {
		return nil, syntaxError(err, block.Pos, "option block")
	}
	for _, clause := range comment.Clauses {
		clause.Pos = Absolute(block.Pos, clause.Pos)
	}
	return comment, nil
}

// Absolute translates a position relative to the start of an embedded
// fragment into a position within the document the fragment came from.
func Absolute(origin, rel lexer.Position) lexer.Position {
	if origin.Line == 0 {
		return rel
	}
	abs := lexer.Position{
		Filename: origin.Filename,
		Offset:   origin.Offset + rel.Offset,
		Line:     origin.Line + rel.Line - 1,
		Column:   rel.Column,
	}
	if rel.Line <= 1 {
		abs.Column = origin.Column + rel.Column - 1
	}
	return abs
}

// Location converts a participle position into an error location
func Location(pos lexer.Position) errors.SourceLocation {
	return errors.SourceLocation{File: pos.Filename, Line: pos.Line, Column: pos.Column}
}

func syntaxError(err error, origin lexer.Position, what string) error {
	var perr participle.Error
	if !stderrors.As(err, &perr) {
		return errors.Wrapf(errors.SyntaxErrorCode, err, "failed to parse %s", what)
	}

	pos := Absolute(origin, perr.Position())
	serr := errors.NewSyntaxError(perr.Message(), Location(pos)).WithExpected(perr.Message())
	serr.WithCause(err)
	serr.WithContext("parse_context", what)
	if hint := syntaxHint(what); hint != "" {
		serr.WithSuggestion(hint)
	}
	return serr
}

func syntaxHint(what string) string {
	switch what {
	case "option block":
		return "Write options as '/** directive: argument; **/' or '/** directive; **/', each clause ending with ';'"
	case "declaration":
		return "Interface attributes must be written as 'name: type;' or 'name?: type;' inside balanced braces"
	default:
		return ""
	}
}
