package grammar

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// OptionComment is the parse tree of one `/** clause+ **/` block
type OptionComment struct {
	Clauses []*OptionClause `parser:"Open @@+ Close"`
}

// OptionClause is `directive;` or `directive: argument;`.
// Argument is nil for the bare form.
type OptionClause struct {
	Pos       lexer.Position
	Directive string  `parser:"@Directive"`
	Argument  *string `parser:"( Colon @Argument ArgEnd | Semi )"`
}

// HasArgument reports whether the clause was written with a colon
func (c *OptionClause) HasArgument() bool {
	return c.Argument != nil
}

// Value returns the trimmed argument, or "" for the bare form
func (c *OptionClause) Value() string {
	if c.Argument == nil {
		return ""
	}
	return strings.TrimSpace(*c.Argument)
}
