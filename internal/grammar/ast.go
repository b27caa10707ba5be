package grammar

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// DeclarationFile is the root of a parsed document: interface declarations
// mixed with noise, in document order.
type DeclarationFile struct {
	Pos     lexer.Position
	Entries []*Entry `parser:"@@*"`
}

// Interfaces returns the interface declarations in document order
func (f *DeclarationFile) Interfaces() []*InterfaceBlock {
	var out []*InterfaceBlock
	for _, entry := range f.Entries {
		if entry.Interface != nil {
			out = append(out, entry.Interface)
		}
	}
	return out
}

// Entry is either an interface declaration or a piece of noise
type Entry struct {
	Interface *InterfaceBlock `parser:"  @@"`
	Noise     *Noise          `parser:"| @@"`
}

// InterfaceBlock is `[export|declare]* interface Name { attributes } /** options **/*`
type InterfaceBlock struct {
	Pos        lexer.Position
	Modifiers  []string          `parser:"@Modifier*"`
	Name       string            `parser:"Interface @(Ident | Modifier)"`
	Attributes []*AttributeBlock `parser:"LBrace @@*"`
	Close      string            `parser:"@RBrace"`
	Options    []*OptionBlock    `parser:"@@*"`
}

// AttributeBlock is `[readonly] name[?]: type; /** options **/*`.
// Words holds the name preceded by any modifier words.
type AttributeBlock struct {
	Pos      lexer.Position
	Words    []string       `parser:"@(Ident | Modifier | Interface)+"`
	Optional bool           `parser:"@'?'?"`
	Type     *TypeNode      `parser:"':' @@ ';'"`
	Options  []*OptionBlock `parser:"@@*"`
}

// Name returns the declared attribute name (without modifiers or '?')
func (a *AttributeBlock) Name() string {
	if len(a.Words) == 0 {
		return ""
	}
	return a.Words[len(a.Words)-1]
}

// Modifiers returns the words written before the attribute name
func (a *AttributeBlock) Modifiers() []string {
	if len(a.Words) < 2 {
		return nil
	}
	return a.Words[:len(a.Words)-1]
}

// OptionBlock is the raw text of a `/** ... **/` comment; its clauses are
// parsed on demand with ParseOptionBlock.
type OptionBlock struct {
	Pos  lexer.Position
	Text string `parser:"@OptionBlock"`
}

// TypeNode is a type expression. Only a single term without operators is
// translatable; operators are captured so the resolver can reject unions and
// intersections with a dedicated error instead of a generic syntax error.
type TypeNode struct {
	Pos  lexer.Position
	Head *TypeTerm   `parser:"@@"`
	Tail []*TypeTail `parser:"@@*"`
}

// TypeTail is a `| term` or `& term` continuation
type TypeTail struct {
	Op   string    `parser:"@('|' | '&')"`
	Term *TypeTerm `parser:"@@"`
}

// TypeTerm is a primary type with optional generic arguments followed by
// array suffixes
type TypeTerm struct {
	Pos     lexer.Position
	Primary *TypePrimary   `parser:"@@"`
	Args    []*TypeNode    `parser:"( '<' @@ ( ',' @@ )* '>' )?"`
	Arrays  []*ArraySuffix `parser:"@@*"`
}

// TypePrimary is an identifier, a literal type or a parenthesised type
type TypePrimary struct {
	Name    string    `parser:"  @Ident"`
	Literal string    `parser:"| @(String | Number)"`
	Group   *TypeNode `parser:"| '(' @@ ')'"`
}

// ArraySuffix is one `[]`
type ArraySuffix struct {
	Open string `parser:"@'[' ']'"`
}

// Noise is top-level content that is not an interface declaration: a
// balanced brace block or any single token other than a closing brace.
// `interface` is noise only when no name or brace follows it, so a
// malformed declaration is still reported.
type Noise struct {
	Block   *NoiseBlock `parser:"  @@"`
	Token   string      `parser:"| @(Ident | Modifier | String | Number | Punct | OptionBlock)"`
	Keyword string      `parser:"| @Interface (?! Ident | Modifier | LBrace)"`
}

// NoiseBlock is a balanced `{ ... }` region skipped as a whole
type NoiseBlock struct {
	Open  string       `parser:"@LBrace"`
	Items []*NoiseItem `parser:"@@*"`
	Close string       `parser:"@RBrace"`
}

// NoiseItem is anything inside a NoiseBlock, including nested blocks and
// `interface` keywords belonging to constructs this grammar does not model.
type NoiseItem struct {
	Block *NoiseBlock `parser:"  @@"`
	Token string      `parser:"| @(Ident | Modifier | Interface | String | Number | Punct | OptionBlock)"`
}

// String renders the type expression back to source form
func (n *TypeNode) String() string {
	if n == nil || n.Head == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(n.Head.String())
	for _, tail := range n.Tail {
		b.WriteString(" " + tail.Op + " ")
		b.WriteString(tail.Term.String())
	}
	return b.String()
}

// String renders the term back to source form
func (t *TypeTerm) String() string {
	var b strings.Builder
	switch p := t.Primary; {
	case p == nil:
	case p.Group != nil:
		b.WriteString("(" + p.Group.String() + ")")
	case p.Literal != "":
		b.WriteString(p.Literal)
	default:
		b.WriteString(p.Name)
	}
	if len(t.Args) > 0 {
		args := make([]string, len(t.Args))
		for i, arg := range t.Args {
			args[i] = arg.String()
		}
		b.WriteString("<" + strings.Join(args, ", ") + ">")
	}
	for range t.Arrays {
		b.WriteString("[]")
	}
	return b.String()
}
