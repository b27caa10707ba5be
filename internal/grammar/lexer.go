package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Rules are tried in order, so option blocks must precede ordinary block
// comments and keywords must precede Ident.
var declarationLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "OptionBlock", Pattern: `/\*\*(?:[^*]|\*+[^*/])*\*\*/`},
	{Name: "BlockComment", Pattern: `/\*(?:[^*]|\*+[^*/])*\*+/`},
	{Name: "LineComment", Pattern: `//[^\n]*`},
	{Name: "String", Pattern: `"(?:\\.|[^"\\])*"|'(?:\\.|[^'\\])*'|` + "`(?:\\\\.|[^`\\\\])*`"},
	{Name: "Interface", Pattern: `interface\b`},
	{Name: "Modifier", Pattern: `(?:export|declare)\b`},
	{Name: "Ident", Pattern: `[A-Za-z_$][A-Za-z0-9_$]*`},
	{Name: "Number", Pattern: `[0-9][0-9_]*(?:\.[0-9]+)?(?:[eE][+-]?[0-9]+)?`},
	{Name: "LBrace", Pattern: `\{`},
	{Name: "RBrace", Pattern: `\}`},
	{Name: "Punct", Pattern: `[^\sA-Za-z0-9_${}]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// optionLexer tokenizes the text of a single /** ... **/ block. A colon
// switches to the Argument state, which captures everything up to the
// terminating semicolon so retype targets such as `HashMap<String, i32>`
// or `serde_json::Value` survive verbatim.
var optionLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Open", Pattern: `/\*\*`},
		{Name: "Close", Pattern: `\*\*/`},
		{Name: "Whitespace", Pattern: `\s+`},
		{Name: "Directive", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
		{Name: "Colon", Pattern: `:`, Action: lexer.Push("Argument")},
		{Name: "Semi", Pattern: `;`},
		{Name: "Unexpected", Pattern: `[^\s;:]`},
	},
	"Argument": {
		{Name: "ArgEnd", Pattern: `;`, Action: lexer.Pop()},
		{Name: "Argument", Pattern: `[^;]+`},
	},
})
