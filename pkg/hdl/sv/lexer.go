package sv

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// SVLexer tokenizes SystemVerilog just finely enough to recover ANSI module
// headers. Keywords are matched by value in the grammar, so they lex as
// identifiers.
var SVLexer = lexer.MustSimple([]lexer.SimpleRule{
	// Comments - line and block
	{Name: "Comment", Pattern: `//[^\n]*|/\*(?s:.*?)\*/`},
	{Name: "Whitespace", Pattern: `[\s\t\n\r]+`},

	// Compiler directives (`timescale, `include, ...)
	{Name: "Directive", Pattern: "`[a-zA-Z_][a-zA-Z0-9_]*"},

	{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"`},

	// Numbers: plain decimal, sized/unsized based literals, unbased unsized
	{Name: "Number", Pattern: `[0-9][0-9_]*(?:\.[0-9_]+)?(?:'[sS]?[bBoOdDhH][0-9a-fA-FxXzZ?_]+)?|'[sS]?[bBoOdDhH][0-9a-fA-FxXzZ?_]+|'[01xXzZ]\b`},

	{Name: "System", Pattern: `\$[a-zA-Z_][a-zA-Z0-9_$]*`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_$]*|\\[^\s]+`},

	{Name: "Punct", Pattern: `[^\s]`},
})
