package vhdl

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// VHDLLexer defines the lexical structure needed to pick entity port clauses
// out of VHDL sources. Keywords are case-insensitive as in VHDL; anything the
// grammar does not care about falls through to the Other rule.
var VHDLLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `--[^\n]*`},
	{Name: "Whitespace", Pattern: `[\s\t\n\r]+`},

	// Design unit structure
	{Name: "KwEntity", Pattern: `(?i)\bENTITY\b`},
	{Name: "KwIs", Pattern: `(?i)\bIS\b`},
	{Name: "KwEnd", Pattern: `(?i)\bEND\b`},
	{Name: "KwGeneric", Pattern: `(?i)\bGENERIC\b`},
	{Name: "KwPort", Pattern: `(?i)\bPORT\b`},

	// Port modes
	{Name: "KwIn", Pattern: `(?i)\bIN\b`},
	{Name: "KwOut", Pattern: `(?i)\bOUT\b`},
	{Name: "KwInout", Pattern: `(?i)\bINOUT\b`},
	{Name: "KwBuffer", Pattern: `(?i)\bBUFFER\b`},
	{Name: "KwLinkage", Pattern: `(?i)\bLINKAGE\b`},

	// Range directions
	{Name: "KwDownto", Pattern: `(?i)\bDOWNTO\b`},
	{Name: "KwTo", Pattern: `(?i)\bTO\b`},

	{Name: "Assign", Pattern: `:=`},
	{Name: "Arrow", Pattern: `=>`},
	{Name: "Colon", Pattern: `:`},
	{Name: "Semicolon", Pattern: `;`},
	{Name: "Comma", Pattern: `,`},
	{Name: "Dot", Pattern: `\.`},
	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},

	{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"`},
	{Name: "BitString", Pattern: `[XxBbOo]"[0-9A-Fa-f_]+"`},
	{Name: "Char", Pattern: `'[^']'`},

	{Name: "Real", Pattern: `[0-9]+\.[0-9]+([eE][-+]?[0-9]+)?`},
	{Name: "Integer", Pattern: `[0-9]+`},
	{Name: "Ident", Pattern: `[a-zA-Z][a-zA-Z0-9_]*`},

	{Name: "Other", Pattern: `[^\s]`},
})
