// Package lang implements the cbuf schema concrete syntax (§4.2) as a
// participle grammar, the way server/util/ros1msg/grammar.go builds the ROS
// msg grammar in this codebase: a hand-rolled lexer plus a set of tagged
// struct types that participle fills in via parser directives.
package lang

import "github.com/alecthomas/participle/v2/lexer"

// Lexer tokenizes already-preprocessed cbuf source (comments and #imports
// are gone by the time this runs; see internal/preprocess).
var Lexer = lexer.MustSimple([]lexer.SimpleRule{ //nolint:gochecknoglobals
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
	{Name: "Float", Pattern: `[0-9]+\.[0-9]+`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "String", Pattern: `"[^"]*"`},
	{Name: "DoubleColon", Pattern: `::`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "LBrace", Pattern: `\{`},
	{Name: "RBrace", Pattern: `\}`},
	{Name: "LBracket", Pattern: `\[`},
	{Name: "RBracket", Pattern: `\]`},
	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},
	{Name: "Semicolon", Pattern: `;`},
	{Name: "Comma", Pattern: `,`},
	{Name: "Equals", Pattern: `=`},
	{Name: "At", Pattern: `@`},
	{Name: "Plus", Pattern: `\+`},
	{Name: "Minus", Pattern: `-`},
	{Name: "Star", Pattern: `\*`},
	{Name: "Slash", Pattern: `/`},
})
