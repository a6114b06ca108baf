package lang

import (
	"strconv"
	"strings"
)

// mustParseFloat parses text matched by the Float or Int lexer rules, which
// are always valid float syntax, so an error here would indicate a lexer/
// grammar mismatch rather than bad input.
func mustParseFloat(text string) float64 {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		panic("lang: lexer produced invalid numeric token " + text)
	}
	return v
}

// Literal is the right-hand side of a const declaration or a field default:
// a signed number, a string, an array literal, or a bare identifier (either
// a boolean literal spelled true/false, or a reference to an enum member
// resolved during semantic analysis).
type Literal struct {
	Number *SignedNumber `parser:"  @@"`
	Str    *string       `parser:"| @String"`
	Array  *ArrayLit     `parser:"| @@"`
	Ident  *string       `parser:"| @Ident"`
}

// SignedNumber is an optionally negative decimal, with or without a
// fractional part.
type SignedNumber struct {
	Negative bool   `parser:"@Minus?"`
	Value    string `parser:"@(Float|Int)"`
}

// ArrayLit is `{ literal, literal, ... }`.
type ArrayLit struct {
	Elements []*Literal `parser:"LBrace (@@ (Comma @@)*)? RBrace"`
}

// Float64 returns the numeric value of a SignedNumber.
func (n *SignedNumber) Float64() float64 {
	v := mustParseFloat(n.Value)
	if n.Negative {
		return -v
	}
	return v
}

// IsInteger reports whether the literal text had no fractional part.
func (n *SignedNumber) IsInteger() bool {
	return !strings.Contains(n.Value, ".")
}

// StringValue strips the surrounding quotes from a String token's text.
func StringValue(tok string) string {
	return strings.Trim(tok, `"`)
}
