package lang

// SyntaxError reports a grammar-level parse failure at a given source line.
type SyntaxError struct {
	Message string
	Line    int
}

func (e SyntaxError) Error() string {
	return "syntax error: " + e.Message
}

func (e SyntaxError) Is(err error) bool {
	_, ok := err.(SyntaxError)
	return ok
}

// EmptyParseError reports source text that parsed to zero top-level
// declarations.
type EmptyParseError struct{}

func (e EmptyParseError) Error() string {
	return "empty parse: no declarations found"
}

func (e EmptyParseError) Is(err error) bool {
	_, ok := err.(EmptyParseError)
	return ok
}

// AmbiguousParseError reports a grammar that admitted more than one parse
// tree for the same input. The participle-based grammar built here is a
// deterministic PEG combinator and never actually produces more than one
// candidate tree, so this error is not constructed by Parse today; it is
// kept as part of the typed error surface for API completeness (see
// DESIGN.md).
type AmbiguousParseError struct{}

func (e AmbiguousParseError) Error() string {
	return "ambiguous parse"
}

func (e AmbiguousParseError) Is(err error) bool {
	_, ok := err.(AmbiguousParseError)
	return ok
}
