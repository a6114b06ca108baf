package lang

import (
	"strings"

	"github.com/alecthomas/participle/v2"
)

// Document is the root of a parsed cbuf source file: a free-form sequence of
// namespace blocks, constants, enums, and structs (§4.2).
type Document struct {
	Decls []*TopDecl `parser:"@@*"`
}

// TopDecl is one top-level (or namespace-body) declaration. Namespace is
// deliberately legal here even inside another namespace's body so that a
// nested namespace parses successfully and can be rejected with the typed
// NestedNamespaceError during semantic analysis, rather than failing as an
// opaque syntax error.
type TopDecl struct {
	Namespace *NamespaceDecl `parser:"  @@"`
	Const     *ConstDecl     `parser:"| @@"`
	Enum      *EnumDecl      `parser:"| @@"`
	Struct    *StructDecl    `parser:"| @@"`
}

// NamespaceDecl is `namespace IDENT { decl* }`.
type NamespaceDecl struct {
	Name string     `parser:"'namespace' @Ident"`
	Body []*TopDecl `parser:"LBrace @@* RBrace"`
}

// ConstDecl is `const TYPE IDENT = RHS;`.
type ConstDecl struct {
	Type  *TypeRef `parser:"'const' @@"`
	Name  string   `parser:"@Ident Equals"`
	Value *Literal `parser:"@@ Semicolon"`
}

// EnumDecl is `enum [class] IDENT { member, ... }`.
type EnumDecl struct {
	IsClass bool          `parser:"'enum' @'class'?"`
	Name    string        `parser:"@Ident"`
	Members []*EnumMember `parser:"LBrace @@ (Comma @@)* Comma? RBrace"`
}

// EnumMember is `IDENT[ = NUMBER]`.
type EnumMember struct {
	Name  string `parser:"@Ident"`
	Value *int64 `parser:"(Equals @Int)?"`
}

// StructDecl is `struct IDENT [@naked] { field; ... }`.
type StructDecl struct {
	Name   string       `parser:"'struct' @Ident"`
	Naked  bool         `parser:"@(At 'naked')?"`
	Fields []*FieldDecl `parser:"LBrace @@* RBrace"`
}

// FieldDecl is `TYPE IDENT [ARRAY] [= RHS];`.
type FieldDecl struct {
	Type    *TypeRef   `parser:"@@"`
	Name    string     `parser:"@Ident"`
	Array   *ArraySpec `parser:"@@?"`
	Default *Literal   `parser:"(Equals @@)? Semicolon"`
}

// TypeRef is a (possibly namespace-qualified) type name: `a::b::c`.
type TypeRef struct {
	Parts []string `parser:"@Ident (DoubleColon @Ident)*"`
}

// Name joins the parts of a qualified type name with "::".
func (t *TypeRef) Name() string {
	return strings.Join(t.Parts, "::")
}

// ArraySpec is `[]`, `[N]`, or `[N] @compact`.
type ArraySpec struct {
	Length  *Expr `parser:"LBracket @@? RBracket"`
	Compact bool  `parser:"@(At 'compact')?"`
}

// Parser parses preprocessed cbuf source text into a Document.
var Parser = participle.MustBuild[Document]( //nolint:gochecknoglobals
	participle.Lexer(Lexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(1024),
)

// Parse runs the grammar over already-preprocessed source text.
func Parse(text string) (*Document, error) {
	doc, err := Parser.ParseString("", text)
	if err != nil {
		return nil, SyntaxError{Message: err.Error(), Line: lineOf(err)}
	}
	if len(doc.Decls) == 0 {
		return nil, EmptyParseError{}
	}
	return doc, nil
}

func lineOf(err error) int {
	var perr participle.Error
	if ok := asParticipleError(err, &perr); ok {
		return perr.Position().Line
	}
	return 0
}

func asParticipleError(err error, target *participle.Error) bool {
	pe, ok := err.(participle.Error)
	if !ok {
		return false
	}
	*target = pe
	return true
}
