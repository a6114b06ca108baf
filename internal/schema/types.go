// Package schema is the in-memory representation of a parsed cbuf schema: the
// closed set of primitive type tags, field descriptors, struct/enum entities,
// and the name/hash index built over them.
package schema

import "fmt"

// PrimitiveType is an enumeration of the primitive type tags cbuf fields may
// carry. Enum-typed fields never reach this package as PrimitiveType values:
// the semantic analyzer rewrites them to Uint32 before a schema is built.
type PrimitiveType int

const (
	Bool PrimitiveType = iota + 1
	Int8
	Uint8
	Int16
	Uint16
	Int32
	Uint32
	Int64
	Uint64
	Float32
	Float64
	String
)

// String returns the canonical cbuf spelling of the type tag.
func (p PrimitiveType) String() string {
	switch p {
	case Bool:
		return "bool"
	case Int8:
		return "int8"
	case Uint8:
		return "uint8"
	case Int16:
		return "int16"
	case Uint16:
		return "uint16"
	case Int32:
		return "int32"
	case Uint32:
		return "uint32"
	case Int64:
		return "int64"
	case Uint64:
		return "uint64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case String:
		return "string"
	default:
		return "unknown"
	}
}

// CSpelling returns the C-style type spelling used in the hasher's canonical
// text (§4.6). upperBound is only consulted for String, distinguishing a
// short_string (VString<15>) from an unbounded std::string.
func (p PrimitiveType) CSpelling(upperBound int) string {
	switch p {
	case Bool:
		return "bool"
	case Int8:
		return "int8_t"
	case Uint8:
		return "uint8_t"
	case Int16:
		return "int16_t"
	case Uint16:
		return "uint16_t"
	case Int32:
		return "int32_t"
	case Uint32:
		return "uint32_t"
	case Int64:
		return "int64_t"
	case Uint64:
		return "uint64_t"
	case Float32:
		return "float"
	case Float64:
		return "double"
	case String:
		if upperBound > 0 {
			return fmt.Sprintf("VString<%d>", upperBound-1)
		}
		return "std::string"
	default:
		panic(fmt.Sprintf("schema: unknown primitive type %d", p))
	}
}

// ByteWidth returns the fixed on-wire width of a scalar of this type, or 0 for
// types without a fixed width (string).
func (p PrimitiveType) ByteWidth() int {
	switch p {
	case Bool, Int8, Uint8:
		return 1
	case Int16, Uint16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	case Int64, Uint64, Float64:
		return 8
	default:
		return 0
	}
}

// primitiveSpellings maps every accepted source spelling (§4.5) to its
// canonical tag. short_string is handled separately by the parser since it
// also implies upperBound=16.
var primitiveSpellings = map[string]PrimitiveType{ //nolint:gochecknoglobals
	"bool": Bool,

	"s8": Int8, "int8": Int8, "int8_t": Int8,
	"u8": Uint8, "uint8": Uint8, "uint8_t": Uint8,

	"s16": Int16, "int16": Int16, "int16_t": Int16,
	"u16": Uint16, "uint16": Uint16, "uint16_t": Uint16,

	"s32": Int32, "int32": Int32, "int32_t": Int32, "int": Int32,
	"u32": Uint32, "uint32": Uint32, "uint32_t": Uint32,

	"s64": Int64, "int64": Int64, "int64_t": Int64,
	"u64": Uint64, "uint64": Uint64, "uint64_t": Uint64,

	"f32": Float32, "float32": Float32, "float": Float32,
	"f64": Float64, "float64": Float64, "double": Float64,

	"string": String,
}

// LookupPrimitive resolves a source spelling to its canonical primitive tag.
// short_string is intentionally not resolved here: it is sugar for
// string+upperBound and is expanded by the parser before reaching this
// function.
func LookupPrimitive(spelling string) (PrimitiveType, bool) {
	p, ok := primitiveSpellings[spelling]
	return p, ok
}

// IsReservedSpelling reports whether name is a primitive spelling (including
// the short_string sugar) and therefore unavailable as an identifier.
func IsReservedSpelling(name string) bool {
	if name == "short_string" {
		return true
	}
	_, ok := primitiveSpellings[name]
	return ok
}
