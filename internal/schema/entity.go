package schema

import "strings"

// Field is a single member of a struct, or a pseudo-field modeling one member
// of an enum (§3).
type Field struct {
	Name string

	// Type is the primitive tag. Zero (invalid) when IsComplex is true.
	Type PrimitiveType

	// ComplexType is the fully qualified name of the referenced struct.
	// Non-empty iff IsComplex.
	ComplexType string
	IsComplex   bool

	IsArray         bool
	ArrayLength     int // > 0 for a fixed-length array, else unused.
	ArrayUpperBound int // > 0 for a bounded/compact array, else unused.

	// UpperBound applies only to Type==String; 16 marks a short_string.
	UpperBound int

	DefaultValue any
	HasDefault   bool

	// IsConstant marks an enum member pseudo-field; Value is its integer
	// value in that case.
	IsConstant bool
	Value      int64
}

// IsShortString reports whether this is the fixed-width short_string sugar.
func (f Field) IsShortString() bool {
	return f.Type == String && f.UpperBound > 0
}

// Entity is a struct or enum definition, fully resolved: namespaces attached,
// enum references rewritten to uint32, names qualified.
type Entity struct {
	Name          string
	QualifiedName string
	Namespaces    []string
	Definitions   []Field
	HashValue     uint64

	IsEnum        bool
	IsEnumClass   bool
	IsNakedStruct bool
}

// Qualify joins namespaces and a bare name the way §4.3 step 1 specifies.
func Qualify(namespaces []string, name string) string {
	if len(namespaces) == 0 {
		return name
	}
	return strings.Join(namespaces, "::") + "::" + name
}
