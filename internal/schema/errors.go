package schema

// DuplicateEntityError reports a qualified name (struct, enum, or constant)
// defined more than once.
type DuplicateEntityError struct {
	QualifiedName string
}

func (e DuplicateEntityError) Error() string {
	return "duplicate entity: " + e.QualifiedName
}

func (e DuplicateEntityError) Is(err error) bool {
	_, ok := err.(DuplicateEntityError)
	return ok
}

// UnknownTypeError reports a complex type reference that could not be
// resolved by the namespace walk (§4.4).
type UnknownTypeError struct {
	TypeName string
}

func (e UnknownTypeError) Error() string {
	return "unknown type: " + e.TypeName
}

func (e UnknownTypeError) Is(err error) bool {
	_, ok := err.(UnknownTypeError)
	return ok
}

// UnknownEnumValueError reports a named default value that does not match
// any member of its enum.
type UnknownEnumValueError struct {
	EnumName  string
	ValueName string
}

func (e UnknownEnumValueError) Error() string {
	return "unknown enum value " + e.ValueName + " in " + e.EnumName
}

func (e UnknownEnumValueError) Is(err error) bool {
	_, ok := err.(UnknownEnumValueError)
	return ok
}

// ComplexDefaultForbiddenError reports a default value attached to a field
// whose type is a struct, which §4.3 forbids. Enum-typed fields are rewritten
// to uint32 and may carry a default.
type ComplexDefaultForbiddenError struct {
	FieldName string
}

func (e ComplexDefaultForbiddenError) Error() string {
	return "default value forbidden for complex field " + e.FieldName
}

func (e ComplexDefaultForbiddenError) Is(err error) bool {
	_, ok := err.(ComplexDefaultForbiddenError)
	return ok
}

// InvalidDefaultValueError reports a default value whose literal type does
// not match the field's declared type.
type InvalidDefaultValueError struct {
	FieldName string
	Reason    string
}

func (e InvalidDefaultValueError) Error() string {
	return "invalid default value for " + e.FieldName + ": " + e.Reason
}

func (e InvalidDefaultValueError) Is(err error) bool {
	_, ok := err.(InvalidDefaultValueError)
	return ok
}

// NestedNamespaceError reports a namespace block declared inside another
// namespace block, which §4.2 rejects.
type NestedNamespaceError struct {
	Name string
}

func (e NestedNamespaceError) Error() string {
	return "nested namespace not allowed: " + e.Name
}

func (e NestedNamespaceError) Is(err error) bool {
	_, ok := err.(NestedNamespaceError)
	return ok
}

// NoStructsError reports a compiled schema set with zero struct entities.
type NoStructsError struct{}

func (e NoStructsError) Error() string {
	return "schema contains no structs"
}

func (e NoStructsError) Is(err error) bool {
	_, ok := err.(NoStructsError)
	return ok
}

// CyclicSchemaError reports a struct reference cycle discovered while
// computing hashes.
type CyclicSchemaError struct {
	QualifiedName string
}

func (e CyclicSchemaError) Error() string {
	return "cyclic schema reference through " + e.QualifiedName
}

func (e CyclicSchemaError) Is(err error) bool {
	_, ok := err.(CyclicSchemaError)
	return ok
}

// HashNotFoundError reports a wire hash with no matching struct in an index.
type HashNotFoundError struct {
	Hash uint64
}

func (e HashNotFoundError) Error() string {
	return "no struct registered for hash"
}

func (e HashNotFoundError) Is(err error) bool {
	_, ok := err.(HashNotFoundError)
	return ok
}
