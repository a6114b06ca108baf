package codec

// Message is a single decoded (or to-be-encoded) cbuf message: the preamble
// fields plus the naked struct body, represented as a plain field map keyed
// by field name (§4.7, §4.10).
//
// Field map value conventions:
//   - a scalar primitive field holds its native Go type (bool, intN, uintN,
//     floatN, string);
//   - a fixed/bounded/unbounded array of a primitive decodes as a typed
//     slice ([]int32, []float64, ...), never []any; on encode, either a
//     typed slice or a []any is accepted;
//   - a non-array struct field holds a nested map[string]any built the same
//     way;
//   - an array of struct fields holds []map[string]any.
//
// A field omitted from the map encodes as its declared default, or the
// type's zero value when no default was declared (§4.3, §8 invariant 2).
type Message struct {
	TypeName  string
	Size      int
	HashValue uint64
	Variant   int
	Timestamp float64
	Fields    map[string]any
}
