package codec

import "github.com/verdant-robotics/cbuf/internal/schema"

// countPrefixSize is the width of the element-count word written ahead of a
// bounded or unbounded array's elements.
const countPrefixSize = 4

// stringLengthPrefixSize is the width of the byte-length word written ahead
// of an unbounded string's bytes.
const stringLengthPrefixSize = 4

// shortStringSize is the fixed wire width of short_string (§4.5): 16 bytes,
// NUL-padded, holding up to 15 printable bytes plus the terminator.
const shortStringSize = 16

// NakedSize computes the exact number of bytes entity's body occupies on
// the wire for the given field values, not including any preamble of
// entity's own (§4.9). Nested non-naked struct fields still contribute
// their own 24-byte preamble via structWireSize.
func NakedSize(index *schema.Index, entity *schema.Entity, fields map[string]any) (int, error) {
	total := 0
	for _, f := range entity.Definitions {
		if f.IsConstant {
			continue
		}
		n, err := fieldSize(index, f, fields[f.Name])
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

// structWireSize is the number of bytes target contributes wherever it is
// embedded on the wire: its naked body size, plus a 24-byte preamble unless
// target itself is a naked struct (§4.7).
func structWireSize(index *schema.Index, target *schema.Entity, fields map[string]any) (int, error) {
	body, err := NakedSize(index, target, fields)
	if err != nil {
		return 0, err
	}
	if target.IsNakedStruct {
		return body, nil
	}
	return HeaderSize + body, nil
}

func fieldSize(index *schema.Index, f schema.Field, value any) (int, error) {
	if f.IsArray {
		return arraySize(index, f, value)
	}
	if f.IsComplex {
		target, ok := index.ByName(f.ComplexType)
		if !ok {
			return 0, schema.UnknownTypeError{TypeName: f.ComplexType}
		}
		sub, _ := value.(map[string]any)
		return structWireSize(index, target, sub)
	}
	return scalarSize(f, value)
}

func scalarSize(f schema.Field, value any) (int, error) {
	if f.Type == schema.String {
		if f.IsShortString() {
			return shortStringSize, nil
		}
		return stringLengthPrefixSize + scalarStringLen(f, value), nil
	}
	w := f.Type.ByteWidth()
	if w == 0 {
		return 0, UnsupportedTypeError{Field: f.Name, Type: int(f.Type)}
	}
	return w, nil
}

// scalarStringLen returns the encoded byte length of a string scalar value,
// falling back to the declared default (or empty) when value is nil.
func scalarStringLen(f schema.Field, value any) int {
	s, ok := value.(string)
	if !ok {
		if d, ok := f.DefaultValue.(string); ok {
			s = d
		}
	}
	return len(s)
}

func arraySize(index *schema.Index, f schema.Field, value any) (int, error) {
	elemCount, structElems, scalarElems, err := arrayLen(f, value)
	if err != nil {
		return 0, err
	}
	if bound := arrayBound(f); bound > 0 && elemCount > bound {
		return 0, ArrayBoundError{Field: f.Name, Count: elemCount, Bound: bound}
	}

	prefix := 0
	if f.ArrayLength == 0 { // bounded or unbounded array carries a count
		prefix = countPrefixSize
	}

	if f.IsComplex {
		target, ok := index.ByName(f.ComplexType)
		if !ok {
			return 0, schema.UnknownTypeError{TypeName: f.ComplexType}
		}
		total := prefix
		for i := 0; i < elemCount; i++ {
			var sub map[string]any
			if structElems != nil && i < len(structElems) {
				sub = structElems[i]
			}
			n, err := structWireSize(index, target, sub)
			if err != nil {
				return 0, err
			}
			total += n
		}
		return total, nil
	}

	if f.Type == schema.String && !f.IsShortString() {
		total := prefix
		for i := 0; i < elemCount; i++ {
			var s string
			if scalarElems != nil && i < len(scalarElems) {
				s, _ = scalarElems[i].(string)
			}
			total += stringLengthPrefixSize + len(s)
		}
		return total, nil
	}

	elemWidth := shortStringSize
	if !f.IsShortString() {
		elemWidth = f.Type.ByteWidth()
		if elemWidth == 0 {
			return 0, UnsupportedTypeError{Field: f.Name, Type: int(f.Type)}
		}
	}
	return prefix + elemCount*elemWidth, nil
}

func arrayBound(f schema.Field) int {
	if f.ArrayLength > 0 {
		return f.ArrayLength
	}
	return f.ArrayUpperBound
}

// arrayLen determines the element count an array field will encode as,
// honoring a fixed schema length over whatever the caller supplied. A nil
// value falls back to the field's declared default, if any.
func arrayLen(f schema.Field, value any) (count int, structElems []map[string]any, scalarElems []any, err error) {
	if value == nil && f.HasDefault {
		value = f.DefaultValue
	}
	if f.IsComplex {
		structElems, _ = value.([]map[string]any)
		count = len(structElems)
	} else {
		scalarElems = toAnySlice(value)
		count = len(scalarElems)
	}
	if f.ArrayLength > 0 {
		count = f.ArrayLength
	}
	return count, structElems, scalarElems, nil
}
