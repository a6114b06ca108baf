package codec

import (
	"github.com/verdant-robotics/cbuf/internal/schema"
)

// SerializedMessageSize returns the exact byte length SerializeMessage would
// produce for msg, resolving msg.TypeName against index (§4.9, §6.1). A
// naked struct cannot be a top-level message, matching §4.7's framing rule.
func SerializedMessageSize(index *schema.Index, msg *Message) (int, error) {
	entity, err := resolveTopLevel(index, msg.TypeName)
	if err != nil {
		return 0, err
	}
	body, err := NakedSize(index, entity, msg.Fields)
	if err != nil {
		return 0, err
	}
	return HeaderSize + body, nil
}

// SerializeMessage encodes msg as a 24-byte preamble followed by its struct
// body (§4.7-§4.9). Only msg.TypeName, msg.Timestamp, and msg.Fields are
// consulted; HashValue/Size/Variant are always derived or fixed (variant 0).
// The buffer is sized exactly once and fully filled; a short write or
// overflow is an internal defect, reported as SizeMismatchError rather than
// silently truncated.
func SerializeMessage(index *schema.Index, msg *Message) ([]byte, error) {
	entity, err := resolveTopLevel(index, msg.TypeName)
	if err != nil {
		return nil, err
	}
	body, err := NakedSize(index, entity, msg.Fields)
	if err != nil {
		return nil, err
	}
	size := HeaderSize + body
	buf := make([]byte, size)
	putPreamble(buf, entity.HashValue, size, 0, msg.Timestamp)

	offset, err := encodeStruct(index, buf, HeaderSize, entity, msg.Fields)
	if err != nil {
		return nil, err
	}
	if offset != size {
		return nil, SizeMismatchError{Computed: size, Written: offset}
	}
	return buf, nil
}

// resolveTopLevel looks up typeName and rejects naked structs, which §4.7
// permits only as nested fields.
func resolveTopLevel(index *schema.Index, typeName string) (*schema.Entity, error) {
	entity, ok := index.ByName(typeName)
	if !ok {
		return nil, UnknownMessageTypeError{TypeName: typeName}
	}
	if entity.IsNakedStruct {
		return nil, UnsupportedTypeError{Field: entity.QualifiedName, Reason: "naked struct cannot be a top-level message"}
	}
	return entity, nil
}

func encodeStruct(index *schema.Index, buf []byte, offset int, entity *schema.Entity, fields map[string]any) (int, error) {
	for _, f := range entity.Definitions {
		if f.IsConstant {
			continue
		}
		var err error
		offset, err = encodeField(index, buf, offset, f, fields[f.Name])
		if err != nil {
			return offset, err
		}
	}
	return offset, nil
}

// encodeNestedStruct writes target's wire representation at offset: just its
// body if target is naked, or a 24-byte preamble (hash=target.HashValue,
// timestamp=0.0) followed by the body otherwise (§4.7).
func encodeNestedStruct(index *schema.Index, buf []byte, offset int, target *schema.Entity, fields map[string]any) (int, error) {
	if target.IsNakedStruct {
		return encodeStruct(index, buf, offset, target, fields)
	}
	size, err := structWireSize(index, target, fields)
	if err != nil {
		return offset, err
	}
	putPreamble(buf[offset:offset+HeaderSize], target.HashValue, size, 0, 0.0)
	return encodeStruct(index, buf, offset+HeaderSize, target, fields)
}

func encodeField(index *schema.Index, buf []byte, offset int, f schema.Field, value any) (int, error) {
	if f.IsArray {
		return encodeArrayField(index, buf, offset, f, value)
	}
	if f.IsComplex {
		target, ok := index.ByName(f.ComplexType)
		if !ok {
			return offset, schema.UnknownTypeError{TypeName: f.ComplexType}
		}
		sub, _ := value.(map[string]any)
		return encodeNestedStruct(index, buf, offset, target, sub)
	}
	return encodeScalarField(buf, offset, f, value)
}

func encodeScalarField(buf []byte, offset int, f schema.Field, value any) (int, error) {
	if f.Type == schema.String {
		s := resolveStringValue(f, value)
		if f.IsShortString() {
			return encodeShortString(buf, offset, s)
		}
		return encodeString(buf, offset, s), nil
	}
	kind, ok := primKindOf(f.Type)
	if !ok {
		return offset, UnsupportedTypeError{Field: f.Name, Type: int(f.Type)}
	}
	if value == nil {
		value = f.DefaultValue
	}
	return kind.encodeOne(buf, offset, value), nil
}

func resolveStringValue(f schema.Field, value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	if s, ok := f.DefaultValue.(string); ok {
		return s
	}
	return ""
}

func encodeArrayField(index *schema.Index, buf []byte, offset int, f schema.Field, value any) (int, error) {
	count, structElems, scalarElems, _ := arrayLen(f, value)
	if bound := arrayBound(f); bound > 0 && count > bound {
		return offset, ArrayBoundError{Field: f.Name, Count: count, Bound: bound}
	}
	if f.ArrayLength == 0 {
		offset = encodeCount(buf, offset, count)
	}

	if f.IsComplex {
		target, ok := index.ByName(f.ComplexType)
		if !ok {
			return offset, schema.UnknownTypeError{TypeName: f.ComplexType}
		}
		for i := 0; i < count; i++ {
			var sub map[string]any
			if i < len(structElems) {
				sub = structElems[i]
			}
			var err error
			offset, err = encodeNestedStruct(index, buf, offset, target, sub)
			if err != nil {
				return offset, err
			}
		}
		return offset, nil
	}

	if f.Type == schema.String && !f.IsShortString() {
		for i := 0; i < count; i++ {
			var s string
			if i < len(scalarElems) {
				s, _ = scalarElems[i].(string)
			}
			offset = encodeString(buf, offset, s)
		}
		return offset, nil
	}

	if f.IsShortString() {
		for i := 0; i < count; i++ {
			var s string
			if i < len(scalarElems) {
				s, _ = scalarElems[i].(string)
			}
			var err error
			offset, err = encodeShortString(buf, offset, s)
			if err != nil {
				return offset, err
			}
		}
		return offset, nil
	}

	kind, ok := primKindOf(f.Type)
	if !ok {
		return offset, UnsupportedTypeError{Field: f.Name, Type: int(f.Type)}
	}
	return encodeTypedArray(kind, buf, offset, scalarElems, count), nil
}

func encodeCount(buf []byte, offset, count int) int {
	kind := primUint32
	return kind.encodeOne(buf, offset, uint32(count))
}
