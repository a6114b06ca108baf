package codec

import (
	"encoding/binary"
	"math"

	"github.com/verdant-robotics/cbuf/internal/schema"
)

// DeserializeMessage reads one framed message (24-byte preamble plus body)
// starting at buf[offset:] (§4.7, §4.10). The struct type is resolved from
// the preamble's hash via index.ByHash, which also recognizes the ambient
// cbufmsg::metadata hash even when the caller's schema never declared it.
// The returned Message.Size is the total framed length; callers decoding a
// stream of concatenated messages advance by that amount.
func DeserializeMessage(index *schema.Index, buf []byte, offset int) (*Message, error) {
	if offset+HeaderSize > len(buf) {
		return nil, BufferTooSmallError{Need: offset + HeaderSize, Have: len(buf)}
	}
	magic := binary.LittleEndian.Uint32(buf[offset : offset+4])
	if magic != Magic {
		return nil, BadMagicError{Got: magic}
	}
	size, variant := decodeSizeAndVariant(binary.LittleEndian.Uint32(buf[offset+4 : offset+8]))
	hashValue := binary.LittleEndian.Uint64(buf[offset+8 : offset+16])
	timestamp := math.Float64frombits(binary.LittleEndian.Uint64(buf[offset+16 : offset+24]))

	if offset+size > len(buf) {
		return nil, SizeExceedsBufferError{DeclaredSize: size, BufferLen: len(buf) - offset}
	}

	entity, ok := index.ByHash(hashValue)
	if !ok {
		return nil, schema.HashNotFoundError{Hash: hashValue}
	}

	fields, next, err := decodeStruct(index, buf, offset+HeaderSize, entity)
	if err != nil {
		return nil, err
	}
	if next != offset+size {
		return nil, SizeMismatchError{Computed: size, Written: next - offset}
	}

	return &Message{
		TypeName:  entity.QualifiedName,
		Size:      size,
		HashValue: hashValue,
		Variant:   variant,
		Timestamp: timestamp,
		Fields:    fields,
	}, nil
}

func decodeStruct(index *schema.Index, buf []byte, offset int, entity *schema.Entity) (map[string]any, int, error) {
	fields := make(map[string]any, len(entity.Definitions))
	for _, f := range entity.Definitions {
		if f.IsConstant {
			continue
		}
		v, next, err := decodeField(index, buf, offset, f)
		if err != nil {
			return nil, offset, err
		}
		fields[f.Name] = v
		offset = next
	}
	return fields, offset, nil
}

// decodeNestedStruct reads target's wire representation at offset: just its
// body if target is naked, or a validated 24-byte preamble followed by the
// body otherwise (§4.7). The nested preamble's hash/timestamp are not
// surfaced to the caller; only its magic is checked.
func decodeNestedStruct(index *schema.Index, buf []byte, offset int, target *schema.Entity) (map[string]any, int, error) {
	if target.IsNakedStruct {
		return decodeStruct(index, buf, offset, target)
	}
	if offset+HeaderSize > len(buf) {
		return nil, offset, BufferTooSmallError{Need: offset + HeaderSize, Have: len(buf)}
	}
	magic := binary.LittleEndian.Uint32(buf[offset : offset+4])
	if magic != Magic {
		return nil, offset, BadMagicError{Got: magic}
	}
	return decodeStruct(index, buf, offset+HeaderSize, target)
}

func decodeField(index *schema.Index, buf []byte, offset int, f schema.Field) (any, int, error) {
	if f.IsArray {
		return decodeArrayField(index, buf, offset, f)
	}
	if f.IsComplex {
		target, ok := index.ByName(f.ComplexType)
		if !ok {
			return nil, offset, schema.UnknownTypeError{TypeName: f.ComplexType}
		}
		return decodeNestedStruct(index, buf, offset, target)
	}
	return decodeScalarField(buf, offset, f)
}

func decodeScalarField(buf []byte, offset int, f schema.Field) (any, int, error) {
	if f.Type == schema.String {
		if f.IsShortString() {
			return decodeShortString(buf, offset)
		}
		return decodeString(buf, offset)
	}
	kind, ok := primKindOf(f.Type)
	if !ok {
		return nil, offset, UnsupportedTypeError{Field: f.Name, Type: int(f.Type)}
	}
	width := kind.width()
	if offset+width > len(buf) {
		return nil, offset, BufferTooSmallError{Need: offset + width, Have: len(buf)}
	}
	v := kind.copyDecode(buf[offset:offset+width], 1)
	return indexZero(v), offset + width, nil
}

// indexZero extracts the single element written by copyDecode(_, 1) as a
// scalar value rather than a one-element slice.
func indexZero(slice any) any {
	switch s := slice.(type) {
	case []int8:
		return s[0]
	case []uint8:
		return s[0]
	case []bool:
		return s[0]
	case []int16:
		return s[0]
	case []uint16:
		return s[0]
	case []int32:
		return s[0]
	case []uint32:
		return s[0]
	case []int64:
		return s[0]
	case []uint64:
		return s[0]
	case []float32:
		return s[0]
	case []float64:
		return s[0]
	default:
		return nil
	}
}

func decodeArrayField(index *schema.Index, buf []byte, offset int, f schema.Field) (any, int, error) {
	count := f.ArrayLength
	if count == 0 {
		if offset+countPrefixSize > len(buf) {
			return nil, offset, BufferTooSmallError{Need: offset + countPrefixSize, Have: len(buf)}
		}
		count = int(binary.LittleEndian.Uint32(buf[offset:]))
		offset += countPrefixSize
	}
	if bound := arrayBound(f); bound > 0 && count > bound {
		return nil, offset, ArrayBoundError{Field: f.Name, Count: count, Bound: bound}
	}

	if f.IsComplex {
		target, ok := index.ByName(f.ComplexType)
		if !ok {
			return nil, offset, schema.UnknownTypeError{TypeName: f.ComplexType}
		}
		out := make([]map[string]any, count)
		for i := 0; i < count; i++ {
			var sub map[string]any
			var err error
			sub, offset, err = decodeNestedStruct(index, buf, offset, target)
			if err != nil {
				return nil, offset, err
			}
			out[i] = sub
		}
		return out, offset, nil
	}

	if f.Type == schema.String && !f.IsShortString() {
		out := make([]string, count)
		for i := 0; i < count; i++ {
			var s string
			var err error
			s, offset, err = decodeString(buf, offset)
			if err != nil {
				return nil, offset, err
			}
			out[i] = s
		}
		return out, offset, nil
	}

	if f.IsShortString() {
		out := make([]string, count)
		for i := 0; i < count; i++ {
			var s string
			var err error
			s, offset, err = decodeShortString(buf, offset)
			if err != nil {
				return nil, offset, err
			}
			out[i] = s
		}
		return out, offset, nil
	}

	kind, ok := primKindOf(f.Type)
	if !ok {
		return nil, offset, UnsupportedTypeError{Field: f.Name, Type: int(f.Type)}
	}
	return decodeTypedArray(kind, buf, offset, count)
}
