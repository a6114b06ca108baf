package codec

import (
	"encoding/binary"
	"reflect"
	"unsafe"
)

// nativeLittleEndian is computed once: on a little-endian host, the wire
// byte layout of a multi-byte primitive is identical to its in-memory
// layout, so decode can alias the input buffer instead of copying it.
var nativeLittleEndian = func() bool { //nolint:gochecknoglobals
	var x uint16 = 1
	return *(*byte)(unsafe.Pointer(&x)) == 1
}()

// toAnySlice normalizes a caller-supplied array value, which may be []any or
// any concrete typed slice (e.g. []int32), into a []any for uniform access
// by the encoder. A nil or non-slice value yields a nil result.
func toAnySlice(value any) []any {
	if value == nil {
		return nil
	}
	if s, ok := value.([]any); ok {
		return s
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice {
		return nil
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

// decodeTypedArray reads count primitive elements of the given type starting
// at offset, returning a concrete typed slice ([]int32, []float64, ...).
// When the host is little-endian and the element is aligned to its own
// width, the slice aliases buf directly rather than copying it (§4.8).
func decodeTypedArray(prim primKind, buf []byte, offset, count int) (any, int, error) {
	width := prim.width()
	need := width * count
	if offset+need > len(buf) {
		return nil, offset, BufferTooSmallError{Need: offset + need, Have: len(buf)}
	}
	data := buf[offset : offset+need]

	if count == 0 {
		return prim.emptySlice(), offset, nil
	}

	// bool's wire byte is 0/1 but Go's in-memory bool representation is not
	// specified, so it is never aliased: always normalize through copyDecode.
	if prim != primBool && (width == 1 || (nativeLittleEndian && offset%width == 0)) {
		return prim.alias(data, count), offset + need, nil
	}
	return prim.copyDecode(data, count), offset + need, nil
}

// encodeTypedArray writes count primitive elements from value (a typed
// slice or []any) into buf starting at offset.
func encodeTypedArray(prim primKind, buf []byte, offset int, value any, count int) int {
	elems := toAnySlice(value)
	for i := 0; i < count; i++ {
		var v any
		if i < len(elems) {
			v = elems[i]
		}
		offset = prim.encodeOne(buf, offset, v)
	}
	return offset
}

// primKind is the subset of schema.PrimitiveType values codec's typed-array
// path knows how to alias, copy, and encode.
type primKind int

const (
	primInt8 primKind = iota
	primUint8
	primInt16
	primUint16
	primInt32
	primUint32
	primInt64
	primUint64
	primFloat32
	primFloat64
	primBool
)

func (k primKind) width() int {
	switch k {
	case primInt8, primUint8, primBool:
		return 1
	case primInt16, primUint16:
		return 2
	case primInt32, primUint32, primFloat32:
		return 4
	case primInt64, primUint64, primFloat64:
		return 8
	default:
		return 0
	}
}

func (k primKind) emptySlice() any {
	switch k {
	case primInt8:
		return []int8{}
	case primUint8:
		return []uint8{}
	case primInt16:
		return []int16{}
	case primUint16:
		return []uint16{}
	case primInt32:
		return []int32{}
	case primUint32:
		return []uint32{}
	case primInt64:
		return []int64{}
	case primUint64:
		return []uint64{}
	case primFloat32:
		return []float32{}
	case primFloat64:
		return []float64{}
	case primBool:
		return []bool{}
	default:
		return nil
	}
}

// alias builds a typed slice directly over data's backing array. Safe only
// when the caller has already checked native endianness and alignment.
func (k primKind) alias(data []byte, count int) any {
	switch k {
	case primInt8:
		return unsafe.Slice((*int8)(unsafe.Pointer(&data[0])), count)
	case primUint8, primBool:
		return data[:count:count]
	case primInt16:
		return unsafe.Slice((*int16)(unsafe.Pointer(&data[0])), count)
	case primUint16:
		return unsafe.Slice((*uint16)(unsafe.Pointer(&data[0])), count)
	case primInt32:
		return unsafe.Slice((*int32)(unsafe.Pointer(&data[0])), count)
	case primUint32:
		return unsafe.Slice((*uint32)(unsafe.Pointer(&data[0])), count)
	case primInt64:
		return unsafe.Slice((*int64)(unsafe.Pointer(&data[0])), count)
	case primUint64:
		return unsafe.Slice((*uint64)(unsafe.Pointer(&data[0])), count)
	case primFloat32:
		return unsafe.Slice((*float32)(unsafe.Pointer(&data[0])), count)
	case primFloat64:
		return unsafe.Slice((*float64)(unsafe.Pointer(&data[0])), count)
	default:
		return k.copyDecode(data, count)
	}
}

func (k primKind) copyDecode(data []byte, count int) any {
	switch k {
	case primInt8:
		out := make([]int8, count)
		for i := range out {
			out[i] = int8(data[i])
		}
		return out
	case primUint8:
		out := make([]uint8, count)
		copy(out, data)
		return out
	case primBool:
		out := make([]bool, count)
		for i := range out {
			out[i] = data[i] != 0
		}
		return out
	case primInt16:
		out := make([]int16, count)
		for i := range out {
			out[i] = int16(binary.LittleEndian.Uint16(data[i*2:]))
		}
		return out
	case primUint16:
		out := make([]uint16, count)
		for i := range out {
			out[i] = binary.LittleEndian.Uint16(data[i*2:])
		}
		return out
	case primInt32:
		out := make([]int32, count)
		for i := range out {
			out[i] = int32(binary.LittleEndian.Uint32(data[i*4:]))
		}
		return out
	case primUint32:
		out := make([]uint32, count)
		for i := range out {
			out[i] = binary.LittleEndian.Uint32(data[i*4:])
		}
		return out
	case primInt64:
		out := make([]int64, count)
		for i := range out {
			out[i] = int64(binary.LittleEndian.Uint64(data[i*8:]))
		}
		return out
	case primUint64:
		out := make([]uint64, count)
		for i := range out {
			out[i] = binary.LittleEndian.Uint64(data[i*8:])
		}
		return out
	case primFloat32:
		out := make([]float32, count)
		for i := range out {
			out[i] = float32FromBits(binary.LittleEndian.Uint32(data[i*4:]))
		}
		return out
	case primFloat64:
		out := make([]float64, count)
		for i := range out {
			out[i] = float64FromBits(binary.LittleEndian.Uint64(data[i*8:]))
		}
		return out
	default:
		return nil
	}
}

func (k primKind) encodeOne(buf []byte, offset int, v any) int {
	switch k {
	case primInt8:
		buf[offset] = byte(asInt64(v))
	case primUint8:
		buf[offset] = byte(asUint64(v))
	case primBool:
		b, _ := v.(bool)
		if b {
			buf[offset] = 1
		} else {
			buf[offset] = 0
		}
	case primInt16:
		binary.LittleEndian.PutUint16(buf[offset:], uint16(asInt64(v)))
	case primUint16:
		binary.LittleEndian.PutUint16(buf[offset:], uint16(asUint64(v)))
	case primInt32:
		binary.LittleEndian.PutUint32(buf[offset:], uint32(asInt64(v)))
	case primUint32:
		binary.LittleEndian.PutUint32(buf[offset:], uint32(asUint64(v)))
	case primInt64:
		binary.LittleEndian.PutUint64(buf[offset:], uint64(asInt64(v)))
	case primUint64:
		binary.LittleEndian.PutUint64(buf[offset:], asUint64(v))
	case primFloat32:
		binary.LittleEndian.PutUint32(buf[offset:], float32Bits(float32(asFloat64(v))))
	case primFloat64:
		binary.LittleEndian.PutUint64(buf[offset:], float64Bits(asFloat64(v)))
	}
	return offset + k.width()
}
