package codec

import (
	"math"

	"github.com/verdant-robotics/cbuf/internal/schema"
)

// primKindOf maps a resolved schema primitive tag to the codec's internal
// typed-array kind. Returns ok=false for String, which the codec encodes
// through its own length-prefixed / short_string paths rather than the
// typed-array machinery.
func primKindOf(p schema.PrimitiveType) (primKind, bool) {
	switch p {
	case schema.Bool:
		return primBool, true
	case schema.Int8:
		return primInt8, true
	case schema.Uint8:
		return primUint8, true
	case schema.Int16:
		return primInt16, true
	case schema.Uint16:
		return primUint16, true
	case schema.Int32:
		return primInt32, true
	case schema.Uint32:
		return primUint32, true
	case schema.Int64:
		return primInt64, true
	case schema.Uint64:
		return primUint64, true
	case schema.Float32:
		return primFloat32, true
	case schema.Float64:
		return primFloat64, true
	default:
		return 0, false
	}
}

func asInt64(v any) int64 {
	switch n := v.(type) {
	case bool:
		if n {
			return 1
		}
		return 0
	case int8:
		return int64(n)
	case int16:
		return int64(n)
	case int32:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	case uint8:
		return int64(n)
	case uint16:
		return int64(n)
	case uint32:
		return int64(n)
	case uint64:
		return int64(n)
	case float32:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}

func asUint64(v any) uint64 {
	switch n := v.(type) {
	case bool:
		if n {
			return 1
		}
		return 0
	case uint8:
		return uint64(n)
	case uint16:
		return uint64(n)
	case uint32:
		return uint64(n)
	case uint64:
		return n
	case int8:
		return uint64(n)
	case int16:
		return uint64(n)
	case int32:
		return uint64(n)
	case int64:
		return uint64(n)
	case int:
		return uint64(n)
	case float32:
		return uint64(n)
	case float64:
		return uint64(n)
	default:
		return 0
	}
}

func float32Bits(f float32) uint32     { return math.Float32bits(f) }
func float64Bits(f float64) uint64     { return math.Float64bits(f) }
func float32FromBits(b uint32) float32 { return math.Float32frombits(b) }
func float64FromBits(b uint64) float64 { return math.Float64frombits(b) }

// asFloat64 coerces a caller-supplied numeric value to float64, matching
// asInt64/asUint64's tolerance for JSON-decoded input, where every number
// arrives as float64 regardless of the target field's declared width.
func asFloat64(v any) float64 {
	switch n := v.(type) {
	case bool:
		if n {
			return 1
		}
		return 0
	case float32:
		return float64(n)
	case float64:
		return n
	case int:
		return float64(n)
	case int8:
		return float64(n)
	case int16:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint8:
		return float64(n)
	case uint16:
		return float64(n)
	case uint32:
		return float64(n)
	case uint64:
		return float64(n)
	default:
		return 0
	}
}
