package parser

import (
	"github.com/verdant-robotics/cbuf/internal/lang"
	"github.com/verdant-robotics/cbuf/internal/schema"
)

// literalToScalar converts a grammar-level literal into the concrete Go
// value a default of this primitive type should hold (§4.3: "scalars, value
// type must match"). The returned value's Go type matches what the codec
// expects to see in a message field map for this primitive (see
// internal/codec).
func literalToScalar(lit *lang.Literal, prim schema.PrimitiveType, _ int, fieldName string) (any, error) {
	switch prim {
	case schema.Bool:
		if lit.Ident == nil || (*lit.Ident != "true" && *lit.Ident != "false") {
			return nil, schema.InvalidDefaultValueError{FieldName: fieldName, Reason: "expected true or false"}
		}
		return *lit.Ident == "true", nil
	case schema.String:
		if lit.Str == nil {
			return nil, schema.InvalidDefaultValueError{FieldName: fieldName, Reason: "expected string literal"}
		}
		return lang.StringValue(*lit.Str), nil
	default:
		if lit.Number == nil {
			return nil, schema.InvalidDefaultValueError{FieldName: fieldName, Reason: "expected numeric literal"}
		}
		return numericLiteral(prim, lit.Number), nil
	}
}

func numericLiteral(prim schema.PrimitiveType, n *lang.SignedNumber) any {
	v := n.Float64()
	switch prim {
	case schema.Int8:
		return int8(v)
	case schema.Uint8:
		return uint8(v)
	case schema.Int16:
		return int16(v)
	case schema.Uint16:
		return uint16(v)
	case schema.Int32:
		return int32(v)
	case schema.Uint32:
		return uint32(v)
	case schema.Int64:
		return int64(v)
	case schema.Uint64:
		return uint64(v)
	case schema.Float32:
		return float32(v)
	case schema.Float64:
		return v
	default:
		return v
	}
}
