package codec_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/verdant-robotics/cbuf/internal/codec"
	"github.com/verdant-robotics/cbuf/internal/parser"
	"github.com/verdant-robotics/cbuf/internal/schema"
)

func buildIndex(t *testing.T, source string) *schema.Index {
	t.Helper()
	entities, err := parser.Parse(source)
	require.NoError(t, err)
	index, err := schema.BuildIndex(entities)
	require.NoError(t, err)
	return index
}

// Scenario A: struct a { string b; bool c; } with {b:"Hello, world!", c:true}
// encodes to 24 + 4 + 13 + 1 = 42 bytes, and a post-edited sizeAndVariant
// word round-trips through decode.
func TestScenarioASimpleStruct(t *testing.T) {
	index := buildIndex(t, "struct a {\nstring b;\nbool c;\n}\n")
	entity, ok := index.ByName("a")
	require.True(t, ok)

	msg := &codec.Message{TypeName: "a", Fields: map[string]any{"b": "Hello, world!", "c": true}}
	buf, err := codec.SerializeMessage(index, msg)
	require.NoError(t, err)
	require.Equal(t, 42, len(buf))

	size, err := codec.SerializedMessageSize(index, msg)
	require.NoError(t, err)
	require.Equal(t, 42, size)

	decoded, err := codec.DeserializeMessage(index, buf, 0)
	require.NoError(t, err)
	require.Equal(t, entity.HashValue, decoded.HashValue)
	require.Equal(t, "Hello, world!", decoded.Fields["b"])
	require.Equal(t, true, decoded.Fields["c"])

	binary.LittleEndian.PutUint32(buf[4:8], uint32(9)<<27|42)
	decoded, err = codec.DeserializeMessage(index, buf, 0)
	require.NoError(t, err)
	require.Equal(t, 42, decoded.Size)
	require.Equal(t, 9, decoded.Variant)
}

// Scenario B: a naked nested struct writes the outer preamble once, then
// the nested text directly with no inner preamble.
func TestScenarioBNestedNaked(t *testing.T) {
	index := buildIndex(t, "struct nested @naked {\nstring text;\n}\nstruct outer {\nnested n;\n}\n")
	msg := &codec.Message{TypeName: "outer", Fields: map[string]any{
		"n": map[string]any{"text": "hi"},
	}}
	buf, err := codec.SerializeMessage(index, msg)
	require.NoError(t, err)
	// header(24) + string-length-prefix(4) + "hi"(2), no nested preamble.
	require.Equal(t, 24+4+2, len(buf))

	decoded, err := codec.DeserializeMessage(index, buf, 0)
	require.NoError(t, err)
	n, ok := decoded.Fields["n"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "hi", n["text"])
}

// Scenario C: a non-naked nested struct gets its own 24-byte preamble
// (timestamp 0.0, its own hash) inline in the payload.
func TestScenarioCNestedNonNaked(t *testing.T) {
	index := buildIndex(t, "struct nested {\nstring text;\n}\nstruct outer {\nnested n;\n}\n")
	nested, ok := index.ByName("nested")
	require.True(t, ok)

	msg := &codec.Message{TypeName: "outer", Fields: map[string]any{
		"n": map[string]any{"text": "hi"},
	}}
	buf, err := codec.SerializeMessage(index, msg)
	require.NoError(t, err)
	require.Equal(t, 24+24+4+2, len(buf))

	nestedHash := binary.LittleEndian.Uint64(buf[24+8 : 24+16])
	require.Equal(t, nested.HashValue, nestedHash)
	nestedTimestamp := binary.LittleEndian.Uint64(buf[24+16 : 24+24])
	require.Equal(t, uint64(0), nestedTimestamp)

	decoded, err := codec.DeserializeMessage(index, buf, 0)
	require.NoError(t, err)
	n, ok := decoded.Fields["n"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "hi", n["text"])
}

// Scenario D: a fixed short_string array has no count prefix and each
// element fills exactly 16 null-padded bytes.
func TestScenarioDFixedShortStringArray(t *testing.T) {
	index := buildIndex(t, "struct a {\nshort_string names[2];\n}\n")
	msg := &codec.Message{TypeName: "a", Fields: map[string]any{"names": []string{"ann", "bo"}}}
	buf, err := codec.SerializeMessage(index, msg)
	require.NoError(t, err)
	require.Equal(t, 24+16*2, len(buf))

	decoded, err := codec.DeserializeMessage(index, buf, 0)
	require.NoError(t, err)
	require.Equal(t, []string{"ann", "bo"}, decoded.Fields["names"])
}

func TestRoundTripDefaultsApplied(t *testing.T) {
	index := buildIndex(t, "struct a {\nu32 count = 7;\n}\n")
	msg := &codec.Message{TypeName: "a", Fields: map[string]any{}}
	buf, err := codec.SerializeMessage(index, msg)
	require.NoError(t, err)

	decoded, err := codec.DeserializeMessage(index, buf, 0)
	require.NoError(t, err)
	require.Equal(t, uint32(7), decoded.Fields["count"])
}

func TestBoolToleratedWhereNumericExpected(t *testing.T) {
	index := buildIndex(t, "struct a {\nu8 flag;\nf64 ratio;\n}\n")
	msg := &codec.Message{TypeName: "a", Fields: map[string]any{"flag": true, "ratio": false}}
	buf, err := codec.SerializeMessage(index, msg)
	require.NoError(t, err)

	decoded, err := codec.DeserializeMessage(index, buf, 0)
	require.NoError(t, err)
	require.Equal(t, uint8(1), decoded.Fields["flag"])
	require.Equal(t, float64(0), decoded.Fields["ratio"])
}

func TestBoolToleratedInNumericArray(t *testing.T) {
	index := buildIndex(t, "struct a {\nu32 flags[3];\n}\n")
	msg := &codec.Message{TypeName: "a", Fields: map[string]any{"flags": []any{true, false, true}}}
	buf, err := codec.SerializeMessage(index, msg)
	require.NoError(t, err)

	decoded, err := codec.DeserializeMessage(index, buf, 0)
	require.NoError(t, err)
	require.Equal(t, []uint32{1, 0, 1}, decoded.Fields["flags"])
}

func TestRoundTripFixedArray(t *testing.T) {
	index := buildIndex(t, "struct a {\nf32 scores[3];\n}\n")
	msg := &codec.Message{TypeName: "a", Fields: map[string]any{"scores": []float32{1, 2, 3}}}
	buf, err := codec.SerializeMessage(index, msg)
	require.NoError(t, err)
	require.Equal(t, codec.HeaderSize+4*3, len(buf))

	decoded, err := codec.DeserializeMessage(index, buf, 0)
	require.NoError(t, err)
	require.Equal(t, []float32{1, 2, 3}, decoded.Fields["scores"])
}

func TestRoundTripBoundedArray(t *testing.T) {
	index := buildIndex(t, "struct a {\nu8 tags[8] @compact;\n}\n")
	msg := &codec.Message{TypeName: "a", Fields: map[string]any{"tags": []uint8{1, 2, 3}}}
	buf, err := codec.SerializeMessage(index, msg)
	require.NoError(t, err)
	require.Equal(t, codec.HeaderSize+4+3, len(buf))

	decoded, err := codec.DeserializeMessage(index, buf, 0)
	require.NoError(t, err)
	require.Equal(t, []uint8{1, 2, 3}, decoded.Fields["tags"])
}

func TestRoundTripBoundedArrayRejectsOverflow(t *testing.T) {
	index := buildIndex(t, "struct a {\nu8 tags[2] @compact;\n}\n")
	msg := &codec.Message{TypeName: "a", Fields: map[string]any{"tags": []uint8{1, 2, 3}}}
	_, err := codec.SerializeMessage(index, msg)
	require.ErrorIs(t, err, codec.ArrayBoundError{})
}

func TestRoundTripUnboundedArray(t *testing.T) {
	index := buildIndex(t, "struct a {\nu16 ids[];\n}\n")
	msg := &codec.Message{TypeName: "a", Fields: map[string]any{"ids": []uint16{10, 20, 30, 40}}}
	buf, err := codec.SerializeMessage(index, msg)
	require.NoError(t, err)

	decoded, err := codec.DeserializeMessage(index, buf, 0)
	require.NoError(t, err)
	require.Equal(t, []uint16{10, 20, 30, 40}, decoded.Fields["ids"])
}

func TestRoundTripStrings(t *testing.T) {
	index := buildIndex(t, "struct a {\nstring name;\nshort_string code;\n}\n")
	msg := &codec.Message{TypeName: "a", Fields: map[string]any{"name": "hello world", "code": "abc"}}
	buf, err := codec.SerializeMessage(index, msg)
	require.NoError(t, err)

	decoded, err := codec.DeserializeMessage(index, buf, 0)
	require.NoError(t, err)
	require.Equal(t, "hello world", decoded.Fields["name"])
	require.Equal(t, "abc", decoded.Fields["code"])
}

func TestShortStringTruncatesOversizedInput(t *testing.T) {
	index := buildIndex(t, "struct a {\nshort_string code;\n}\n")
	msg := &codec.Message{TypeName: "a", Fields: map[string]any{"code": "this string is far too long to fit"}}
	buf, err := codec.SerializeMessage(index, msg)
	require.NoError(t, err)
	got, err := codec.DeserializeMessage(index, buf, 0)
	require.NoError(t, err)
	require.Equal(t, "this string is ", got.Fields["code"])
}

func TestArrayOfStructsRoundTrip(t *testing.T) {
	index := buildIndex(t, "struct Inner {\nu32 z;\n}\nstruct Outer {\nInner items[2];\n}\n")
	msg := &codec.Message{TypeName: "Outer", Fields: map[string]any{
		"items": []map[string]any{
			{"z": uint32(1)},
			{"z": uint32(2)},
		},
	}}
	buf, err := codec.SerializeMessage(index, msg)
	require.NoError(t, err)

	decoded, err := codec.DeserializeMessage(index, buf, 0)
	require.NoError(t, err)
	items, ok := decoded.Fields["items"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, items, 2)
	require.Equal(t, uint32(1), items[0]["z"])
	require.Equal(t, uint32(2), items[1]["z"])
}

func TestDeserializeBadMagic(t *testing.T) {
	index := buildIndex(t, "struct a {\nbool b;\n}\n")
	buf := make([]byte, codec.HeaderSize)
	_, err := codec.DeserializeMessage(index, buf, 0)
	require.ErrorIs(t, err, codec.BadMagicError{})
}

func TestDeserializeBufferTooSmall(t *testing.T) {
	index := buildIndex(t, "struct a {\nbool b;\n}\n")
	_, err := codec.DeserializeMessage(index, []byte{1, 2, 3}, 0)
	require.ErrorIs(t, err, codec.BufferTooSmallError{})
}

func TestDeserializeUnknownHash(t *testing.T) {
	index := buildIndex(t, "struct a {\nbool b;\n}\n")
	msg := &codec.Message{TypeName: "a", Fields: map[string]any{"b": true}}
	buf, err := codec.SerializeMessage(index, msg)
	require.NoError(t, err)

	// Corrupt the hash field (bytes 8-16) so no struct in the index matches.
	for i := 8; i < 16; i++ {
		buf[i] = 0xFF
	}
	_, err = codec.DeserializeMessage(index, buf, 0)
	require.ErrorIs(t, err, schema.HashNotFoundError{})
}

func TestDeserializeAtOffset(t *testing.T) {
	index := buildIndex(t, "struct a {\nbool b;\n}\n")
	msg := &codec.Message{TypeName: "a", Fields: map[string]any{"b": true}}
	buf, err := codec.SerializeMessage(index, msg)
	require.NoError(t, err)

	padded := append([]byte{0xAA, 0xAA, 0xAA}, buf...)
	decoded, err := codec.DeserializeMessage(index, padded, 3)
	require.NoError(t, err)
	require.Equal(t, true, decoded.Fields["b"])
}

func TestNakedStructRejectedAsTopLevelMessage(t *testing.T) {
	index := buildIndex(t, "struct a @naked {\nbool b;\n}\n")
	msg := &codec.Message{TypeName: "a", Fields: map[string]any{"b": true}}
	_, err := codec.SerializeMessage(index, msg)
	require.ErrorIs(t, err, codec.UnsupportedTypeError{})
}

func TestUnknownMessageType(t *testing.T) {
	index := buildIndex(t, "struct a {\nbool b;\n}\n")
	msg := &codec.Message{TypeName: "does_not_exist", Fields: map[string]any{}}
	_, err := codec.SerializeMessage(index, msg)
	require.ErrorIs(t, err, codec.UnknownMessageTypeError{})
}

func TestMetadataHashRecognizedEvenWhenUndeclared(t *testing.T) {
	index := buildIndex(t, "struct a {\nbool b;\n}\n")
	entity, ok := index.ByHash(schema.MetadataHash)
	require.True(t, ok)
	require.Equal(t, schema.MetadataQualifiedName, entity.QualifiedName)
}

func TestMagicByteOrder(t *testing.T) {
	index := buildIndex(t, "struct a {\nbool b;\n}\n")
	msg := &codec.Message{TypeName: "a", Fields: map[string]any{"b": true}}
	buf, err := codec.SerializeMessage(index, msg)
	require.NoError(t, err)
	require.Equal(t, []byte{0x54, 0x4E, 0x44, 0x56}, buf[0:4])
}

func TestTypedArrayMisalignedOffset(t *testing.T) {
	index := buildIndex(t, "struct a {\nbool flag;\nf32 v[2];\n}\n")
	msg := &codec.Message{TypeName: "a", Fields: map[string]any{
		"flag": true,
		"v":    []float32{1.5, -2.5},
	}}
	buf, err := codec.SerializeMessage(index, msg)
	require.NoError(t, err)

	decoded, err := codec.DeserializeMessage(index, buf, 0)
	require.NoError(t, err)
	require.Equal(t, []float32{1.5, -2.5}, decoded.Fields["v"])
}
