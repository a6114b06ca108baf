package codec

import "encoding/binary"

// decodeShortString reads a fixed 16-byte NUL-padded string slot (§4.5).
func decodeShortString(buf []byte, offset int) (string, int, error) {
	if offset+shortStringSize > len(buf) {
		return "", offset, BufferTooSmallError{Need: offset + shortStringSize, Have: len(buf)}
	}
	raw := buf[offset : offset+shortStringSize]
	n := 0
	for n < len(raw) && raw[n] != 0 {
		n++
	}
	return string(raw[:n]), offset + shortStringSize, nil
}

// encodeShortString writes s into a fixed 16-byte NUL-padded slot (§4.5,
// §8 Boundaries), truncating to the 15 usable bytes ahead of the terminator
// when it doesn't fit rather than rejecting it.
func encodeShortString(buf []byte, offset int, s string) (int, error) {
	if offset+shortStringSize > len(buf) {
		return offset, BufferTooSmallError{Need: offset + shortStringSize, Have: len(buf)}
	}
	if len(s) > shortStringSize-1 {
		s = s[:shortStringSize-1]
	}
	slot := buf[offset : offset+shortStringSize]
	for i := range slot {
		slot[i] = 0
	}
	copy(slot, s)
	return offset + shortStringSize, nil
}

// decodeString reads a 4-byte length prefix followed by that many raw bytes.
func decodeString(buf []byte, offset int) (string, int, error) {
	if offset+stringLengthPrefixSize > len(buf) {
		return "", offset, BufferTooSmallError{Need: offset + stringLengthPrefixSize, Have: len(buf)}
	}
	n := int(binary.LittleEndian.Uint32(buf[offset:]))
	offset += stringLengthPrefixSize
	if offset+n > len(buf) {
		return "", offset, BufferTooSmallError{Need: offset + n, Have: len(buf)}
	}
	s := string(buf[offset : offset+n])
	return s, offset + n, nil
}

// encodeString writes s as a 4-byte length prefix followed by its bytes.
func encodeString(buf []byte, offset int, s string) int {
	binary.LittleEndian.PutUint32(buf[offset:], uint32(len(s)))
	offset += stringLengthPrefixSize
	copy(buf[offset:], s)
	return offset + len(s)
}
