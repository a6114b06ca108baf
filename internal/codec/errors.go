package codec

import "fmt"

// BadMagicError reports a preamble whose first 4 bytes are not Magic (§4.7).
type BadMagicError struct {
	Got uint32
}

func (e BadMagicError) Error() string {
	return fmt.Sprintf("codec: bad magic 0x%08X, want 0x%08X", e.Got, Magic)
}

func (e BadMagicError) Is(err error) bool {
	_, ok := err.(BadMagicError)
	return ok
}

// BufferTooSmallError reports a buffer shorter than the preamble, or than a
// field read would require (§8: malformed input never panics or reads past
// the end of the slice).
type BufferTooSmallError struct {
	Need, Have int
}

func (e BufferTooSmallError) Error() string {
	return fmt.Sprintf("codec: buffer too small: need %d bytes, have %d", e.Need, e.Have)
}

func (e BufferTooSmallError) Is(err error) bool {
	_, ok := err.(BufferTooSmallError)
	return ok
}

// SizeExceedsBufferError reports a preamble size field whose declared
// message length runs past the end of the supplied buffer.
type SizeExceedsBufferError struct {
	DeclaredSize, BufferLen int
}

func (e SizeExceedsBufferError) Error() string {
	return fmt.Sprintf("codec: declared size %d exceeds buffer length %d", e.DeclaredSize, e.BufferLen)
}

func (e SizeExceedsBufferError) Is(err error) bool {
	_, ok := err.(SizeExceedsBufferError)
	return ok
}

// SizeMismatchError is raised when an encoder's precomputed size does not
// match the number of bytes actually written, which signals an internal
// defect in the codec (§4.9). The decoder also returns it when the bytes
// consumed by a message body differ from the size its preamble declares
// (Written then holds the consumed length).
type SizeMismatchError struct {
	Computed, Written int
}

func (e SizeMismatchError) Error() string {
	return fmt.Sprintf("codec: computed size %d does not match bytes written %d", e.Computed, e.Written)
}

func (e SizeMismatchError) Is(err error) bool {
	_, ok := err.(SizeMismatchError)
	return ok
}

// UnsupportedTypeError reports a field whose schema.PrimitiveType tag the
// codec does not know how to encode or decode, or an operation the wire
// format forbids outright (e.g. a naked struct used as a top-level message).
type UnsupportedTypeError struct {
	Field  string
	Type   int
	Reason string
}

func (e UnsupportedTypeError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("codec: %s (field %q)", e.Reason, e.Field)
	}
	return fmt.Sprintf("codec: unsupported primitive type %d on field %q", e.Type, e.Field)
}

func (e UnsupportedTypeError) Is(err error) bool {
	_, ok := err.(UnsupportedTypeError)
	return ok
}

// UnknownMessageTypeError reports a Message.TypeName that does not resolve
// against the supplied schema.Index.
type UnknownMessageTypeError struct {
	TypeName string
}

func (e UnknownMessageTypeError) Error() string {
	return "codec: unknown message type " + e.TypeName
}

func (e UnknownMessageTypeError) Is(err error) bool {
	_, ok := err.(UnknownMessageTypeError)
	return ok
}

// ArrayBoundError reports an array field whose encoded element count
// exceeds its fixed length or compact upper bound.
type ArrayBoundError struct {
	Field         string
	Count, Bound int
}

func (e ArrayBoundError) Error() string {
	return fmt.Sprintf("codec: field %q has %d elements, exceeds bound %d", e.Field, e.Count, e.Bound)
}

func (e ArrayBoundError) Is(err error) bool {
	_, ok := err.(ArrayBoundError)
	return ok
}
