package structread

import "fmt"

// Each error kind named in the design is modeled as its own type carrying
// the failing field's name (when one is known) and the stream offset at the
// time of failure, following the same shape as ogórek's OpcodeError: a small
// struct per failure mode with its own formatted Error() string rather than
// one stringly-typed error for everything.

// UnexpectedEndError is returned when the stream is exhausted mid-read.
type UnexpectedEndError struct {
	Field  string
	Offset int
	Want   int
	Got    int
}

func (e *UnexpectedEndError) Error() string {
	return fmt.Sprintf("structread: field %q: unexpected end of stream at offset %d: wanted %d bytes, got %d", e.Field, e.Offset, e.Want, e.Got)
}

// InvalidLengthError is returned when a length/count source evaluates to a
// negative or non-integer value.
type InvalidLengthError struct {
	Field  string
	Offset int
	Value  any
}

func (e *InvalidLengthError) Error() string {
	return fmt.Sprintf("structread: field %q: invalid length/count at offset %d: %v (%T)", e.Field, e.Offset, e.Value, e.Value)
}

// UnresolvedReferenceError is returned at compile time when a symbolic
// reference names a field that was not declared earlier in the same frame,
// and at run time when a segment of a dotted reference ("p.a") is absent
// from the captured record (Field is then empty).
type UnresolvedReferenceError struct {
	Field     string
	Reference string
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("structread: field %q: unresolved reference %q", e.Field, e.Reference)
}

// NoMatchError is returned when a Match discriminant falls outside the
// branch table's range.
type NoMatchError struct {
	Field       string
	Offset      int
	Discrim     int64
	NumBranches int
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("structread: field %q: no match for discriminant %d at offset %d (%d branches)", e.Field, e.Discrim, e.Offset, e.NumBranches)
}

// DecodeError is returned when a string field fails to decode under its
// selected encoding.
type DecodeError struct {
	Field    string
	Offset   int
	Encoding string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("structread: field %q: decode error at offset %d (encoding %q): %s", e.Field, e.Offset, e.Encoding, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// CallbackError is returned when a user-supplied Callable raises an error.
type CallbackError struct {
	Field  string
	Offset int
	Err    error
}

func (e *CallbackError) Error() string {
	return fmt.Sprintf("structread: field %q: callback error at offset %d: %s", e.Field, e.Offset, e.Err)
}

func (e *CallbackError) Unwrap() error { return e.Err }

// InvalidSeekError is returned when a Seek targets a negative absolute
// position.
type InvalidSeekError struct {
	Field  string
	Offset int
	Target int
}

func (e *InvalidSeekError) Error() string {
	return fmt.Sprintf("structread: field %q: invalid seek at offset %d to %d", e.Field, e.Offset, e.Target)
}

// MalformedVarintError is returned when a varint exceeds native integer
// width.
type MalformedVarintError struct {
	Field  string
	Offset int
}

func (e *MalformedVarintError) Error() string {
	return fmt.Sprintf("structread: field %q: malformed varint at offset %d: exceeds native width", e.Field, e.Offset)
}

// ProgramError signals a malformed description or program rather than bad
// input data: a duplicate field name or unknown reader spec at compile time,
// an unsupported value passed to CompileStruct or ParseStruct, an invalid
// integer/float width or seek mode met at run time, an unknown opcode, or a
// dotted path applied to a non-record value. It fails loudly rather than
// panicking or silently misbehaving.
type ProgramError struct {
	Reason string
}

func (e *ProgramError) Error() string {
	return fmt.Sprintf("structread: malformed program: %s", e.Reason)
}
