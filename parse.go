package structread

import (
	"bytes"
	"fmt"
	"io"
)

// Options configures a single parse (§6). A nil *Options is equivalent to
// the zero value: little-endian integers and floats, UTF-8 strings, raw
// []byte results, and a keyed Record as output.
type Options struct {
	// ReturnDict makes ParseStruct materialize its result (and every Nested
	// result) as a Dict instead of leaving it as a *Record.
	ReturnDict bool

	// Order is the default byte order for integer reads that don't specify
	// their own.
	Order ByteOrder

	// FloatOrder overrides Order for float reads only. Nil means "use
	// Order".
	FloatOrder *ByteOrder

	// Encoding is the default IANA encoding name for string reads that
	// don't specify their own. Empty means "utf-8".
	Encoding string

	// BytesToHex renders raw byte-run reads as lowercase hex strings
	// instead of []byte.
	BytesToHex bool
}

// CompileStruct lowers a Description into a *Program. If passed an
// already-compiled *Program, it is returned unchanged (§4.4 idempotence) —
// this lets callers pass either form to ParseStruct without having to know
// which one they're holding.
func CompileStruct(descOrProgram any) (*Program, error) {
	switch v := descOrProgram.(type) {
	case *Program:
		return v, nil
	case Description:
		return Compile(v)
	default:
		return nil, &ProgramError{Reason: fmt.Sprintf("cannot compile value of type %T", descOrProgram)}
	}
}

// ParseStruct is the public entry point (§6): it accepts a Description or
// an already-compiled *Program, and data as a []byte, a *bytes.Buffer, a
// *Stream, or any io.Reader, executes the program against it under opts
// (nil for defaults), and returns the result.
//
// The returned value is a *Record when opts.ReturnDict is false (the
// default), or a Dict when it is true. Either way, nested structures are
// materialized consistently with the top level.
func ParseStruct(descOrProgram any, data any, opts *Options) (any, error) {
	prog, err := CompileStruct(descOrProgram)
	if err != nil {
		return nil, err
	}

	stream, err := toStream(data)
	if err != nil {
		return nil, err
	}

	ctx := NewContext(opts)
	rec, err := Execute(prog, stream, ctx)
	if err != nil {
		return nil, err
	}

	if opts != nil && opts.ReturnDict {
		return toDict(rec), nil
	}
	return rec, nil
}

// toDict recursively converts a *Record tree into Dicts, so ReturnDict
// applies uniformly to nested structures rather than only the top level.
func toDict(rec *Record) Dict {
	d := newDict(len(rec.names))
	for i, n := range rec.names {
		v := rec.values[i]
		switch x := v.(type) {
		case *Record:
			v = toDict(x)
		case Tuple:
			v = convertTuple(x)
		}
		d.m.Set(n, v)
	}
	return d
}

// convertTuple applies the same *Record -> Dict conversion to each element
// of a Tuple, so a List of Nested structures comes out consistent with a
// bare Nested field under ReturnDict.
func convertTuple(t Tuple) Tuple {
	out := make(Tuple, len(t))
	for i, v := range t {
		switch x := v.(type) {
		case *Record:
			out[i] = toDict(x)
		case Tuple:
			out[i] = convertTuple(x)
		default:
			out[i] = v
		}
	}
	return out
}

// toStream adapts the accepted input shapes to a *Stream without copying
// when it can be avoided.
func toStream(data any) (*Stream, error) {
	switch v := data.(type) {
	case *Stream:
		return v, nil
	case []byte:
		return NewStream(v), nil
	case *bytes.Buffer:
		return NewStream(v.Bytes()), nil
	case io.Reader:
		return NewStreamFromReader(v)
	default:
		return nil, &ProgramError{Reason: fmt.Sprintf("cannot parse from value of type %T", data)}
	}
}
