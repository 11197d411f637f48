package structread

// source is the compiled form of a length/count/discriminant/offset/arg
// operand (§4.3's "source" operand): a literal integer, a positional
// back-reference (optionally into a nested record via a field path, for
// dotted references like "p.a"), or an inline opcode executed in place.
//
// Only one of the three forms is populated; kind says which.
type source struct {
	kind sourceKind

	literal int64

	refIndex int
	refPath  []string

	inline op
}

type sourceKind int

const (
	sourceLiteral sourceKind = iota
	sourceRef
	sourceInline
)

func litSource(v int64) source { return source{kind: sourceLiteral, literal: v} }

func refSource(index int, path []string) source {
	return source{kind: sourceRef, refIndex: index, refPath: path}
}

func inlineSource(o op) source { return source{kind: sourceInline, inline: o} }

// eval evaluates the source against the running interpreter state, returning
// the raw value (an opcode/capture value is returned as-is; callers that
// need an integer use evalInt).
func (s source) eval(in *interp, field string) (any, error) {
	switch s.kind {
	case sourceLiteral:
		return s.literal, nil
	case sourceRef:
		return in.ctx.resolveIndexed(s.refIndex, s.refPath)
	case sourceInline:
		return in.exec(s.inline, "")
	default:
		return nil, &ProgramError{Reason: "unknown source kind"}
	}
}

// evalInt evaluates the source and requires the result to be an integer, as
// required for length/count/offset/discriminant operands (§4.2). Negative
// values are accepted here; evalNonNegInt rejects them.
func (s source) evalInt(in *interp, field string) (int64, error) {
	v, err := s.eval(in, field)
	if err != nil {
		return 0, err
	}
	n, ok := asInt64(v)
	if !ok {
		return 0, &InvalidLengthError{Field: field, Offset: in.stream.Tell(), Value: v}
	}
	return n, nil
}

// evalNonNegInt is like evalInt but additionally rejects negative values,
// for length/count operands (offset/discriminant may be negative or, for
// Match, must itself be non-negative per §4.5 but is validated there).
func (s source) evalNonNegInt(in *interp, field string) (int, error) {
	n, err := s.evalInt(in, field)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, &InvalidLengthError{Field: field, Offset: in.stream.Tell(), Value: n}
	}
	return int(n), nil
}

// asInt64 attempts to view v as an int64 without coercion across kinds other
// than Go's own sized-integer family — the engine performs no type
// coercion on references (§4.2): a string or float captured earlier is
// never silently treated as a length.
func asInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case int:
		return int64(x), true
	case int32:
		return int64(x), true
	case int16:
		return int64(x), true
	case int8:
		return int64(x), true
	case uint64:
		if x > 1<<63-1 {
			return 0, false
		}
		return int64(x), true
	case uint32:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint8:
		return int64(x), true
	case uint:
		return int64(x), true
	}
	return 0, false
}
