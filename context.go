package structread

// ByteOrder selects the endianness used by integer and float readers when a
// field does not specify one explicitly.
type ByteOrder int

const (
	// LittleEndian reads multi-byte integers/floats least-significant byte
	// first.
	LittleEndian ByteOrder = iota
	// BigEndian reads multi-byte integers/floats most-significant byte
	// first.
	BigEndian
)

// frame holds the positional values produced so far at one nesting level.
// Position i in values corresponds to position i in the enclosing
// Program's Ops/Names. Per the design notes (§9, "Symbolic references ->
// positional indices"), the compiler resolves every Var reference to a
// positional index at compile time, so a frame needs no runtime name map —
// only the final output Record needs the name list.
type frame struct {
	values []any
}

func newFrame() *frame {
	return &frame{}
}

// capture appends v as the value produced at the next position in this
// frame. Every opcode occupies a slot, including anonymous ones (Seek), so
// that positional indices resolved at compile time stay valid at run time.
func (f *frame) capture(v any) {
	f.values = append(f.values, v)
}

// Context is the per-parse evaluation state described in §3: an ordered
// stack of frames plus the defaults inherited by every frame. A Context is
// created fresh for each top-level parse and discarded afterward; nothing
// about it is shared between independent parses, so distinct parses on
// independent streams may run concurrently.
type Context struct {
	frames []*frame

	DefaultByteOrder  ByteOrder
	DefaultFloatOrder ByteOrder
	DefaultEncoding   string
	BytesAsHex        bool
}

// NewContext builds a fresh Context from the given Options (or defaults if
// opts is nil). Defaults are inherited by nested frames, never pushed:
// entering a Nested structure only pushes a new frame of values.
func NewContext(opts *Options) *Context {
	order := LittleEndian
	encoding := "utf-8"
	floatOrder := order
	if opts != nil {
		order = opts.Order
		floatOrder = order
		if opts.Encoding != "" {
			encoding = opts.Encoding
		}
		if opts.FloatOrder != nil {
			floatOrder = *opts.FloatOrder
		}
	}
	ctx := &Context{
		DefaultByteOrder:  order,
		DefaultFloatOrder: floatOrder,
		DefaultEncoding:   encoding,
	}
	if opts != nil {
		ctx.BytesAsHex = opts.BytesToHex
	}
	ctx.pushFrame()
	return ctx
}

// pushFrame installs a fresh, empty frame of values, saving the current
// one on the stack.
func (c *Context) pushFrame() {
	c.frames = append(c.frames, newFrame())
}

// popFrame discards the current frame, returning it so its captured values
// can be turned into a Record by the caller.
func (c *Context) popFrame() *frame {
	n := len(c.frames)
	f := c.frames[n-1]
	c.frames = c.frames[:n-1]
	return f
}

func (c *Context) top() *frame {
	return c.frames[len(c.frames)-1]
}

// capture records v as the value at the current nesting level.
func (c *Context) capture(v any) {
	c.top().capture(v)
}

// resolveIndexed resolves a pre-compiled positional reference: index into
// the current frame's values, optionally descending into the resulting
// value's fields via path (used for dotted references such as "p.a").
func (c *Context) resolveIndexed(index int, path []string) (any, error) {
	f := c.top()
	if index < 0 || index >= len(f.values) {
		return nil, &ProgramError{Reason: "positional reference out of range"}
	}
	v := f.values[index]
	for _, seg := range path {
		rec, ok := v.(*Record)
		if !ok {
			return nil, &ProgramError{Reason: "field path segment " + seg + " applied to non-record value"}
		}
		v, ok = rec.Get(seg)
		if !ok {
			return nil, &UnresolvedReferenceError{Reference: seg}
		}
	}
	return v, nil
}
