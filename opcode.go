package structread

// op is the discriminated instruction set emitted by the compiler and
// consumed by the interpreter (§4.3). Each concrete type below is one
// opcode variant; the compiler never emits anything else, and the
// interpreter's exec switch is exhaustive over these types.
type op interface {
	isOp()
}

// opInt reads a signed or unsigned integer of Bits bits (a positive
// multiple of 8, <= 64), using Order when set or the context default
// otherwise.
type opInt struct {
	Signed bool
	Bits   int
	Order  *ByteOrder
}

// opFloat reads an IEEE-754 float of Bits bits (32 or 64).
type opFloat struct {
	Bits  int
	Order *ByteOrder
}

// opBytes reads Length raw bytes (hex-rendered if the context's BytesAsHex
// flag is set).
type opBytes struct {
	Length source
}

// opString reads Length bytes and decodes them under Encoding (or the
// context default encoding when Encoding is empty).
type opString struct {
	Length   source
	Encoding string
}

// opVarint reads an unsigned LEB128 varint; it has no payload.
type opVarint struct{}

// opNested pushes a frame, executes Program, pops the frame, and captures
// the resulting *Record. It always captures a *Record; a positional view is
// available through Record.Tuple.
type opNested struct {
	Program *Program
}

// opList executes Element Count times against the same frame, capturing an
// ordered Tuple of the results.
type opList struct {
	Count   source
	Element op
}

// opMatch evaluates Discriminant to a non-negative integer and executes the
// branch at that index (0-based) in Branches, per the positional-indexing
// contract fixed by the design (§4.5, §9 open question).
type opMatch struct {
	Discriminant source
	Branches     []op
}

// opPeek records the stream position, executes Inner, restores the
// position, and captures Inner's value.
type opPeek struct {
	Inner op
}

// opSeek moves the stream cursor; it is the one anonymous opcode — it
// occupies a program slot but produces no captured value.
type opSeek struct {
	Offset source
	Mode   int
}

// opPos captures the current stream offset as an integer value.
type opPos struct{}

// opFuncCall evaluates each of Args in declared order and invokes Fn with
// them, capturing its return value.
type opFuncCall struct {
	Fn   Callable
	Args []source
}

// opGroup captures a positional Tuple of each of Args, evaluated in
// declared order — used to build an argument tuple for opFuncCall-like
// consumers that want several sources bundled together.
type opGroup struct {
	Args []source
}

func (opInt) isOp()      {}
func (opFloat) isOp()    {}
func (opBytes) isOp()    {}
func (opString) isOp()   {}
func (opVarint) isOp()   {}
func (opNested) isOp()   {}
func (opList) isOp()     {}
func (opMatch) isOp()    {}
func (opPeek) isOp()     {}
func (opSeek) isOp()     {}
func (opPos) isOp()      {}
func (opFuncCall) isOp() {}
func (opGroup) isOp()    {}

// Program is the compiler's output: an immutable, ordered sequence of
// opcodes with a parallel name list (§3). Position i in Ops corresponds to
// position i in Names. It is safe to share and reuse across any number of
// parses, concurrently, since it is never mutated after Compile returns it.
type Program struct {
	Ops   []op
	Names []string

	// compiled marks a value as having been produced by Compile.
	// CompileStruct returns any *Program unchanged without consulting it.
	compiled bool
}

// anonymousName is the empty name an unnamed field has in Program.Names.
// At positions produced by anonymous opcodes (currently only Seek), Compile
// records the name the field was given, if any; it is used only to
// annotate errors, is never registered as a referenceable name, and never
// reaches a Record.
const anonymousName = ""
