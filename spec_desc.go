package structread

import "strings"

// Description is a structure description: an ordered sequence of
// (name, reader_spec) pairs (§3). Names must be unique within a
// description; Compile rejects a duplicate at the position it is declared.
type Description []Field

// Field is one named reader in a Description.
type Field struct {
	Name   string
	Reader ReaderSpec
}

// F is a convenience constructor for a Field, used to keep Description
// literals terse.
func F(name string, reader ReaderSpec) Field {
	return Field{Name: name, Reader: reader}
}

// ReaderSpec is the pre-compilation form of a reader: one of the variants
// below, as enumerated in §4.3. The compiler lowers each to the
// corresponding op, resolving any Expr{Var} operands against the positional
// name table built so far.
type ReaderSpec interface {
	isReaderSpec()
}

// UInt declares an unsigned integer reader of the given bit width.
type UInt struct {
	Bits  int
	Order *ByteOrder
}

// Int declares a signed (two's complement) integer reader of the given bit
// width.
type Int struct {
	Bits  int
	Order *ByteOrder
}

// Float declares an IEEE-754 float reader, 32 or 64 bits.
type Float struct {
	Bits  int
	Order *ByteOrder
}

// Bytes declares a raw byte-run reader of a given length.
type Bytes struct {
	Length Expr
}

// Str declares a length-prefixed string reader, decoded under Encoding (or
// the context default when Encoding is empty).
type Str struct {
	Length   Expr
	Encoding string
}

// Uvarint declares an unsigned LEB128 varint reader.
type Uvarint struct{}

// NestedDesc declares a nested structure, compiled recursively.
type NestedDesc struct {
	Description Description
}

// ListOf declares a reader executed Count times, producing an ordered
// sequence.
type ListOf struct {
	Count   Expr
	Element ReaderSpec
}

// Match declares a reader selected by 0-based discriminant index into
// Branches (§4.5, §9).
type Match struct {
	Discriminant Expr
	Branches     []ReaderSpec
}

// PeekOf declares a reader whose stream position effect is undone after it
// runs; its captured value is still produced.
type PeekOf struct {
	Inner ReaderSpec
}

// SeekTo declares a stream repositioning; it produces no captured value.
// Mode: 0 = absolute, 1 = relative to current position, 2 = relative to end.
type SeekTo struct {
	Offset Expr
	Mode   int
}

// Pos declares a reader that captures the current stream offset.
type Pos struct{}

// Func declares a call into a user-supplied Callable with evaluated Args.
type Func struct {
	Fn   Callable
	Args []Expr
}

// GroupOf declares a positional tuple of evaluated Args (typically used to
// build one of Func's arguments).
type GroupOf struct {
	Args []Expr
}

func (UInt) isReaderSpec()       {}
func (Int) isReaderSpec()        {}
func (Float) isReaderSpec()      {}
func (Bytes) isReaderSpec()      {}
func (Str) isReaderSpec()        {}
func (Uvarint) isReaderSpec()    {}
func (NestedDesc) isReaderSpec() {}
func (ListOf) isReaderSpec()     {}
func (Match) isReaderSpec()      {}
func (PeekOf) isReaderSpec()     {}
func (SeekTo) isReaderSpec()     {}
func (Pos) isReaderSpec()        {}
func (Func) isReaderSpec()       {}
func (GroupOf) isReaderSpec()    {}

// Expr is a length/count/discriminant/offset/arg operand: a literal
// integer, a symbolic reference to an earlier-declared field (optionally
// with a dotted field path into that field's own record, e.g. "p.a"), or an
// inline reader executed in place.
type Expr struct {
	kind    exprKind
	literal int64
	varName string
	inline  ReaderSpec
}

type exprKind int

const (
	exprLiteral exprKind = iota
	exprVar
	exprInline
)

// Lit builds a literal integer Expr.
func Lit(n int64) Expr { return Expr{kind: exprLiteral, literal: n} }

// Var builds a symbolic reference Expr. name may be dotted ("p.a") to
// reach into a field captured as a nested record.
func Var(name string) Expr { return Expr{kind: exprVar, varName: name} }

// InlineExpr builds an Expr evaluated by running spec in place (used, for
// example, to Peek a length prefix that is not itself a named field).
func InlineExpr(spec ReaderSpec) Expr { return Expr{kind: exprInline, inline: spec} }

func splitPath(name string) (head string, path []string) {
	parts := strings.Split(name, ".")
	return parts[0], parts[1:]
}

// Callable is the capability-typed function reference FuncCall invokes
// (§4.3, §9's "User callables -> capability-typed function references").
// args are the evaluated arg-sources in declared order; a non-nil error is
// reported to the caller as a CallbackError.
type Callable func(args []any) (any, error)
