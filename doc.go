// Package structread is a library for decoding binary struct layouts
// described declaratively rather than via generated or reflected-upon Go
// structs.
//
// A layout is described once as a Description: an ordered sequence of named
// readers built from the ReaderSpec variants (UInt, Int, Float, Bytes, Str,
// Uvarint, NestedDesc, ListOf, Match, PeekOf, SeekTo, Pos, Func, GroupOf).
// Lengths, counts, discriminants, offsets and call arguments are themselves
// small expressions (Expr): a literal, a reference to an earlier field in
// the same description (Var, optionally dotted into a nested field such as
// "header.length"), or another reader run inline.
//
//	desc := structread.Description{
//		structread.F("length", structread.UInt{Bits: 16}),
//		structread.F("payload", structread.Bytes{Length: structread.Var("length")}),
//	}
//	rec, err := structread.ParseStruct(desc, data, nil)
//
// Compile lowers a Description into a *Program once, resolving every Var
// reference to a positional index; the resulting Program is immutable and
// safe to reuse (including concurrently) across any number of parses
// against independent streams. ParseStruct accepts either form, compiling
// lazily when given a Description.
//
// By default a parse returns a *Record: a keyed, order-preserving view of
// every non-anonymous field, with an unnamed field keyed by "" (fields used
// only to reposition the stream, such as SeekTo, never appear in the
// output). Passing Options.ReturnDict materializes the same data as a Dict,
// recursively, for callers that want map-like access instead of the
// Record's declaration-ordered view.
package structread
