package structread

import "testing"

func TestCompileResolvesPositionalReference(t *testing.T) {
	desc := Description{
		F("len", UInt{Bits: 8}),
		F("data", Bytes{Length: Var("len")}),
	}
	prog, err := Compile(desc)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	ob, ok := prog.Ops[1].(opBytes)
	if !ok {
		t.Fatalf("Ops[1] = %T; want opBytes", prog.Ops[1])
	}
	if ob.Length.kind != sourceRef || ob.Length.refIndex != 0 {
		t.Fatalf("Length source = %+v; want ref to index 0", ob.Length)
	}
}

func TestCompileUnresolvedReference(t *testing.T) {
	desc := Description{
		F("data", Bytes{Length: Var("missing")}),
	}
	_, err := Compile(desc)
	if _, ok := err.(*UnresolvedReferenceError); !ok {
		t.Fatalf("Compile with forward/unknown reference: got %T (%v); want *UnresolvedReferenceError", err, err)
	}
}

func TestCompileNoForwardReference(t *testing.T) {
	desc := Description{
		F("data", Bytes{Length: Var("len")}),
		F("len", UInt{Bits: 8}),
	}
	_, err := Compile(desc)
	if _, ok := err.(*UnresolvedReferenceError); !ok {
		t.Fatalf("Compile referencing a later field: got %T (%v); want *UnresolvedReferenceError", err, err)
	}
}

func TestCompileDuplicateFieldName(t *testing.T) {
	desc := Description{
		F("a", UInt{Bits: 8}),
		F("a", UInt{Bits: 8}),
	}
	_, err := Compile(desc)
	if _, ok := err.(*ProgramError); !ok {
		t.Fatalf("Compile with duplicate name: got %T (%v); want *ProgramError", err, err)
	}
}

func TestCompileSeekIsAnonymousEvenWhenNamed(t *testing.T) {
	desc := Description{
		F("marker", SeekTo{Offset: Lit(4), Mode: SeekAbsolute}),
		F("v", UInt{Bits: 8}),
	}
	prog, err := Compile(desc)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !isAnonymous(prog.Ops[0]) {
		t.Fatalf("Seek opcode should be anonymous regardless of field name")
	}
	// A later field cannot resolve a reference to "marker" — as a Seek it
	// was never registered, despite having a name.
	desc2 := Description{
		F("marker", SeekTo{Offset: Lit(4), Mode: SeekAbsolute}),
		F("v", Bytes{Length: Var("marker")}),
	}
	if _, err := Compile(desc2); err == nil {
		t.Fatalf("reference to a Seek-named field should not resolve")
	}
}

func TestCompileDottedReference(t *testing.T) {
	desc := Description{
		F("p", NestedDesc{Description: Description{
			F("a", UInt{Bits: 8}),
			F("b", UInt{Bits: 8}),
		}}),
		F("c", Func{
			Fn:   func(args []any) (any, error) { return args[0], nil },
			Args: []Expr{Var("p.a")},
		}),
	}
	prog, err := Compile(desc)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	fc, ok := prog.Ops[1].(opFuncCall)
	if !ok {
		t.Fatalf("Ops[1] = %T; want opFuncCall", prog.Ops[1])
	}
	src := fc.Args[0]
	if src.kind != sourceRef || src.refIndex != 0 || len(src.refPath) != 1 || src.refPath[0] != "a" {
		t.Fatalf("Args[0] = %+v; want ref(0, [\"a\"])", src)
	}
}

func TestCompileIsIdempotentOnProgram(t *testing.T) {
	desc := Description{F("a", UInt{Bits: 8})}
	prog, err := Compile(desc)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	again, err := CompileStruct(prog)
	if err != nil {
		t.Fatalf("CompileStruct(*Program): %v", err)
	}
	if again != prog {
		t.Fatalf("CompileStruct on an already-compiled Program returned a different value")
	}
}
