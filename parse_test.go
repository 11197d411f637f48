package structread

import (
	"bytes"
	"testing"
)

func TestParseStructReturnDict(t *testing.T) {
	desc := Description{
		F("a", UInt{Bits: 8}),
		F("p", NestedDesc{Description: Description{
			F("x", UInt{Bits: 8}),
		}}),
	}
	v, err := ParseStruct(desc, []byte{0x01, 0x02}, &Options{ReturnDict: true})
	if err != nil {
		t.Fatalf("ParseStruct: %v", err)
	}
	d, ok := v.(Dict)
	if !ok {
		t.Fatalf("ParseStruct with ReturnDict returned %T; want Dict", v)
	}
	a, ok := d.Get("a")
	if !ok || a != uint64(1) {
		t.Fatalf("a = %v, %v; want 1, true", a, ok)
	}
	p, ok := d.Get("p")
	if !ok {
		t.Fatalf("p missing from dict")
	}
	pd, ok := p.(Dict)
	if !ok {
		t.Fatalf("nested p = %T; want Dict (ReturnDict should recurse)", p)
	}
	x, ok := pd.Get("x")
	if !ok || x != uint64(2) {
		t.Fatalf("p.x = %v, %v; want 2, true", x, ok)
	}
}

func TestParseStructAcceptsCompiledProgram(t *testing.T) {
	desc := Description{F("a", UInt{Bits: 8})}
	prog, err := Compile(desc)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	v, err := ParseStruct(prog, []byte{0x2A}, nil)
	if err != nil {
		t.Fatalf("ParseStruct(*Program): %v", err)
	}
	rec := v.(*Record)
	a, _ := rec.Get("a")
	if a != uint64(0x2A) {
		t.Fatalf("a = %v; want 0x2A", a)
	}
}

func TestParseStructAcceptsBytesBufferAndStream(t *testing.T) {
	desc := Description{F("a", UInt{Bits: 8})}

	if _, err := ParseStruct(desc, bytes.NewBufferString("\x01"), nil); err != nil {
		t.Fatalf("ParseStruct(*bytes.Buffer): %v", err)
	}
	if _, err := ParseStruct(desc, NewStream([]byte{0x01}), nil); err != nil {
		t.Fatalf("ParseStruct(*Stream): %v", err)
	}
}

func TestParseStructBigEndianOption(t *testing.T) {
	desc := Description{F("a", UInt{Bits: 16})}
	v, err := ParseStruct(desc, []byte{0x01, 0x00}, &Options{Order: BigEndian})
	if err != nil {
		t.Fatalf("ParseStruct: %v", err)
	}
	a, _ := v.(*Record).Get("a")
	if a != uint64(0x0100) {
		t.Fatalf("a = %#x; want 0x0100", a)
	}
}

func TestParseStructBytesToHexOption(t *testing.T) {
	desc := Description{F("data", Bytes{Length: Lit(2)})}
	v, err := ParseStruct(desc, []byte{0xDE, 0xAD}, &Options{BytesToHex: true})
	if err != nil {
		t.Fatalf("ParseStruct: %v", err)
	}
	data, _ := v.(*Record).Get("data")
	if data != "dead" {
		t.Fatalf("data = %v; want \"dead\"", data)
	}
}

func TestParseStructUnknownInputType(t *testing.T) {
	desc := Description{F("a", UInt{Bits: 8})}
	_, err := ParseStruct(desc, 42, nil)
	if _, ok := err.(*ProgramError); !ok {
		t.Fatalf("ParseStruct with unsupported data type: got %T; want *ProgramError", err)
	}
}
