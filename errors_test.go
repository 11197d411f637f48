package structread

import (
	"errors"
	"testing"
)

func TestDecodeErrorUnwraps(t *testing.T) {
	inner := errors.New("bad byte sequence")
	err := &DecodeError{Field: "s", Offset: 3, Encoding: "shift-jis", Err: inner}
	if !errors.Is(err, inner) {
		t.Fatalf("errors.Is(DecodeError, inner) = false; want true")
	}
	if err.Error() == "" {
		t.Fatalf("DecodeError.Error() is empty")
	}
}

func TestCallbackErrorUnwraps(t *testing.T) {
	inner := errors.New("boom")
	err := &CallbackError{Field: "c", Offset: 0, Err: inner}
	if !errors.Is(err, inner) {
		t.Fatalf("errors.Is(CallbackError, inner) = false; want true")
	}
}

func TestCallbackErrorPropagatesFromFunc(t *testing.T) {
	failing := func(args []any) (any, error) {
		return nil, errors.New("callback failed")
	}
	desc := Description{
		F("c", Func{Fn: failing, Args: nil}),
	}
	_, err := ParseStruct(desc, []byte{}, nil)
	var cbErr *CallbackError
	if !errors.As(err, &cbErr) {
		t.Fatalf("got %T (%v); want *CallbackError", err, err)
	}
}

func TestUnexpectedEndErrorCarriesFieldName(t *testing.T) {
	desc := Description{F("a", UInt{Bits: 32})}
	_, err := ParseStruct(desc, []byte{0x01}, nil)
	var ueErr *UnexpectedEndError
	if !errors.As(err, &ueErr) {
		t.Fatalf("got %T (%v); want *UnexpectedEndError", err, err)
	}
	if ueErr.Field != "a" {
		t.Fatalf("Field = %q; want \"a\"", ueErr.Field)
	}
}
