package structread

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"math"
	"strings"

	"golang.org/x/text/encoding/ianaindex"
)

// Stream is the seekable byte cursor described in §4.1. Per the design's
// non-goal of unbounded streaming decode, the input is assumed fully
// materializable, so a Stream always operates over an in-memory byte slice
// regardless of which of {raw byte buffer, byte-view slice, buffered file
// reader} it was built from — mirroring ogórek's Decoder, which likewise
// reads its entire opcode stream through one buffered cursor rather than
// re-deriving I/O strategy per source kind.
type Stream struct {
	data []byte
	pos  int
}

// NewStream wraps a byte slice directly; the slice is not copied and must
// not be mutated while a parse using this Stream is in flight.
func NewStream(data []byte) *Stream {
	return &Stream{data: data}
}

// NewStreamFromReader materializes r fully into memory and wraps the
// result. It accepts a *bytes.Buffer, a *bufio.Reader wrapping a buffered
// file handle, or any other io.Reader.
func NewStreamFromReader(r io.Reader) (*Stream, error) {
	if buf, ok := r.(*bytes.Buffer); ok {
		return NewStream(buf.Bytes()), nil
	}
	if _, ok := r.(*bufio.Reader); !ok {
		r = bufio.NewReader(r)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewStream(data), nil
}

// Tell returns the current offset from the start of the stream.
func (s *Stream) Tell() int { return s.pos }

// Len returns the total length of the underlying data.
func (s *Stream) Len() int { return len(s.data) }

// Seek mode constants, per §4.1.
const (
	SeekAbsolute = 0
	SeekRelative = 1
	SeekFromEnd  = 2
)

// Seek moves the cursor per mode. Seeking to a negative absolute position
// fails; seeking past the end is permitted (the next Read will fail).
func (s *Stream) Seek(offset int, mode int) error {
	var target int
	switch mode {
	case SeekAbsolute:
		target = offset
	case SeekRelative:
		target = s.pos + offset
	case SeekFromEnd:
		target = len(s.data) + offset
	default:
		return &ProgramError{Reason: fmt.Sprintf("invalid seek mode %d", mode)}
	}
	if target < 0 {
		return &InvalidSeekError{Offset: s.pos, Target: target}
	}
	s.pos = target
	return nil
}

// Read consumes exactly n bytes, failing with UnexpectedEndError when fewer
// remain.
func (s *Stream) Read(n int) ([]byte, error) {
	if n < 0 || s.pos+n > len(s.data) || s.pos < 0 {
		got := len(s.data) - s.pos
		if got < 0 {
			got = 0
		}
		return nil, &UnexpectedEndError{Offset: s.pos, Want: n, Got: got}
	}
	b := s.data[s.pos : s.pos+n]
	s.pos += n
	return b, nil
}

// Peek returns the next n bytes without advancing the cursor.
func (s *Stream) Peek(n int) ([]byte, error) {
	start := s.pos
	b, err := s.Read(n)
	s.pos = start
	return b, err
}

// ReadByte reads a single byte, advancing the cursor by one.
func (s *Stream) ReadByte() (byte, error) {
	b, err := s.Read(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadUint reads an unsigned integer of bits width (a positive multiple of
// 8, <= 64) under order.
func (s *Stream) ReadUint(bits int, order ByteOrder) (uint64, error) {
	if bits <= 0 || bits%8 != 0 || bits > 64 {
		return 0, &ProgramError{Reason: fmt.Sprintf("invalid integer width %d", bits)}
	}
	n := bits / 8
	b, err := s.Read(n)
	if err != nil {
		return 0, err
	}
	var buf [8]byte
	if order == BigEndian {
		copy(buf[8-n:], b)
		return binary.BigEndian.Uint64(buf[:]), nil
	}
	copy(buf[:n], b)
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// ReadInt reads a two's-complement signed integer of bits width under
// order.
func (s *Stream) ReadInt(bits int, order ByteOrder) (int64, error) {
	u, err := s.ReadUint(bits, order)
	if err != nil {
		return 0, err
	}
	if bits == 64 {
		return int64(u), nil
	}
	signBit := uint64(1) << (bits - 1)
	if u&signBit != 0 {
		u -= uint64(1) << bits
	}
	return int64(u), nil
}

// ReadFloat reads an IEEE-754 float of bits width (32 or 64) under order.
func (s *Stream) ReadFloat(bits int, order ByteOrder) (float64, error) {
	switch bits {
	case 32:
		u, err := s.ReadUint(32, order)
		if err != nil {
			return 0, err
		}
		return float64(math.Float32frombits(uint32(u))), nil
	case 64:
		u, err := s.ReadUint(64, order)
		if err != nil {
			return 0, err
		}
		return math.Float64frombits(u), nil
	default:
		return 0, &ProgramError{Reason: fmt.Sprintf("invalid float width %d", bits)}
	}
}

// ReadRawBytes reads n raw bytes, hex-encoding them as a lowercase string
// when hexEncode is set (the BytesAsHex context flag).
func (s *Stream) ReadRawBytes(n int, hexEncode bool) (any, error) {
	b, err := s.Read(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(b))
	copy(out, b)
	if hexEncode {
		return hex.EncodeToString(out), nil
	}
	return out, nil
}

// ReadVarint reads an unsigned LEB128 varint: bytes are consumed until one
// with the top bit clear, low 7 bits of each accumulated little-endian.
// Overflow beyond 64 bits is fatal (MalformedVarintError).
func (s *Stream) ReadVarint() (uint64, error) {
	var result uint64
	var shift uint
	for {
		b, err := s.ReadByte()
		if err != nil {
			return 0, err
		}
		if shift >= 64 || (shift == 63 && b&0x7f > 1) {
			return 0, &MalformedVarintError{Offset: s.pos}
		}
		result |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
	}
}

// DecodeString decodes data under the named encoding (an IANA name such as
// "utf-8", "utf-16le", "iso-8859-1", "windows-1252"). Resolution goes
// through golang.org/x/text/encoding/ianaindex rather than a hand-rolled
// codec table — the pack shows this is the idiomatic way to do it
// (seehuhn-go-pdf leans on golang.org/x/text for exactly this kind of
// content-stream text decoding instead of reimplementing codecs).
func DecodeString(data []byte, label string) (string, error) {
	norm := strings.ToLower(strings.TrimSpace(label))
	if norm == "" || norm == "utf-8" || norm == "utf8" {
		return string(data), nil
	}
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil || enc == nil {
		return "", fmt.Errorf("unknown encoding %q", label)
	}
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}
