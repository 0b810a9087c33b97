package binary

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"unicode/utf8"
)

// ErrInvalidUTF8 is returned when string bytes are not valid UTF-8.
var ErrInvalidUTF8 = errors.New("invalid UTF-8 in string")

// Reader is a seekable cursor over an owned byte buffer with fixed-width
// little-endian read methods. Every read advances the position; a read
// that would run past the end of the buffer fails with a positioned error
// wrapping io.ErrUnexpectedEOF.
type Reader struct {
	data []byte
	pos  int
}

// NewReader creates a Reader positioned at offset 0 of data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Position returns the current byte position.
func (r *Reader) Position() int {
	return r.pos
}

// Len returns the total length of the underlying buffer.
func (r *Reader) Len() int {
	return len(r.data)
}

// Seek moves the cursor to an absolute position.
func (r *Reader) Seek(pos int) error {
	if pos < 0 || pos > len(r.data) {
		return &ParseError{
			Op:       "seek",
			Position: pos,
			Err:      fmt.Errorf("position out of range [0, %d]", len(r.data)),
		}
	}
	r.pos = pos
	return nil
}

// ReadByte reads a single byte and advances the position.
func (r *Reader) ReadByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, r.truncated("read byte", 1)
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// ReadBytes reads exactly n bytes. The returned slice is a copy; the
// caller owns it.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 || r.pos+n > len(r.data) {
		return nil, r.truncated("read bytes", n)
	}
	buf := make([]byte, n)
	copy(buf, r.data[r.pos:r.pos+n])
	r.pos += n
	return buf, nil
}

// ReadI8 reads a signed byte.
func (r *Reader) ReadI8() (int8, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, err
	}
	return int8(b), nil
}

// ReadU16LE reads a little-endian uint16.
func (r *Reader) ReadU16LE() (uint16, error) {
	if r.pos+2 > len(r.data) {
		return 0, r.truncated("read u16", 2)
	}
	v := binary.LittleEndian.Uint16(r.data[r.pos:])
	r.pos += 2
	return v, nil
}

// ReadI16LE reads a little-endian int16.
func (r *Reader) ReadI16LE() (int16, error) {
	v, err := r.ReadU16LE()
	return int16(v), err
}

// ReadU32LE reads a little-endian uint32.
func (r *Reader) ReadU32LE() (uint32, error) {
	if r.pos+4 > len(r.data) {
		return 0, r.truncated("read u32", 4)
	}
	v := binary.LittleEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v, nil
}

// ReadI32LE reads a little-endian int32.
func (r *Reader) ReadI32LE() (int32, error) {
	v, err := r.ReadU32LE()
	return int32(v), err
}

// ReadU64LE reads a little-endian uint64.
func (r *Reader) ReadU64LE() (uint64, error) {
	if r.pos+8 > len(r.data) {
		return 0, r.truncated("read u64", 8)
	}
	v := binary.LittleEndian.Uint64(r.data[r.pos:])
	r.pos += 8
	return v, nil
}

// ReadF32LE reads a little-endian IEEE-754 32-bit float.
func (r *Reader) ReadF32LE() (float32, error) {
	bits, err := r.ReadU32LE()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(bits), nil
}

// ReadCString reads bytes up to (and excluding) a NUL terminator and
// returns them as a validated UTF-8 string. The cursor is left past the
// terminator.
func (r *Reader) ReadCString() (string, error) {
	start := r.pos
	for {
		b, err := r.ReadByte()
		if err != nil {
			return "", err
		}
		if b == 0 {
			break
		}
	}
	data := r.data[start : r.pos-1]
	if !utf8.Valid(data) {
		return "", &ParseError{Op: "read string", Position: start, Err: ErrInvalidUTF8}
	}
	return string(data), nil
}

func (r *Reader) truncated(op string, n int) error {
	return &ParseError{
		Op:       op,
		Position: r.pos,
		Err:      fmt.Errorf("need %d bytes, have %d: %w", n, len(r.data)-r.pos, io.ErrUnexpectedEOF),
	}
}

// ParseError records a failed read with the operation attempted and the
// byte position where it happened.
type ParseError struct {
	Err      error
	Op       string
	Position int
}

func (e *ParseError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("param: %s at position %d: %v", e.Op, e.Position, e.Err)
	}
	return fmt.Sprintf("param: at position %d: %v", e.Position, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// WrapError creates a ParseError at the current position.
func (r *Reader) WrapError(op string, err error) error {
	return &ParseError{Position: r.pos, Op: op, Err: err}
}
