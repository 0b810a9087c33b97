package binary

import (
	"errors"
	"io"
	"testing"
)

func TestReaderPositionTracking(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03}
	r := NewReader(data)

	for i, want := range data {
		if r.Position() != i {
			t.Errorf("position before read %d: got %d, want %d", i, r.Position(), i)
		}
		b, err := r.ReadByte()
		if err != nil {
			t.Fatalf("ReadByte %d: %v", i, err)
		}
		if b != want {
			t.Errorf("ReadByte %d: got 0x%02x, want 0x%02x", i, b, want)
		}
	}

	_, err := r.ReadByte()
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected ErrUnexpectedEOF, got %v", err)
	}
}

func TestReaderSeek(t *testing.T) {
	r := NewReader([]byte{0x10, 0x20, 0x30, 0x40})

	if err := r.Seek(2); err != nil {
		t.Fatalf("Seek(2): %v", err)
	}
	b, err := r.ReadByte()
	if err != nil {
		t.Fatalf("ReadByte: %v", err)
	}
	if b != 0x30 {
		t.Errorf("got 0x%02x, want 0x30", b)
	}

	// Seeking backwards re-reads.
	if err := r.Seek(0); err != nil {
		t.Fatalf("Seek(0): %v", err)
	}
	b, _ = r.ReadByte()
	if b != 0x10 {
		t.Errorf("got 0x%02x, want 0x10", b)
	}

	if err := r.Seek(5); err == nil {
		t.Error("expected error seeking past end")
	}
	if err := r.Seek(-1); err == nil {
		t.Error("expected error seeking before start")
	}
	// Seeking to the exact end is allowed; the next read fails.
	if err := r.Seek(4); err != nil {
		t.Errorf("Seek(len): %v", err)
	}
}

func TestReaderFixedWidthReads(t *testing.T) {
	data := []byte{
		0x39, 0x30, // u16 12345
		0xfe, 0xff, // i16 -2
		0x00, 0x5e, 0xd0, 0xb2, // u32 3000000000
		0xdb, 0x0f, 0x49, 0x40, // f32 pi
		0xef, 0xcd, 0xab, 0x89, 0x67, 0x45, 0x23, 0x01, // u64
	}
	r := NewReader(data)

	if v, err := r.ReadU16LE(); err != nil || v != 12345 {
		t.Errorf("ReadU16LE: got %d, %v", v, err)
	}
	if v, err := r.ReadI16LE(); err != nil || v != -2 {
		t.Errorf("ReadI16LE: got %d, %v", v, err)
	}
	if v, err := r.ReadU32LE(); err != nil || v != 3000000000 {
		t.Errorf("ReadU32LE: got %d, %v", v, err)
	}
	if v, err := r.ReadF32LE(); err != nil || v != 3.14159274 {
		t.Errorf("ReadF32LE: got %v, %v", v, err)
	}
	if v, err := r.ReadU64LE(); err != nil || v != 0x0123456789abcdef {
		t.Errorf("ReadU64LE: got 0x%x, %v", v, err)
	}
	if r.Position() != len(data) {
		t.Errorf("final position: got %d, want %d", r.Position(), len(data))
	}
}

func TestReaderTruncatedReads(t *testing.T) {
	tests := []struct {
		name string
		read func(*Reader) error
		data []byte
	}{
		{"u16", func(r *Reader) error { _, err := r.ReadU16LE(); return err }, []byte{0x01}},
		{"u32", func(r *Reader) error { _, err := r.ReadU32LE(); return err }, []byte{0x01, 0x02, 0x03}},
		{"u64", func(r *Reader) error { _, err := r.ReadU64LE(); return err }, []byte{0x01}},
		{"f32", func(r *Reader) error { _, err := r.ReadF32LE(); return err }, []byte{}},
		{"bytes", func(r *Reader) error { _, err := r.ReadBytes(4); return err }, []byte{0x01}},
	}

	for _, tt := range tests {
		err := tt.read(NewReader(tt.data))
		if !errors.Is(err, io.ErrUnexpectedEOF) {
			t.Errorf("%s: expected ErrUnexpectedEOF, got %v", tt.name, err)
		}
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("%s: expected ParseError, got %T", tt.name, err)
		}
	}
}

func TestReadCString(t *testing.T) {
	r := NewReader([]byte("hello\x00world\x00"))

	s, err := r.ReadCString()
	if err != nil {
		t.Fatalf("ReadCString: %v", err)
	}
	if s != "hello" {
		t.Errorf("got %q, want %q", s, "hello")
	}
	if r.Position() != 6 {
		t.Errorf("position after read: got %d, want 6", r.Position())
	}

	s, err = r.ReadCString()
	if err != nil {
		t.Fatalf("second ReadCString: %v", err)
	}
	if s != "world" {
		t.Errorf("got %q, want %q", s, "world")
	}
}

func TestReadCStringUnterminated(t *testing.T) {
	r := NewReader([]byte("abc"))
	_, err := r.ReadCString()
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected ErrUnexpectedEOF, got %v", err)
	}
}

func TestReadCStringInvalidUTF8(t *testing.T) {
	r := NewReader([]byte{0xff, 0xfe, 0x00})
	_, err := r.ReadCString()
	if !errors.Is(err, ErrInvalidUTF8) {
		t.Errorf("expected ErrInvalidUTF8, got %v", err)
	}
}

func TestReadBytesIsCopy(t *testing.T) {
	data := []byte{1, 2, 3, 4}
	r := NewReader(data)
	got, err := r.ReadBytes(4)
	if err != nil {
		t.Fatalf("ReadBytes: %v", err)
	}
	data[0] = 9
	if got[0] != 1 {
		t.Error("ReadBytes must return an owned copy")
	}
}
