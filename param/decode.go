package param

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"

	"go.uber.org/zap"

	"github.com/blu-dev/prc-go/hash40"
	"github.com/blu-dev/prc-go/param/internal/binary"
)

// Decoding errors returned by DecodeBytes. Positioned read failures wrap
// these (or io.ErrUnexpectedEOF for truncation) in a *binary.ParseError,
// so callers can match with errors.Is.
var (
	ErrInvalidMagic = errors.New("invalid param file magic")
	ErrMissingRoot  = errors.New("param file does not contain a root struct")
	ErrHashIndex    = errors.New("hash index out of range")
	ErrUnknownTag   = errors.New("unknown type tag")
	ErrRefTable     = errors.New("reference table entry count mismatch")
	ErrTooDeep      = errors.New("value nesting exceeds depth limit")
)

// ErrInvalidUTF8 is returned when string bytes are not valid UTF-8.
var ErrInvalidUTF8 = binary.ErrInvalidUTF8

// maxDepth bounds list/struct nesting. Child offsets are relative and may
// point backwards, so a malformed file can form a cycle; without a bound
// that would recurse forever.
const maxDepth = 512

// refEntry is one (hash index, field offset) pair of a reference table.
type refEntry struct {
	hashIndex uint32
	offset    uint32
}

// fileData is the transient state of one decode: section boundaries, the
// loaded hash table, and the memoized reference tables keyed by their
// offset within the reference region. It is owned by a single DecodeBytes
// call and never shared.
type fileData struct {
	r          *binary.Reader
	refStart   uint32
	paramStart uint32
	hashes     []hash40.Hash40
	refTables  map[uint32][]refEntry
	depth      int
}

// DecodeBytes decodes a complete param file into its value tree. The root
// of every param file is a struct. The returned tree owns all its data;
// data may be reused or discarded after the call.
func DecodeBytes(data []byte) (Value, error) {
	r := binary.NewReader(data)

	magic, err := r.ReadBytes(8)
	if err != nil {
		return Value{}, r.WrapError("header", err)
	}
	if !bytes.Equal(magic, Magic[:]) {
		return Value{}, ErrInvalidMagic
	}

	hashSize, err := r.ReadU32LE()
	if err != nil {
		return Value{}, r.WrapError("header", err)
	}
	refSize, err := r.ReadU32LE()
	if err != nil {
		return Value{}, r.WrapError("header", err)
	}
	if int64(hashSize) > int64(r.Len())-headerSize {
		return Value{}, r.WrapError("hash table",
			fmt.Errorf("declared size %d: %w", hashSize, io.ErrUnexpectedEOF))
	}

	fd := &fileData{
		r:          r,
		refStart:   headerSize + hashSize,
		paramStart: headerSize + hashSize + refSize,
		hashes:     make([]hash40.Hash40, 0, hashSize/8),
		refTables:  make(map[uint32][]refEntry),
	}

	for i := uint32(0); i < hashSize/8; i++ {
		v, err := r.ReadU64LE()
		if err != nil {
			return Value{}, r.WrapError("hash table", err)
		}
		// Only 40 bits are meaningful; stray high bits would not survive
		// a trip through the textual form.
		fd.hashes = append(fd.hashes, hash40.Hash40(v&hash40.Mask))
	}

	Logger().Debug("param header",
		zap.Uint32("hash_size", hashSize),
		zap.Uint32("ref_size", refSize),
		zap.Int("hash_entries", len(fd.hashes)),
		zap.Uint32("param_start", fd.paramStart))

	if err := r.Seek(int(fd.paramStart)); err != nil {
		return Value{}, err
	}
	tag, err := r.ReadByte()
	if err != nil {
		return Value{}, r.WrapError("root value", err)
	}
	if tag != TagStruct {
		return Value{}, ErrMissingRoot
	}
	// Rewind so the decoder re-reads the root tag.
	if err := r.Seek(r.Position() - 1); err != nil {
		return Value{}, err
	}

	return fd.readValue()
}

// readValue consumes one tag byte at the current cursor position and
// decodes the value it introduces, recursing for lists and structs.
// Composite children are located by offsets relative to the tag byte, so
// the cursor's final position is not meaningful to the caller.
func (fd *fileData) readValue() (Value, error) {
	if fd.depth >= maxDepth {
		return Value{}, fd.r.WrapError("decode value", ErrTooDeep)
	}
	fd.depth++
	defer func() { fd.depth-- }()

	tagPos := fd.r.Position()
	tag, err := fd.r.ReadByte()
	if err != nil {
		return Value{}, fd.r.WrapError("type tag", err)
	}

	switch tag {
	case TagBool:
		b, err := fd.r.ReadByte()
		if err != nil {
			return Value{}, fd.r.WrapError("bool value", err)
		}
		return Bool(b != 0), nil

	case TagI8:
		v, err := fd.r.ReadI8()
		if err != nil {
			return Value{}, fd.r.WrapError("sbyte value", err)
		}
		return I8(v), nil

	case TagU8:
		v, err := fd.r.ReadByte()
		if err != nil {
			return Value{}, fd.r.WrapError("byte value", err)
		}
		return U8(v), nil

	case TagI16:
		v, err := fd.r.ReadI16LE()
		if err != nil {
			return Value{}, fd.r.WrapError("short value", err)
		}
		return I16(v), nil

	case TagU16:
		v, err := fd.r.ReadU16LE()
		if err != nil {
			return Value{}, fd.r.WrapError("ushort value", err)
		}
		return U16(v), nil

	case TagI32:
		v, err := fd.r.ReadI32LE()
		if err != nil {
			return Value{}, fd.r.WrapError("int value", err)
		}
		return I32(v), nil

	case TagU32:
		v, err := fd.r.ReadU32LE()
		if err != nil {
			return Value{}, fd.r.WrapError("uint value", err)
		}
		return U32(v), nil

	case TagFloat:
		v, err := fd.r.ReadF32LE()
		if err != nil {
			return Value{}, fd.r.WrapError("float value", err)
		}
		return Float(v), nil

	case TagHash:
		idx, err := fd.r.ReadU32LE()
		if err != nil {
			return Value{}, fd.r.WrapError("hash index", err)
		}
		if int(idx) >= len(fd.hashes) {
			return Value{}, &binary.ParseError{
				Op:       "hash lookup",
				Position: tagPos,
				Err:      fmt.Errorf("%w: index %d, table size %d", ErrHashIndex, idx, len(fd.hashes)),
			}
		}
		return Hash(fd.hashes[idx]), nil

	case TagStr:
		off, err := fd.r.ReadU32LE()
		if err != nil {
			return Value{}, fd.r.WrapError("string offset", err)
		}
		if err := fd.r.Seek(int(fd.refStart) + int(off)); err != nil {
			return Value{}, err
		}
		s, err := fd.r.ReadCString()
		if err != nil {
			return Value{}, err
		}
		return Str(s), nil

	case TagList:
		count, err := fd.r.ReadU32LE()
		if err != nil {
			return Value{}, fd.r.WrapError("list size", err)
		}
		if int64(count)*4 > int64(fd.r.Len()-fd.r.Position()) {
			return Value{}, fd.r.WrapError("list offsets",
				fmt.Errorf("%d elements: %w", count, io.ErrUnexpectedEOF))
		}
		offsets := make([]uint32, count)
		for i := range offsets {
			offsets[i], err = fd.r.ReadU32LE()
			if err != nil {
				return Value{}, fd.r.WrapError("list offsets", err)
			}
		}
		elems := make([]Value, 0, count)
		for _, off := range offsets {
			if err := fd.r.Seek(tagPos + int(off)); err != nil {
				return Value{}, err
			}
			elem, err := fd.readValue()
			if err != nil {
				return Value{}, err
			}
			elems = append(elems, elem)
		}
		return List(elems...), nil

	case TagStruct:
		count, err := fd.r.ReadU32LE()
		if err != nil {
			return Value{}, fd.r.WrapError("struct size", err)
		}
		refOff, err := fd.r.ReadU32LE()
		if err != nil {
			return Value{}, fd.r.WrapError("struct ref offset", err)
		}
		table, err := fd.refTable(refOff, count)
		if err != nil {
			return Value{}, err
		}
		members := make([]Member, 0, count)
		for _, e := range table {
			if int(e.hashIndex) >= len(fd.hashes) {
				return Value{}, &binary.ParseError{
					Op:       "struct member hash",
					Position: tagPos,
					Err:      fmt.Errorf("%w: index %d, table size %d", ErrHashIndex, e.hashIndex, len(fd.hashes)),
				}
			}
			if err := fd.r.Seek(tagPos + int(e.offset)); err != nil {
				return Value{}, err
			}
			child, err := fd.readValue()
			if err != nil {
				return Value{}, err
			}
			members = append(members, Member{Hash: fd.hashes[e.hashIndex], Value: child})
		}
		return Struct(members...), nil

	default:
		return Value{}, &binary.ParseError{
			Op:       "decode value",
			Position: tagPos,
			Err:      fmt.Errorf("%w 0x%02x", ErrUnknownTag, tag),
		}
	}
}

// refTable resolves the reference table at refOff (relative to the start
// of the reference region). The first visit reads count (hash index,
// field offset) pairs and memoizes them sorted ascending by hash index;
// every later visit returns the cached slice, which fixes one canonical
// member order for all structs sharing the layout.
func (fd *fileData) refTable(refOff, count uint32) ([]refEntry, error) {
	if table, ok := fd.refTables[refOff]; ok {
		if len(table) != int(count) {
			return nil, fmt.Errorf("%w: table at offset %d has %d entries, struct declares %d",
				ErrRefTable, refOff, len(table), count)
		}
		return table, nil
	}

	if err := fd.r.Seek(int(fd.refStart) + int(refOff)); err != nil {
		return nil, err
	}
	if int64(count)*8 > int64(fd.r.Len()-fd.r.Position()) {
		return nil, fd.r.WrapError("reference table",
			fmt.Errorf("%d entries: %w", count, io.ErrUnexpectedEOF))
	}
	table := make([]refEntry, count)
	for i := range table {
		hi, err := fd.r.ReadU32LE()
		if err != nil {
			return nil, fd.r.WrapError("reference table", err)
		}
		off, err := fd.r.ReadU32LE()
		if err != nil {
			return nil, fd.r.WrapError("reference table", err)
		}
		table[i] = refEntry{hashIndex: hi, offset: off}
	}
	sort.SliceStable(table, func(i, j int) bool {
		return table[i].hashIndex < table[j].hashIndex
	})
	fd.refTables[refOff] = table

	Logger().Debug("reference table cached",
		zap.Uint32("offset", refOff),
		zap.Uint32("entries", count))
	return table, nil
}
