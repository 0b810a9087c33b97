package param

// Magic is the 8-byte signature at the start of every param file.
var Magic = [8]byte{'p', 'a', 'r', 'a', 'c', 'o', 'b', 'n'}

// Type tags identify the encoding of each value in the param region.
// Composite tags (list, struct) address their children through offsets
// relative to the tag byte's own position.
const (
	TagBool   byte = 1  // one byte, nonzero is true
	TagI8     byte = 2  // signed byte
	TagU8     byte = 3  // unsigned byte
	TagI16    byte = 4  // little-endian int16
	TagU16    byte = 5  // little-endian uint16
	TagI32    byte = 6  // little-endian int32
	TagU32    byte = 7  // little-endian uint32
	TagFloat  byte = 8  // little-endian IEEE-754 float32
	TagHash   byte = 9  // u32 index into the hash table
	TagStr    byte = 10 // u32 offset of a NUL-terminated string, relative to refStart
	TagList   byte = 11 // u32 count, then count u32 child offsets
	TagStruct byte = 12 // u32 count, then u32 reference-table offset
)

// headerSize is the fixed byte length of the file header: magic plus the
// hash-table and reference-region sizes.
const headerSize = 16
