// Package param decodes the binary param container format into a tree of
// typed values.
//
// A param file is a flat byte stream: an 8-byte magic signature, a hash
// table of 40-bit identifiers, a region of deduplicated reference tables
// describing struct layouts, and a value region of tagged values. List and
// struct values locate their children through byte offsets relative to
// their own tag byte, so the decoder reconstructs nesting by seeking, not
// by sequential reads.
//
// # Decoding
//
//	data, _ := os.ReadFile("fighter_param.prc")
//	root, err := param.DecodeBytes(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// root.Kind == param.KindStruct, always
//
// Struct members are ordered ascending by hash-table index, the canonical
// order fixed by the reference-table cache; list elements keep their
// on-disk order. Every malformed input surfaces as an error — truncation,
// bad magic, unknown tags and out-of-range hash indices all report the
// failing operation and byte offset.
//
// Each DecodeBytes call owns its decode state, so separate files may be
// decoded concurrently from separate goroutines.
package param
