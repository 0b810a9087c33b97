// Package prc decodes binary param (.prc) files and converts them to and
// from an editable markup form.
//
// The library is organized into packages with distinct responsibilities:
//
//	prc-go/          Root package with file-level conveniences
//	├── param/       Value tree model and the binary decoder
//	├── hash40/      40-bit hash identifiers, labels, parsing
//	├── paramxml/    Markup writer and reader for value trees
//	└── cmd/prc/     CLI: convert files, browse trees interactively
//
// # Quick Start
//
// Decode a file and dump it as markup:
//
//	root, err := prc.DecodeFile("fighter_param.prc")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = prc.WriteXMLFile("fighter_param.xml", root, nil)
//
// # Value Model
//
// A decoded file is a tree of param.Value nodes, a closed set of twelve
// variants: eight scalars (bool, signed and unsigned 8/16/32-bit
// integers, float), hash identifiers, strings, lists, and structs.
// The root is always a struct. Struct members are tagged with
// hash40.Hash40 identifiers and ordered canonically; list elements keep
// file order.
//
// # Concurrency
//
// Decode state is owned per call. Decoding different files from
// different goroutines is safe; no decode shares state with another.
package prc
