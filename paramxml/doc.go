// Package paramxml converts decoded param value trees to and from a
// human-editable markup form.
//
// Each value becomes an element named after its kind (bool, sbyte, byte,
// short, ushort, int, uint, float, hash40, string, list, struct). Struct
// members carry a hash attribute, list elements an index attribute, and
// leaves carry their value as element text. Empty lists and structs
// self-close.
//
//	<?xml version="1.0" encoding="utf-8"?>
//	<struct>
//	  <byte hash="0x0caeed7574">3</byte>
//	  <list hash="0x04858fe4a9">
//	    <float index="0">1.5</float>
//	  </list>
//	</struct>
//
// Write emits hashes in canonical hex form, or as labels when a label
// table is supplied with WithLabels. Read accepts hashes in hex, decimal,
// or label form, so files hand-edited against a label set parse without
// the table present.
package paramxml
