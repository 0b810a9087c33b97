package param

import (
	"math"

	"github.com/blu-dev/prc-go/hash40"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	KindBool Kind = iota + 1
	KindI8
	KindU8
	KindI16
	KindU16
	KindI32
	KindU32
	KindFloat
	KindHash
	KindStr
	KindList
	KindStruct
)

// Kind names are also the element names of the markup representation.
var kindNames = [...]string{
	KindBool:   "bool",
	KindI8:     "sbyte",
	KindU8:     "byte",
	KindI16:    "short",
	KindU16:    "ushort",
	KindI32:    "int",
	KindU32:    "uint",
	KindFloat:  "float",
	KindHash:   "hash40",
	KindStr:    "string",
	KindList:   "list",
	KindStruct: "struct",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// KindForName returns the Kind whose markup element name is name.
func KindForName(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return 0, false
}

// Value is one node of a decoded param tree. Exactly the payload field
// matching Kind is meaningful; the rest hold their zero values. A Value
// owns all of its data, including nested children.
type Value struct {
	Kind   Kind
	Bool   bool
	I8     int8
	U8     uint8
	I16    int16
	U16    uint16
	I32    int32
	U32    uint32
	Float  float32
	Hash   hash40.Hash40
	Str    string
	List   []Value
	Struct []Member
}

// Member is one struct field: the hash that tags it and its value.
type Member struct {
	Hash  hash40.Hash40
	Value Value
}

// Constructors, one per variant.

func Bool(v bool) Value          { return Value{Kind: KindBool, Bool: v} }
func I8(v int8) Value            { return Value{Kind: KindI8, I8: v} }
func U8(v uint8) Value           { return Value{Kind: KindU8, U8: v} }
func I16(v int16) Value          { return Value{Kind: KindI16, I16: v} }
func U16(v uint16) Value         { return Value{Kind: KindU16, U16: v} }
func I32(v int32) Value          { return Value{Kind: KindI32, I32: v} }
func U32(v uint32) Value         { return Value{Kind: KindU32, U32: v} }
func Float(v float32) Value      { return Value{Kind: KindFloat, Float: v} }
func Hash(v hash40.Hash40) Value { return Value{Kind: KindHash, Hash: v} }
func Str(v string) Value         { return Value{Kind: KindStr, Str: v} }
func List(elems ...Value) Value  { return Value{Kind: KindList, List: elems} }

func Struct(members ...Member) Value {
	return Value{Kind: KindStruct, Struct: members}
}

// Equal reports structural equality of two trees. Floats compare by bit
// pattern, so a NaN equals an identical NaN.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindBool:
		return v.Bool == o.Bool
	case KindI8:
		return v.I8 == o.I8
	case KindU8:
		return v.U8 == o.U8
	case KindI16:
		return v.I16 == o.I16
	case KindU16:
		return v.U16 == o.U16
	case KindI32:
		return v.I32 == o.I32
	case KindU32:
		return v.U32 == o.U32
	case KindFloat:
		return math.Float32bits(v.Float) == math.Float32bits(o.Float)
	case KindHash:
		return v.Hash == o.Hash
	case KindStr:
		return v.Str == o.Str
	case KindList:
		if len(v.List) != len(o.List) {
			return false
		}
		for i := range v.List {
			if !v.List[i].Equal(o.List[i]) {
				return false
			}
		}
		return true
	case KindStruct:
		if len(v.Struct) != len(o.Struct) {
			return false
		}
		for i := range v.Struct {
			if v.Struct[i].Hash != o.Struct[i].Hash ||
				!v.Struct[i].Value.Equal(o.Struct[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}
