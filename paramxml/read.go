package paramxml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/blu-dev/prc-go/hash40"
	"github.com/blu-dev/prc-go/param"
)

// Reading errors. Syntax-level problems (mismatched tags, malformed
// markup) surface as the underlying xml.SyntaxError.
var (
	ErrExpectedStruct = errors.New("paramxml: root element must be a struct")
	ErrUnknownTag     = errors.New("paramxml: unknown element name")
	ErrMissingHash    = errors.New("paramxml: struct child missing hash attribute")
	ErrUnexpectedText = errors.New("paramxml: text content outside a value element")
	ErrNoRoot         = errors.New("paramxml: no root element")
	ErrMultipleRoots  = errors.New("paramxml: multiple root elements")
)

// frame is one open element: the value being built, the hash attribute
// captured from its start tag, and accumulated text for scalar kinds.
type frame struct {
	value   param.Value
	hash    hash40.Hash40
	hasHash bool
	text    strings.Builder
}

// Read parses the markup form back into a value tree. It accepts hash
// attributes as hex, decimal, or labels, and empty composites in either
// self-closed or open-close form.
func Read(r io.Reader) (param.Value, error) {
	dec := xml.NewDecoder(r)

	var stack []*frame
	var root *param.Value

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return param.Value{}, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			kind, ok := param.KindForName(t.Name.Local)
			if !ok {
				return param.Value{}, fmt.Errorf("%w: %q", ErrUnknownTag, t.Name.Local)
			}
			if len(stack) == 0 {
				if root != nil {
					return param.Value{}, ErrMultipleRoots
				}
				if kind != param.KindStruct {
					return param.Value{}, ErrExpectedStruct
				}
			} else if isScalar(stack[len(stack)-1].value.Kind) {
				return param.Value{}, fmt.Errorf("paramxml: <%s> inside a %s value",
					t.Name.Local, stack[len(stack)-1].value.Kind)
			}

			f := &frame{value: param.Value{Kind: kind}}
			for _, a := range t.Attr {
				if a.Name.Local == "hash" {
					h, err := hash40.Parse(a.Value)
					if err != nil {
						return param.Value{}, err
					}
					f.hash = h
					f.hasHash = true
				}
			}
			if len(stack) > 0 && stack[len(stack)-1].value.Kind == param.KindStruct && !f.hasHash {
				return param.Value{}, fmt.Errorf("%w: <%s>", ErrMissingHash, t.Name.Local)
			}
			stack = append(stack, f)

		case xml.CharData:
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				if isScalar(top.value.Kind) {
					top.text.Write(t)
					continue
				}
			}
			if len(strings.TrimSpace(string(t))) > 0 {
				return param.Value{}, fmt.Errorf("%w: %q", ErrUnexpectedText, string(t))
			}

		case xml.EndElement:
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if isScalar(f.value.Kind) {
				v, err := parseScalar(f.value.Kind, f.text.String())
				if err != nil {
					return param.Value{}, err
				}
				f.value = v
			}

			if len(stack) == 0 {
				v := f.value
				root = &v
				continue
			}
			parent := stack[len(stack)-1]
			switch parent.value.Kind {
			case param.KindList:
				parent.value.List = append(parent.value.List, f.value)
			case param.KindStruct:
				parent.value.Struct = append(parent.value.Struct, param.Member{
					Hash:  f.hash,
					Value: f.value,
				})
			}
		}
	}

	if root == nil {
		return param.Value{}, ErrNoRoot
	}
	return *root, nil
}

func isScalar(k param.Kind) bool {
	return k != param.KindList && k != param.KindStruct
}

// parseScalar converts element text into the leaf value of the given
// kind. Numeric kinds trim surrounding whitespace; strings keep their
// text exactly.
func parseScalar(kind param.Kind, text string) (param.Value, error) {
	s := strings.TrimSpace(text)
	fail := func(err error) (param.Value, error) {
		return param.Value{}, fmt.Errorf("paramxml: bad %s value %q: %w", kind, s, err)
	}

	switch kind {
	case param.KindBool:
		v, err := strconv.ParseBool(s)
		if err != nil {
			return fail(err)
		}
		return param.Bool(v), nil
	case param.KindI8:
		v, err := strconv.ParseInt(s, 10, 8)
		if err != nil {
			return fail(err)
		}
		return param.I8(int8(v)), nil
	case param.KindU8:
		v, err := strconv.ParseUint(s, 10, 8)
		if err != nil {
			return fail(err)
		}
		return param.U8(uint8(v)), nil
	case param.KindI16:
		v, err := strconv.ParseInt(s, 10, 16)
		if err != nil {
			return fail(err)
		}
		return param.I16(int16(v)), nil
	case param.KindU16:
		v, err := strconv.ParseUint(s, 10, 16)
		if err != nil {
			return fail(err)
		}
		return param.U16(uint16(v)), nil
	case param.KindI32:
		v, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return fail(err)
		}
		return param.I32(int32(v)), nil
	case param.KindU32:
		v, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return fail(err)
		}
		return param.U32(uint32(v)), nil
	case param.KindFloat:
		v, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return fail(err)
		}
		return param.Float(float32(v)), nil
	case param.KindHash:
		h, err := hash40.Parse(s)
		if err != nil {
			return fail(err)
		}
		return param.Hash(h), nil
	case param.KindStr:
		return param.Str(text), nil
	}
	return param.Value{}, fmt.Errorf("paramxml: %s is not a scalar kind", kind)
}
