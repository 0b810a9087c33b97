package paramxml

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/blu-dev/prc-go/hash40"
	"github.com/blu-dev/prc-go/param"
)

const header = `<?xml version="1.0" encoding="utf-8"?>` + "\n"

// Option configures the markup writer.
type Option func(*writer)

// WithLabels renders hash attributes and hash40 values through the given
// label table instead of raw hex.
func WithLabels(labels hash40.Labels) Option {
	return func(w *writer) { w.labels = labels }
}

// Write renders a decoded value tree as markup. The root must be a
// struct, mirroring the binary format's root rule. Struct members carry a
// hash attribute, list elements an index attribute; empty composites
// self-close.
func Write(w io.Writer, root param.Value, opts ...Option) error {
	if root.Kind != param.KindStruct {
		return fmt.Errorf("paramxml: root must be a struct, have %s", root.Kind)
	}
	bw := bufio.NewWriter(w)
	pw := &writer{w: bw}
	for _, opt := range opts {
		opt(pw)
	}
	pw.writeString(header)
	pw.value(root, "", 0)
	if pw.err != nil {
		return pw.err
	}
	return bw.Flush()
}

type writer struct {
	w      *bufio.Writer
	labels hash40.Labels
	err    error
}

func (p *writer) writeString(s string) {
	if p.err == nil {
		_, p.err = p.w.WriteString(s)
	}
}

// escape writes s with XML character escaping.
func (p *writer) escape(s string) {
	if p.err == nil {
		p.err = xml.EscapeText(p.w, []byte(s))
	}
}

// value writes one node at the given indent depth. attr is the
// preassembled attribute name for this node ("hash" or "index"), empty
// for the root.
func (p *writer) value(v param.Value, attr string, depth int) {
	name := v.Kind.String()
	indent := strings.Repeat("  ", depth)

	open := func() {
		p.writeString(indent)
		p.writeString("<")
		p.writeString(name)
		p.writeString(attr)
	}

	switch v.Kind {
	case param.KindList:
		open()
		if len(v.List) == 0 {
			p.writeString(" />\n")
			return
		}
		p.writeString(">\n")
		for i, elem := range v.List {
			p.value(elem, ` index="`+strconv.Itoa(i)+`"`, depth+1)
		}
		p.writeString(indent)
		p.writeString("</")
		p.writeString(name)
		p.writeString(">\n")

	case param.KindStruct:
		open()
		if len(v.Struct) == 0 {
			p.writeString(" />\n")
			return
		}
		p.writeString(">\n")
		for _, m := range v.Struct {
			p.value(m.Value, ` hash="`+attrText(p.hashText(m.Hash))+`"`, depth+1)
		}
		p.writeString(indent)
		p.writeString("</")
		p.writeString(name)
		p.writeString(">\n")

	default:
		open()
		p.writeString(">")
		p.escape(p.scalarText(v))
		p.writeString("</")
		p.writeString(name)
		p.writeString(">\n")
	}
}

func (p *writer) hashText(h hash40.Hash40) string {
	return p.labels.Lookup(h)
}

// attrText escapes s for use inside a quoted attribute value.
func attrText(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s)) // bytes.Buffer writes cannot fail
	return buf.String()
}

// scalarText renders a leaf value in its canonical text form.
func (p *writer) scalarText(v param.Value) string {
	switch v.Kind {
	case param.KindBool:
		return strconv.FormatBool(v.Bool)
	case param.KindI8:
		return strconv.FormatInt(int64(v.I8), 10)
	case param.KindU8:
		return strconv.FormatUint(uint64(v.U8), 10)
	case param.KindI16:
		return strconv.FormatInt(int64(v.I16), 10)
	case param.KindU16:
		return strconv.FormatUint(uint64(v.U16), 10)
	case param.KindI32:
		return strconv.FormatInt(int64(v.I32), 10)
	case param.KindU32:
		return strconv.FormatUint(uint64(v.U32), 10)
	case param.KindFloat:
		return formatFloat(v.Float)
	case param.KindHash:
		return p.hashText(v.Hash)
	case param.KindStr:
		return v.Str
	}
	return ""
}

// formatFloat renders the shortest decimal that round-trips, with a
// forced fractional part so whole floats stay visibly floats.
func formatFloat(f float32) string {
	s := strconv.FormatFloat(float64(f), 'f', -1, 32)
	if !strings.ContainsAny(s, ".IN") {
		s += ".0"
	}
	return s
}
