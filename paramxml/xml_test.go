package paramxml_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blu-dev/prc-go/hash40"
	"github.com/blu-dev/prc-go/param"
	"github.com/blu-dev/prc-go/paramxml"
)

func member(h uint64, v param.Value) param.Member {
	return param.Member{Hash: hash40.Hash40(h), Value: v}
}

func TestWriteMinimalStruct(t *testing.T) {
	tree := param.Struct(member(0x1234567890, param.Bool(true)))

	var buf bytes.Buffer
	require.NoError(t, paramxml.Write(&buf, tree))

	want := `<?xml version="1.0" encoding="utf-8"?>
<struct>
  <bool hash="0x1234567890">true</bool>
</struct>
`
	assert.Equal(t, want, buf.String())
}

func TestWriteEmptyComposites(t *testing.T) {
	tree := param.Struct(
		member(0x01, param.List()),
		member(0x02, param.Struct()),
	)

	var buf bytes.Buffer
	require.NoError(t, paramxml.Write(&buf, tree))

	want := `<?xml version="1.0" encoding="utf-8"?>
<struct>
  <list hash="0x0000000001" />
  <struct hash="0x0000000002" />
</struct>
`
	assert.Equal(t, want, buf.String())
}

func TestWriteListIndexes(t *testing.T) {
	tree := param.Struct(member(0x0a, param.List(
		param.U8(1),
		param.Float(1),
		param.Str("a & b <c>"),
	)))

	var buf bytes.Buffer
	require.NoError(t, paramxml.Write(&buf, tree))

	want := `<?xml version="1.0" encoding="utf-8"?>
<struct>
  <list hash="0x000000000a">
    <byte index="0">1</byte>
    <float index="1">1.0</float>
    <string index="2">a &amp; b &lt;c&gt;</string>
  </list>
</struct>
`
	assert.Equal(t, want, buf.String())
}

func TestWriteWithLabels(t *testing.T) {
	labels := hash40.Labels{
		hash40.FromString("fighter"): "fighter",
	}
	tree := param.Struct(
		member(uint64(hash40.FromString("fighter")), param.U8(9)),
		member(0xff, param.Hash(hash40.FromString("fighter"))),
	)

	var buf bytes.Buffer
	require.NoError(t, paramxml.Write(&buf, tree, paramxml.WithLabels(labels)))

	out := buf.String()
	assert.Contains(t, out, `<byte hash="fighter">9</byte>`)
	assert.Contains(t, out, `<hash40 hash="0x00000000ff">fighter</hash40>`)
}

func TestWriteRootMustBeStruct(t *testing.T) {
	var buf bytes.Buffer
	err := paramxml.Write(&buf, param.Bool(true))
	assert.Error(t, err)
}

func TestReadMinimalStruct(t *testing.T) {
	src := `<?xml version="1.0" encoding="utf-8"?>
<struct>
  <bool hash="0x1234567890">true</bool>
</struct>
`
	got, err := paramxml.Read(strings.NewReader(src))
	require.NoError(t, err)

	want := param.Struct(member(0x1234567890, param.Bool(true)))
	assert.True(t, got.Equal(want), "got %+v", got)
}

func TestReadHashForms(t *testing.T) {
	src := `<struct>
  <byte hash="0x000000000a">1</byte>
  <byte hash="10">2</byte>
  <byte hash="fighter">3</byte>
</struct>`
	got, err := paramxml.Read(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, got.Struct, 3)

	assert.Equal(t, hash40.Hash40(0x0a), got.Struct[0].Hash)
	assert.Equal(t, hash40.Hash40(0x0a), got.Struct[1].Hash)
	assert.Equal(t, hash40.FromString("fighter"), got.Struct[2].Hash)
}

func TestReadEmptyCompositeForms(t *testing.T) {
	src := `<struct>
  <list hash="0x01" />
  <list hash="0x02"></list>
  <struct hash="0x03"/>
</struct>`
	got, err := paramxml.Read(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, got.Struct, 3)

	assert.Equal(t, param.KindList, got.Struct[0].Value.Kind)
	assert.Empty(t, got.Struct[0].Value.List)
	assert.Empty(t, got.Struct[1].Value.List)
	assert.Equal(t, param.KindStruct, got.Struct[2].Value.Kind)
	assert.Empty(t, got.Struct[2].Value.Struct)
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"root not struct", `<bool>true</bool>`, paramxml.ErrExpectedStruct},
		{"unknown tag", `<struct><i64 hash="0x1">4</i64></struct>`, paramxml.ErrUnknownTag},
		{"missing hash", `<struct><bool>true</bool></struct>`, paramxml.ErrMissingHash},
		{"stray text", `<struct>hello<bool hash="0x1">true</bool></struct>`, paramxml.ErrUnexpectedText},
		{"no root", `  `, paramxml.ErrNoRoot},
		{"multiple roots", `<struct/><struct/>`, paramxml.ErrMultipleRoots},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := paramxml.Read(strings.NewReader(tt.src))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestReadBadScalar(t *testing.T) {
	src := `<struct><int hash="0x1">notanumber</int></struct>`
	_, err := paramxml.Read(strings.NewReader(src))
	assert.Error(t, err)

	src = `<struct><byte hash="0x1">300</byte></struct>`
	_, err = paramxml.Read(strings.NewReader(src))
	assert.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	tree := param.Struct(
		member(0x01, param.Bool(false)),
		member(0x02, param.I8(-5)),
		member(0x03, param.U8(200)),
		member(0x04, param.I16(-12345)),
		member(0x05, param.U16(54321)),
		member(0x06, param.I32(-7)),
		member(0x07, param.U32(3000000000)),
		member(0x08, param.Float(0.25)),
		member(0x09, param.Hash(hash40.FromString("mario"))),
		member(0x0a, param.Str("hello <world> & \"friends\"")),
		member(0x0b, param.List(
			param.Float(1.5),
			param.List(),
			param.Struct(member(0x0c, param.Str(""))),
		)),
		member(0x0d, param.Struct()),
	)

	var buf bytes.Buffer
	require.NoError(t, paramxml.Write(&buf, tree))

	got, err := paramxml.Read(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.True(t, got.Equal(tree), "round trip mismatch:\n%s", buf.String())
}
