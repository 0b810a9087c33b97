package hash40

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromString(t *testing.T) {
	tests := []struct {
		label string
		want  Hash40
	}{
		// crc32(label) | len<<32, CRC-32/ISO-HDLC
		{"", 0x000000000},
		{"a", 0x1e8b7be43},
		{"fighter", 0x77a08c3fc},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FromString(tt.label), "label %q", tt.label)
	}
}

func TestFromStringLengthBits(t *testing.T) {
	h := FromString("fighter")
	assert.Equal(t, uint64(7), uint64(h)>>32, "length byte")
}

func TestString(t *testing.T) {
	assert.Equal(t, "0x1e8b7be43", Hash40(0x1e8b7be43).String())
	assert.Equal(t, "0x0000000000", Hash40(0).String())
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Hash40
	}{
		{"0x1e8b7be43", 0x1e8b7be43},
		{"0X1E8B7BE43", 0x1e8b7be43},
		{"8199323203", 0x1e8b7be43}, // decimal of the same value
		{"a", FromString("a")},      // label fallback
		{"fighter", FromString("fighter")},
	}

	for _, tt := range tests {
		got, err := Parse(tt.in)
		require.NoError(t, err, "Parse(%q)", tt.in)
		assert.Equal(t, tt.want, got, "Parse(%q)", tt.in)
	}
}

func TestParseErrors(t *testing.T) {
	_, err := Parse("")
	assert.Error(t, err)

	_, err = Parse("0xnothex")
	assert.Error(t, err)
}

func TestParseRoundTrip(t *testing.T) {
	h := FromString("fighter_param_mario")
	got, err := Parse(h.String())
	require.NoError(t, err)
	assert.Equal(t, h, got)
}

func TestLoadLabels(t *testing.T) {
	src := strings.Join([]string{
		"# comment",
		"",
		"fighter",
		"0xdeadbeef00,custom_label",
	}, "\n")

	labels, err := LoadLabels(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, labels, 2)

	assert.Equal(t, "fighter", labels.Lookup(FromString("fighter")))
	assert.Equal(t, "custom_label", labels.Lookup(Hash40(0xdeadbeef00)))
}

func TestLookupUnknown(t *testing.T) {
	var labels Labels
	assert.Equal(t, "0x0000000123", labels.Lookup(Hash40(0x123)))

	labels = Labels{}
	assert.Equal(t, "0x0000000123", labels.Lookup(Hash40(0x123)))
}
