// Package hash40 implements the 40-bit string hash used to tag struct
// members in param files.
//
// A Hash40 packs a CRC-32 of the label into the low 32 bits and the label
// length into bits 32..40. The decoder treats the value as opaque; this
// package exists so hashes can be produced from labels, parsed from text,
// and rendered in their canonical hex form.
package hash40

import (
	"bufio"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"strconv"
	"strings"
)

// Hash40 is a 40-bit hash identifier stored in the low bits of a uint64.
// Values are comparable and ordered by their numeric value.
type Hash40 uint64

// Mask covers the 40 meaningful bits of a Hash40.
const Mask = (1 << 40) - 1

// FromString hashes a label: crc32(label) | len(label)<<32.
func FromString(s string) Hash40 {
	return Hash40(uint64(crc32.ChecksumIEEE([]byte(s))) | uint64(len(s))<<32)
}

// String returns the canonical text form, a 0x-prefixed 10-digit hex value.
func (h Hash40) String() string {
	return fmt.Sprintf("0x%010x", uint64(h))
}

// Parse reads a Hash40 from text. Accepted forms, in order:
// 0x-prefixed hex, decimal, and anything else as a label to hash.
func Parse(s string) (Hash40, error) {
	if s == "" {
		return 0, errors.New("hash40: empty string")
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err := strconv.ParseUint(s[2:], 16, 64)
		if err != nil {
			return 0, fmt.Errorf("hash40: bad hex %q: %w", s, err)
		}
		return Hash40(v & Mask), nil
	}
	if v, err := strconv.ParseUint(s, 10, 64); err == nil {
		return Hash40(v & Mask), nil
	}
	return FromString(s), nil
}

// Labels maps hashes back to the labels that produced them.
type Labels map[Hash40]string

// LoadLabels reads labels one per line, hashing each. Blank lines and
// lines starting with '#' are skipped. Lines of the form "hex,label"
// (the common param-labels dump format) map the given hex hash directly.
func LoadLabels(r io.Reader) (Labels, error) {
	labels := make(Labels)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if hex, label, ok := strings.Cut(line, ","); ok {
			h, err := Parse(strings.TrimSpace(hex))
			if err != nil {
				return nil, err
			}
			labels[h] = strings.TrimSpace(label)
			continue
		}
		labels[FromString(line)] = line
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return labels, nil
}

// Lookup returns the label for h when known, or its canonical hex form.
func (l Labels) Lookup(h Hash40) string {
	if l != nil {
		if s, ok := l[h]; ok {
			return s
		}
	}
	return h.String()
}
