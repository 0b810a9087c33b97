package prc

import (
	"fmt"
	"os"

	"github.com/blu-dev/prc-go/hash40"
	"github.com/blu-dev/prc-go/param"
	"github.com/blu-dev/prc-go/paramxml"
)

// DecodeFile reads and decodes a binary param file.
func DecodeFile(path string) (param.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return param.Value{}, fmt.Errorf("read file: %w", err)
	}
	return param.DecodeBytes(data)
}

// WriteXMLFile renders a decoded tree as markup at path. labels may be
// nil, in which case hashes render in hex.
func WriteXMLFile(path string, root param.Value, labels hash40.Labels) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	if err := paramxml.Write(f, root, paramxml.WithLabels(labels)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadXMLFile parses a markup file back into a value tree.
func ReadXMLFile(path string) (param.Value, error) {
	f, err := os.Open(path)
	if err != nil {
		return param.Value{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()
	return paramxml.Read(f)
}
