package wasmbin

import (
	"bytes"
	"fmt"
)

// Section IDs, per the WASM binary format (core spec §5.5).
const (
	SecType     = 1
	SecImport   = 2
	SecFunction = 3
	SecMemory   = 5
	SecGlobal   = 6
	SecExport   = 7
	SecCode     = 10
	SecData     = 11
)

var magic = []byte{0x00, 0x61, 0x73, 0x6d}
var version = []byte{0x01, 0x00, 0x00, 0x00}

// Section is one module section: an ID byte and its already-encoded
// payload (the section's own internal vector framing, if any, is part of
// Data — Section only adds the outer id+size wrapper).
type Section struct {
	ID   byte
	Data []byte
}

// EncodeModule concatenates the magic number, version, and sections in
// the given order into a complete module binary.
func EncodeModule(sections []Section) []byte {
	out := append([]byte{}, magic...)
	out = append(out, version...)
	for _, s := range sections {
		out = append(out, s.ID)
		out = AppendVec(out, s.Data)
	}
	return out
}

// ParseModule splits a module binary into its header and section list,
// preserving encounter order.
func ParseModule(b []byte) ([]Section, error) {
	if len(b) < 8 || !bytes.Equal(b[:4], magic) || !bytes.Equal(b[4:8], version) {
		return nil, fmt.Errorf("wasmbin: not a recognized wasm binary module")
	}
	b = b[8:]
	var sections []Section
	for len(b) > 0 {
		id := b[0]
		size, n, err := ReadUvarint(b[1:])
		if err != nil {
			return nil, fmt.Errorf("wasmbin: section header: %w", err)
		}
		start := 1 + n
		end := start + int(size)
		if end > len(b) {
			return nil, fmt.Errorf("wasmbin: section %d: truncated", id)
		}
		sections = append(sections, Section{ID: id, Data: append([]byte(nil), b[start:end]...)})
		b = b[end:]
	}
	return sections, nil
}
