package wasmbin

import "fmt"

// ReadCount reads a section's leading element-count uvarint, returning the
// count and the remaining bytes after it.
func ReadCount(b []byte) (int, []byte, error) {
	n, consumed, err := ReadUvarint(b)
	if err != nil {
		return 0, nil, fmt.Errorf("wasmbin: vector count: %w", err)
	}
	return int(n), b[consumed:], nil
}

// ReadName reads a length-prefixed UTF-8 name, returning it and the
// remaining bytes.
func ReadName(b []byte) (string, []byte, error) {
	n, consumed, err := ReadUvarint(b)
	if err != nil {
		return "", nil, fmt.Errorf("wasmbin: name length: %w", err)
	}
	b = b[consumed:]
	if int(n) > len(b) {
		return "", nil, fmt.Errorf("wasmbin: truncated name")
	}
	return string(b[:n]), b[n:], nil
}
