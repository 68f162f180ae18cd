// Package wasmbin is a minimal WebAssembly binary-format encoder/decoder:
// just enough LEB128, section-framing, and module-structure support to
// build a tiny module by hand and later locate and patch its global,
// export, and data sections. It is not a general-purpose WASM toolkit —
// it only understands the section kinds fontchan's decoder module needs.
package wasmbin

import "fmt"

// AppendUvarint appends the unsigned LEB128 encoding of v to dst.
func AppendUvarint(dst []byte, v uint64) []byte {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			dst = append(dst, b|0x80)
			continue
		}
		return append(dst, b)
	}
}

// AppendVarint appends the signed LEB128 encoding of v to dst, per the
// WASM spec's sign-extending algorithm (used for i32.const immediates).
func AppendVarint(dst []byte, v int64) []byte {
	more := true
	for more {
		b := byte(v & 0x7f)
		v >>= 7
		signBitSet := b&0x40 != 0
		if (v == 0 && !signBitSet) || (v == -1 && signBitSet) {
			more = false
		} else {
			b |= 0x80
		}
		dst = append(dst, b)
	}
	return dst
}

// ReadUvarint reads an unsigned LEB128 value from b, returning the value
// and the number of bytes consumed.
func ReadUvarint(b []byte) (uint64, int, error) {
	var result uint64
	var shift uint
	for i, by := range b {
		result |= uint64(by&0x7f) << shift
		if by&0x80 == 0 {
			return result, i + 1, nil
		}
		shift += 7
		if shift >= 64 {
			return 0, 0, fmt.Errorf("wasmbin: uvarint too long")
		}
	}
	return 0, 0, fmt.Errorf("wasmbin: truncated uvarint")
}

// ReadVarint reads a signed LEB128 value from b, returning the value and
// the number of bytes consumed.
func ReadVarint(b []byte) (int64, int, error) {
	var result int64
	var shift uint
	var by byte
	i := 0
	for {
		if i >= len(b) {
			return 0, 0, fmt.Errorf("wasmbin: truncated varint")
		}
		by = b[i]
		result |= int64(by&0x7f) << shift
		shift += 7
		i++
		if by&0x80 == 0 {
			break
		}
	}
	if shift < 64 && by&0x40 != 0 {
		result |= -1 << shift
	}
	return result, i, nil
}

// AppendVec appends a LEB128 byte count followed by data — the WASM
// "byte vector" encoding used for strings, data segments, and names.
func AppendVec(dst []byte, data []byte) []byte {
	dst = AppendUvarint(dst, uint64(len(data)))
	return append(dst, data...)
}
