// Package codec implements the varint+delta binary format that carries the
// partition's unicode-range data and the per-bucket font identifiers
// between the build and the browser-side loader, plus a small Decoder that
// regenerates the `@font-face` CSS text from those two streams.
//
// The writer abstraction below has exactly one operation — append bytes,
// return the new writer state — so the same Decoder logic can target a
// growable buffer, a byte counter, or (conceptually, mirroring the
// allocation-free `no_std` WASM decoder this format was designed for) a
// fixed-size region addressed by a raw cursor. Every step threads the
// writer by value, never by pointer, so nothing here assumes a heap.
package codec

// WriteBytes is implemented by every writer kind: append b, return the new
// writer state.
type WriteBytes interface {
	WriteBytes(b []byte) WriteBytes
}

// AppendWriter accumulates emitted bytes into a growable buffer.
type AppendWriter struct {
	buf []byte
}

// NewAppendWriter returns an empty AppendWriter.
func NewAppendWriter() AppendWriter {
	return AppendWriter{}
}

// WriteBytes implements WriteBytes.
func (w AppendWriter) WriteBytes(b []byte) WriteBytes {
	w.buf = append(w.buf, b...)
	return w
}

// Bytes returns the accumulated bytes.
func (w AppendWriter) Bytes() []byte {
	return w.buf
}

// CounterWriter discards emitted bytes, accumulating only their count. It
// lets the loader builder dry-run the decoder to size the WASM heap before
// any real bytes (or memory) exist.
type CounterWriter struct {
	n int
}

// NewCounterWriter returns a zeroed CounterWriter.
func NewCounterWriter() CounterWriter {
	return CounterWriter{}
}

// WriteBytes implements WriteBytes.
func (w CounterWriter) WriteBytes(b []byte) WriteBytes {
	w.n += len(b)
	return w
}

// Value returns the total byte count observed so far.
func (w CounterWriter) Value() int {
	return w.n
}

// RawWriter advances a cursor over a caller-owned, pre-sized byte slice. It
// is the Go-side counterpart of the no_std decoder's raw-pointer writer,
// useful for testing the writer contract without a growable buffer.
type RawWriter struct {
	buf    []byte
	offset int
}

// NewRawWriter wraps buf; it must be at least as large as the total bytes
// that will be written, or WriteBytes panics.
func NewRawWriter(buf []byte) RawWriter {
	return RawWriter{buf: buf}
}

// WriteBytes implements WriteBytes.
func (w RawWriter) WriteBytes(b []byte) WriteBytes {
	n := copy(w.buf[w.offset:], b)
	if n != len(b) {
		panic("codec: RawWriter buffer too small")
	}
	w.offset += n
	return w
}

// Offset returns the number of bytes written so far.
func (w RawWriter) Offset() int {
	return w.offset
}

const hexDigits = "0123456789abcdef"

// writeCodepoint emits the lowercase, unpadded hex encoding of cp, with 0
// rendered as "0".
func writeCodepoint(w WriteBytes, cp uint32) WriteBytes {
	var buf [8]byte
	n := 0
	for cp != 0 {
		buf[n] = hexDigits[cp&0xf]
		cp >>= 4
		n++
	}
	if n == 0 {
		buf[0] = '0'
		n = 1
	}
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return w.WriteBytes(buf[:n])
}
