package codec

import "encoding/binary"

// DecoderContext supplies a Decoder with the two encoded streams, the face
// count, and the per-face CSS fragments ("ext" and "src") that sandwich the
// decoded `unicode-range` list inside each `@font-face{...}` block.
type DecoderContext interface {
	URangeData() []byte
	FIDData() []byte
	FontFaceCount() int
	WriteFontFaceExt(idx int, w WriteBytes) WriteBytes
	WriteFontFaceSrc(idx int, hash []byte, w WriteBytes) WriteBytes
}

// byteReader consumes a varint/string stream left-to-right. A truncated or
// overlong varint is a codec-layer bug (the encoder is trusted and the data
// is embedded alongside the decoder) and panics rather than returning an
// error, matching the "unreachable" contract of the format's original
// no_std decoder core.
type byteReader struct {
	data []byte
}

func newByteReader(b []byte) *byteReader {
	return &byteReader{data: b}
}

func (r *byteReader) isEmpty() bool {
	return len(r.data) == 0
}

func (r *byteReader) readVarint() uint32 {
	v, n := binary.Uvarint(r.data)
	if n <= 0 {
		panic("codec: truncated or overlong varint")
	}
	r.data = r.data[n:]
	return uint32(v)
}

func (r *byteReader) readString() []byte {
	n := r.readVarint()
	s := r.data[:n]
	r.data = r.data[n:]
	return s
}

// Decode runs the decoder over ctx, threading w through every emission step,
// and returns the final writer state.
func Decode(ctx DecoderContext, w WriteBytes) WriteBytes {
	fidData := newByteReader(ctx.FIDData())
	for idx := 0; idx < ctx.FontFaceCount(); idx++ {
		w = writeFont(ctx, idx, fidData, w)
	}
	return w
}

// DecodeToBytes is a convenience wrapper for tests and reference-CSS
// comparisons: it runs Decode into an AppendWriter and returns the bytes.
func DecodeToBytes(ctx DecoderContext) []byte {
	w := Decode(ctx, NewAppendWriter())
	return w.(AppendWriter).Bytes()
}

func writeFont(ctx DecoderContext, idx int, fidData *byteReader, w WriteBytes) WriteBytes {
	uranges := newByteReader(ctx.URangeData())
	for !uranges.isEmpty() {
		hash := fidData.readString()

		w = w.WriteBytes([]byte("@font-face{"))
		w = ctx.WriteFontFaceExt(idx, w)
		w = ctx.WriteFontFaceSrc(idx, hash, w)
		w = w.WriteBytes([]byte("unicode-range:"))

		nSingle := uranges.readVarint()
		var prev uint32
		for i := uint32(0); i < nSingle; i++ {
			if i != 0 {
				w = w.WriteBytes([]byte(","))
			}
			cp := prev + uranges.readVarint()
			w = w.WriteBytes([]byte("U+"))
			w = writeCodepoint(w, cp)
			prev = cp
		}

		nMulti := uranges.readVarint()
		if nSingle != 0 && nMulti != 0 {
			w = w.WriteBytes([]byte(","))
		}
		prev = 0
		for i := uint32(0); i < nMulti; i++ {
			if i != 0 {
				w = w.WriteBytes([]byte(","))
			}
			start := prev + uranges.readVarint()
			end := start + uranges.readVarint()
			w = w.WriteBytes([]byte("U+"))
			w = writeCodepoint(w, start)
			w = w.WriteBytes([]byte("-"))
			w = writeCodepoint(w, end)
			prev = end
		}

		w = w.WriteBytes([]byte(";}"))
	}
	return w
}

// StdContext is a ready-made DecoderContext over a slice of caller-defined
// face values, extracting the ext/src fragments with getter functions. It
// mirrors the Rust source's generic StdContext<W, T, FE, FS>.
type StdContext[T any] struct {
	URange []byte
	FID    []byte
	Faces  []T
	ExtFn  func(T) []byte
	SrcFn  func(face T, hash []byte) []byte
}

func (c *StdContext[T]) URangeData() []byte { return c.URange }
func (c *StdContext[T]) FIDData() []byte    { return c.FID }
func (c *StdContext[T]) FontFaceCount() int { return len(c.Faces) }

func (c *StdContext[T]) WriteFontFaceExt(idx int, w WriteBytes) WriteBytes {
	return w.WriteBytes(c.ExtFn(c.Faces[idx]))
}

func (c *StdContext[T]) WriteFontFaceSrc(idx int, hash []byte, w WriteBytes) WriteBytes {
	return w.WriteBytes(c.SrcFn(c.Faces[idx], hash))
}
