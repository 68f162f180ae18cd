package urange

// URange is an ordered collection of non-overlapping, non-adjacent USpans:
// singletons first (ascending), then multi-codepoint spans (ascending).
type URange struct {
	spans     []USpan
	numSingle int
}

// Spans returns the build-ordered span slice (singles, then multis). The
// caller must not mutate it.
func (r *URange) Spans() []USpan {
	return r.spans
}

// SingleCount returns the number of singleton spans.
func (r *URange) SingleCount() int {
	return r.numSingle
}

// MultiCount returns the number of multi-codepoint spans.
func (r *URange) MultiCount() int {
	return len(r.spans) - r.numSingle
}

// AsChars yields every code point covered by r in ascending order.
func (r *URange) AsChars() []rune {
	out := make([]rune, 0, r.approxSize())
	for _, sp := range r.spans {
		out = sp.chars(out)
	}
	return out
}

func (r *URange) approxSize() int {
	n := 0
	for _, sp := range r.spans {
		n += sp.Size()
	}
	return n
}

// RangeBytes returns the little-endian (start, end) u32 pairs of every span
// in build order, i.e. the bytes hashed into a Fingerprint. Endianness is
// fixed across platforms; see SPEC_FULL.md §9.
func (r *URange) RangeBytes() []byte {
	out := make([]byte, 0, len(r.spans)*8)
	var buf [4]byte
	putU32 := func(v uint32) {
		buf[0] = byte(v)
		buf[1] = byte(v >> 8)
		buf[2] = byte(v >> 16)
		buf[3] = byte(v >> 24)
		out = append(out, buf[:]...)
	}
	for _, sp := range r.spans {
		putU32(uint32(sp.Start))
		putU32(uint32(sp.End))
	}
	return out
}
