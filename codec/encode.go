package codec

import (
	"encoding/binary"

	"github.com/hsfzxjy/fontchan-go/urange"
)

func appendVarint(dst []byte, v uint32) []byte {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], uint64(v))
	return append(dst, tmp[:n]...)
}

// EncodeURangeData concatenates, in partition order, each URange's
// singleton codepoint deltas followed by its multi-span (start-delta,
// length) pairs — both varint-encoded, both reset to 0 at the start of
// their own list.
func EncodeURangeData(partition []*urange.URange) []byte {
	var out []byte
	for _, r := range partition {
		spans := r.Spans()
		single := spans[:r.SingleCount()]
		multi := spans[r.SingleCount():]

		out = appendVarint(out, uint32(len(single)))
		var prev uint32
		for _, sp := range single {
			cp := uint32(sp.Start)
			out = appendVarint(out, cp-prev)
			prev = cp
		}

		out = appendVarint(out, uint32(len(multi)))
		prev = 0
		for _, sp := range multi {
			start := uint32(sp.Start)
			end := uint32(sp.End)
			out = appendVarint(out, start-prev)
			out = appendVarint(out, end-start)
			prev = end
		}
	}
	return out
}

// EncodeFIDData concatenates varint(len) ++ bytes for each FID string, in
// the order given (the build's entry-minor iteration order, i.e.
// context-major so the decoder can read one face's FIDs contiguously).
func EncodeFIDData(fids []string) []byte {
	var out []byte
	for _, fid := range fids {
		out = appendVarint(out, uint32(len(fid)))
		out = append(out, fid...)
	}
	return out
}
