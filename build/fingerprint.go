package build

import (
	"github.com/hsfzxjy/fontchan-go/digestutil"
	"github.com/hsfzxjy/fontchan-go/urange"
)

// Fingerprint computes the content digest of one (font, range, backend)
// output: SHA-512 over the font file's own digest, the range's
// little-endian (start,end) byte pairs, and the backend's identity bytes
// (so switching subsetter invalidates every prior output).
func Fingerprint(fontDigest []byte, r *urange.URange, backendIdentity []byte) []byte {
	return digestutil.New().
		Push(fontDigest).
		Push(r.RangeBytes()).
		Push(backendIdentity).
		Bytes()
}

// FID renders the per-bucket font identifier embedded in CSS and in the
// fid_data stream: "{entryName}_{digest-base64[:8]}".
func FID(entryName string, digest []byte) string {
	b64 := digestutil.EncodeDigest(digest)
	if len(b64) > 8 {
		b64 = b64[:8]
	}
	return entryName + "_" + b64
}
