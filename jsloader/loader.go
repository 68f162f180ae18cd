// Package jsloader assembles the final browser-facing artifact: the two
// codec streams, the rewritten WASM decoder module sized to hold them,
// and the fixed JS glue that ties them together, written atomically to
// its destination.
package jsloader

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/natefinch/atomic"

	"github.com/hsfzxjy/fontchan-go/build"
	"github.com/hsfzxjy/fontchan-go/codec"
	"github.com/hsfzxjy/fontchan-go/decodermod"
	"github.com/hsfzxjy/fontchan-go/digestutil"
	"github.com/hsfzxjy/fontchan-go/urange"
)

// heapHeadroom is added on top of the decoder's dry-run output size when
// sizing the WASM module's heap; load-bearing for the decoder's bump
// allocator (see spec.md §9 "Open question — dry-run heap sizing").
const heapHeadroom = 65536

// Face is one configured font's CSS fragments, serialized verbatim into
// the artifact's font_specs JSON and consulted by the decoder's
// write_ext/write_src callbacks.
type Face struct {
	Ext string `json:"ext"`
	Src string `json:"src"`
}

// Build renders the complete loader artifact to destPath: it encodes
// ranges/fids into the two codec streams, dry-runs the decoder with a
// counter writer to size the WASM heap, rewrites decoderTemplate to embed
// the streams, computes the artifact's SHA-512 (custom alphabet, see
// digestutil), and atomically writes the rendered JS.
func Build(destPath string, faces []Face, ranges []*urange.URange, results *build.Results, decoderTemplate []byte) error {
	urangeData := codec.EncodeURangeData(ranges)

	fids := make([]string, 0, len(results.EntryMinorIter()))
	for _, r := range results.EntryMinorIter() {
		fids = append(fids, r.FID)
	}
	fidData := codec.EncodeFIDData(fids)

	decodeCtx := &codec.StdContext[Face]{
		URange: urangeData,
		FID:    fidData,
		Faces:  faces,
		ExtFn:  func(f Face) []byte { return []byte(f.Ext) },
		SrcFn: func(f Face, hash []byte) []byte {
			return []byte(strings.ReplaceAll(f.Src, "{%FID%}", string(hash)))
		},
	}
	counted := codec.Decode(decodeCtx, codec.NewCounterWriter()).(codec.CounterWriter)
	heapSize := counted.Value() + heapHeadroom

	wasmBin, err := decodermod.Rewrite(decoderTemplate, urangeData, fidData, heapSize)
	if err != nil {
		return fmt.Errorf("jsloader: rewrite decoder module: %w", err)
	}

	fontSpecsJSON, err := json.Marshal(faces)
	if err != nil {
		return fmt.Errorf("jsloader: marshal font specs: %w", err)
	}

	sha := digestutil.New().Push(wasmBin).Push(fontSpecsJSON).Base64()

	js := render(base64.StdEncoding.EncodeToString(wasmBin), string(fontSpecsJSON), sha)

	if err := atomic.WriteFile(destPath, strings.NewReader(js)); err != nil {
		return fmt.Errorf("jsloader: write %s: %w", destPath, err)
	}
	return nil
}
