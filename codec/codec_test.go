package codec_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hsfzxjy/fontchan-go/codec"
	"github.com/hsfzxjy/fontchan-go/urange"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	r := urange.FromChars([]rune("ab")).Build()

	urangeData := codec.EncodeURangeData([]*urange.URange{r})
	fidData := codec.EncodeFIDData([]string{"0_abcdef01"})

	ctx := &codec.StdContext[struct{}]{
		URange: urangeData,
		FID:    fidData,
		Faces:  []struct{}{{}},
		ExtFn:  func(struct{}) []byte { return nil },
		SrcFn: func(_ struct{}, hash []byte) []byte {
			require.Equal(t, "0_abcdef01", string(hash))
			return []byte("src:url(x);")
		},
	}

	got := codec.DecodeToBytes(ctx)
	require.Equal(t, "@font-face{src:url(x);unicode-range:U+61-62;}", string(got))
}

func TestEncodeDecodeMultiFaceAndSingletons(t *testing.T) {
	r1 := urange.FromChars([]rune("A")).Build()
	r2 := urange.FromChars([]rune("xz")).Build()

	urangeData := codec.EncodeURangeData([]*urange.URange{r1, r2})
	// Two faces × two ranges: the decoder reads one FID per range per face.
	fidData := codec.EncodeFIDData([]string{"fid0", "fid1", "fid2", "fid3"})

	ctx := &codec.StdContext[int]{
		URange: urangeData,
		FID:    fidData,
		Faces:  []int{0, 1},
		ExtFn:  func(i int) []byte { return []byte("font-family:f;") },
		SrcFn: func(i int, hash []byte) []byte {
			return append([]byte("src:url("), append(hash, ");"...)...)
		},
	}

	got := string(codec.DecodeToBytes(ctx))
	require.Contains(t, got, "unicode-range:U+41;")
	require.Contains(t, got, "unicode-range:U+78,U+7a;")
	require.Contains(t, got, "src:url(fid0);")
	require.Contains(t, got, "src:url(fid1);")
}

func TestRawWriterAndCounterWriterAgree(t *testing.T) {
	r := urange.FromChars([]rune("ab")).Build()
	urangeData := codec.EncodeURangeData([]*urange.URange{r})
	fidData := codec.EncodeFIDData([]string{"f"})

	ctx := &codec.StdContext[struct{}]{
		URange: urangeData,
		FID:    fidData,
		Faces:  []struct{}{{}},
		ExtFn:  func(struct{}) []byte { return nil },
		SrcFn:  func(struct{}, []byte) []byte { return nil },
	}

	n := codec.Decode(ctx, codec.NewCounterWriter()).(codec.CounterWriter).Value()

	buf := make([]byte, n)
	w := codec.Decode(ctx, codec.NewRawWriter(buf)).(codec.RawWriter)
	require.Equal(t, n, w.Offset())
	require.Equal(t, codec.DecodeToBytes(ctx), buf)
}
