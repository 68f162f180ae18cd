package decodermod

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tetratelabs/wazero"

	"github.com/hsfzxjy/fontchan-go/decodermod/wasmbin"
)

func TestRewritePatchesDataSegmentAndMemory(t *testing.T) {
	template := BuildTemplate()
	urangeData := []byte{1, 2, 3, 4, 5}
	fidData := []byte{9, 9}

	out, err := Rewrite(template, urangeData, fidData, 70000)
	require.NoError(t, err)

	sections, err := wasmbin.ParseModule(out)
	require.NoError(t, err)

	// __data_end 1044 + 70000 heap + 7 stream bytes = 71051 → 2 pages.
	require.Equal(t, uint32(2), memoryMinPages(t, sections))

	idx, base, payload, err := findActiveDataSegment(sections)
	require.NoError(t, err)
	require.GreaterOrEqual(t, idx, 0)

	globals, err := parseGlobals(sections)
	require.NoError(t, err)
	addrs, err := exportedGlobalAddrs(sections, globals)
	require.NoError(t, err)

	urangeStart := int(addrs[1]) - base
	urangeLen := binary.LittleEndian.Uint32(payload[int(addrs[2])-base:])
	require.Equal(t, uint32(len(urangeData)), urangeLen)
	require.Equal(t, urangeData, payload[urangeStart:urangeStart+len(urangeData)])

	fidStart := int(addrs[3]) - base
	fidLen := binary.LittleEndian.Uint32(payload[int(addrs[4])-base:])
	require.Equal(t, uint32(len(fidData)), fidLen)
	require.Equal(t, fidData, payload[fidStart:fidStart+len(fidData)])

	heapStart := int(addrs[5]) - base
	require.Equal(t, fidStart+len(fidData), heapStart)
}

func TestRewriteNeverLowersMemory(t *testing.T) {
	template := BuildTemplate()

	out1, err := Rewrite(template, []byte{1, 2, 3}, []byte{4, 5}, 200000)
	require.NoError(t, err)
	sections1, err := wasmbin.ParseModule(out1)
	require.NoError(t, err)
	pages1 := memoryMinPages(t, sections1)

	out2, err := Rewrite(out1, []byte{1}, []byte{2}, 0)
	require.NoError(t, err)
	sections2, err := wasmbin.ParseModule(out2)
	require.NoError(t, err)
	pages2 := memoryMinPages(t, sections2)

	require.GreaterOrEqual(t, pages2, pages1)
}

func memoryMinPages(t *testing.T, sections []wasmbin.Section) uint32 {
	t.Helper()
	data, ok := sectionData(sections, wasmbin.SecMemory)
	require.True(t, ok)
	_, rest, err := wasmbin.ReadCount(data)
	require.NoError(t, err)
	rest = rest[1:] // limits flag
	min, _, err := wasmbin.ReadUvarint(rest)
	require.NoError(t, err)
	return uint32(min)
}

// TestRewrittenModuleValidates runs the patched module through wazero's
// compiler, which performs full WASM validation — the only check in this
// package that a real runtime, not just this package's own parser,
// accepts the bytes produced.
func TestRewrittenModuleValidates(t *testing.T) {
	out, err := Rewrite(BuildTemplate(), []byte{1, 2, 3}, []byte{4, 5, 6}, 65536)
	require.NoError(t, err)

	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	compiled, err := rt.CompileModule(ctx, out)
	require.NoError(t, err)
	require.NotNil(t, compiled)
}
