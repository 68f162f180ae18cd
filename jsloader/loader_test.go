package jsloader_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hsfzxjy/fontchan-go/build"
	"github.com/hsfzxjy/fontchan-go/decodermod"
	"github.com/hsfzxjy/fontchan-go/digestutil"
	"github.com/hsfzxjy/fontchan-go/jsloader"
	"github.com/hsfzxjy/fontchan-go/urange"
)

type fakeBackend struct{}

func (fakeBackend) Identity() []byte { return []byte("fake") }

func (fakeBackend) Subset(_ context.Context, sourcePath string, _ []rune, destTmpPath string) error {
	return os.WriteFile(destTmpPath, []byte(sourcePath), 0o644)
}

func buildTestResults(t *testing.T, dir string, entryCount int) (*build.Results, []*urange.URange) {
	t.Helper()
	tmpl, err := build.ParsePathTemplate(filepath.Join(dir, "f_<FID>.woff2"))
	require.NoError(t, err)
	fontPath := filepath.Join(dir, "f.ttf")
	require.NoError(t, os.WriteFile(fontPath, []byte("font-bytes"), 0o644))

	contexts := []*build.FontContext{{Source: digestutil.NewLazyFile(fontPath), DestTmpl: tmpl}}
	ranges := make([]*urange.URange, entryCount)
	entries := make([]*build.Entry, entryCount)
	letters := "abcdefghij"
	for i := 0; i < entryCount; i++ {
		ranges[i] = urange.FromChars([]rune{rune(letters[i])}).Build()
		entries[i] = &build.Entry{Name: string(rune('0' + i)), Range: ranges[i]}
	}

	orch := build.NewOrchestrator(contexts, fakeBackend{})
	results, err := orch.Build(context.Background(), entries)
	require.NoError(t, err)
	return results, ranges
}

func TestBuildWritesLoaderArtifact(t *testing.T) {
	results, ranges := buildTestResults(t, t.TempDir(), 2)
	faces := []jsloader.Face{
		{Ext: `font-family:"Body";`, Src: `src:url("/fonts/{%FID%}.woff2?v={%SHA%}");`},
	}

	destPath := filepath.Join(t.TempDir(), "loader.js")
	err := jsloader.Build(destPath, faces, ranges, results, decodermod.BuildTemplate())
	require.NoError(t, err)

	content, err := os.ReadFile(destPath)
	require.NoError(t, err)
	js := string(content)

	require.Contains(t, js, "WebAssembly.instantiate")
	require.Contains(t, js, `font-family:"Body";`)
	require.NotContains(t, js, "{{WASM_BASE64}}")
	require.NotContains(t, js, "{{FONT_SPECS}}")
	require.NotContains(t, js, "{{SHA}}")
	// The runtime substitution tokens in the loader's own decoding logic
	// must survive untouched; only the build-time metavariables above are
	// substituted by Build/render.
	require.Contains(t, js, `.split("{%SHA%}")`)
}

func TestBuildFontSpecsJSONRoundTrips(t *testing.T) {
	results, ranges := buildTestResults(t, t.TempDir(), 1)
	faces := []jsloader.Face{{Ext: "e", Src: "s"}}

	destPath := filepath.Join(t.TempDir(), "loader.js")
	require.NoError(t, jsloader.Build(destPath, faces, ranges, results, decodermod.BuildTemplate()))

	content, err := os.ReadFile(destPath)
	require.NoError(t, err)

	start := strings.Index(string(content), "var FONT_SPECS = ")
	require.GreaterOrEqual(t, start, 0)
	rest := string(content)[start+len("var FONT_SPECS = "):]
	end := strings.Index(rest, ";\n")
	require.GreaterOrEqual(t, end, 0)

	var decoded []jsloader.Face
	require.NoError(t, json.Unmarshal([]byte(rest[:end]), &decoded))
	require.Equal(t, faces, decoded)
}
