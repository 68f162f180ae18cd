package build_test

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hsfzxjy/fontchan-go/build"
	"github.com/hsfzxjy/fontchan-go/digestutil"
	"github.com/hsfzxjy/fontchan-go/urange"
)

type fakeBackend struct {
	calls int32
}

func (f *fakeBackend) Identity() []byte { return []byte("fake-backend") }

func (f *fakeBackend) Subset(_ context.Context, sourcePath string, chars []rune, destTmpPath string) error {
	atomic.AddInt32(&f.calls, 1)
	return os.WriteFile(destTmpPath, []byte(sourcePath), 0o644)
}

func writeFont(t *testing.T, dir, name, content string) *digestutil.LazyFile {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return digestutil.NewLazyFile(path)
}

func TestOrchestratorBuildPreservesEntryMajorOrder(t *testing.T) {
	dir := t.TempDir()
	tmplA, err := build.ParsePathTemplate(filepath.Join(dir, "a_<FID>.woff2"))
	require.NoError(t, err)
	tmplB, err := build.ParsePathTemplate(filepath.Join(dir, "b_<FID>.woff2"))
	require.NoError(t, err)

	fontA := writeFont(t, dir, "a.ttf", "font-a")
	fontB := writeFont(t, dir, "b.ttf", "font-b")

	contexts := []*build.FontContext{
		{Source: fontA, DestTmpl: tmplA},
		{Source: fontB, DestTmpl: tmplB},
	}
	backend := &fakeBackend{}
	orch := build.NewOrchestrator(contexts, backend)

	entries := []*build.Entry{
		{Name: "0", Range: urange.FromChars([]rune("a")).Build()},
		{Name: "1", Range: urange.FromChars([]rune("b")).Build()},
		{Name: "2", Range: urange.FromChars([]rune("c")).Build()},
	}

	results, err := orch.Build(context.Background(), entries)
	require.NoError(t, err)

	all := results.All()
	require.Len(t, all, 6)
	require.Equal(t, int32(6), backend.calls)

	for ei := range entries {
		for ci := range contexts {
			idx := ei*len(contexts) + ci
			require.Contains(t, all[idx].FID, entries[ei].Name+"_")
		}
	}
}

func TestOrchestratorBuildSkipsUnchangedOutputs(t *testing.T) {
	dir := t.TempDir()
	tmpl, err := build.ParsePathTemplate(filepath.Join(dir, "f_<FID>.woff2"))
	require.NoError(t, err)
	font := writeFont(t, dir, "f.ttf", "font-content")

	contexts := []*build.FontContext{{Source: font, DestTmpl: tmpl}}
	backend := &fakeBackend{}
	orch := build.NewOrchestrator(contexts, backend)
	entries := []*build.Entry{{Name: "0", Range: urange.FromChars([]rune("a")).Build()}}

	_, err = orch.Build(context.Background(), entries)
	require.NoError(t, err)
	require.Equal(t, int32(1), backend.calls)

	_, err = orch.Build(context.Background(), entries)
	require.NoError(t, err)
	require.Equal(t, int32(1), backend.calls, "second build of identical inputs must not re-invoke the backend")
}

func TestOrchestratorBuildGarbageCollectsStaleOutput(t *testing.T) {
	dir := t.TempDir()
	tmpl, err := build.ParsePathTemplate(filepath.Join(dir, "f_<FID>.woff2"))
	require.NoError(t, err)
	font := writeFont(t, dir, "f.ttf", "v1")

	contexts := []*build.FontContext{{Source: font, DestTmpl: tmpl}}
	backend := &fakeBackend{}
	orch := build.NewOrchestrator(contexts, backend)
	entries := []*build.Entry{{Name: "0", Range: urange.FromChars([]rune("a")).Build()}}

	_, err = orch.Build(context.Background(), entries)
	require.NoError(t, err)

	matches, err := filepath.Glob(filepath.Join(dir, "f_*.woff2"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	firstPath := matches[0]

	require.NoError(t, os.WriteFile(font.Path(), []byte("v2"), 0o644))
	font2 := digestutil.NewLazyFile(font.Path())
	contexts2 := []*build.FontContext{{Source: font2, DestTmpl: tmpl}}
	orch2 := build.NewOrchestrator(contexts2, backend)

	_, err = orch2.Build(context.Background(), entries)
	require.NoError(t, err)

	_, statErr := os.Stat(firstPath)
	require.True(t, os.IsNotExist(statErr), "stale output for the old digest should have been removed")

	matches, err = filepath.Glob(filepath.Join(dir, "f_*.woff2"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
}
