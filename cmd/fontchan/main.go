// Command fontchan is the build tool's CLI entry point: it reads a single
// TOML config file, partitions the combined character base of the
// configured fonts into Unicode-range buckets, subsets every (bucket, font) pair through the
// configured backend, and emits the JS loader + embedded WASM decoder
// that regenerate the resulting @font-face CSS in the browser.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/hsfzxjy/fontchan-go/build"
	"github.com/hsfzxjy/fontchan-go/common"
	"github.com/hsfzxjy/fontchan-go/config"
	"github.com/hsfzxjy/fontchan-go/decodermod"
	"github.com/hsfzxjy/fontchan-go/digestutil"
	"github.com/hsfzxjy/fontchan-go/jsloader"
	"github.com/hsfzxjy/fontchan-go/partition"
	"github.com/hsfzxjy/fontchan-go/urange"
)

func main() {
	common.SetLogger(common.NewConsoleLogger(common.LogLevelInfo))

	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <config.toml>\n", os.Args[0])
		os.Exit(1)
	}
	if err := run(os.Args[1]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, workDir, err := config.Load(configPath)
	if err != nil {
		return err
	}
	common.Log.Info("working directory: %s", workDir)

	fontFiles := make([]*digestutil.LazyFile, len(cfg.Fonts))
	for i, f := range cfg.Fonts {
		fontFiles[i] = f.InputPath
	}

	algo, err := partition.BuildAlgorithm(&partition.Context{FontFiles: fontFiles}, &cfg.Partition)
	if err != nil {
		return fmt.Errorf("build partitioner: %w", err)
	}
	ranges, err := algo.Partition()
	if err != nil {
		return fmt.Errorf("partition: %w", err)
	}
	common.Log.Info("partitioned into %d buckets", len(ranges))

	entries := make([]*build.Entry, len(ranges))
	for i, r := range ranges {
		entries[i] = &build.Entry{Name: strconv.Itoa(i), Range: r}
	}

	backend, err := build.BuildBackend(cfg.Builder.Font.Backend)
	if err != nil {
		return fmt.Errorf("build backend: %w", err)
	}

	fontContexts := make([]*build.FontContext, len(cfg.Fonts))
	faces := make([]jsloader.Face, len(cfg.Fonts))
	for i, f := range cfg.Fonts {
		fontContexts[i] = &build.FontContext{Source: f.InputPath, DestTmpl: f.OutputTmpl}
		faces[i] = jsloader.Face{Ext: f.CSS.Ext, Src: f.CSS.Src}
	}

	orch := build.NewOrchestrator(fontContexts, backend)
	results, err := orch.Build(context.Background(), entries)
	if err != nil {
		return fmt.Errorf("build subsets: %w", err)
	}

	uranges := make([]*urange.URange, len(ranges))
	copy(uranges, ranges)

	if err := jsloader.Build(cfg.Builder.JS.OutputPath, faces, uranges, results, decodermod.BuildTemplate()); err != nil {
		return fmt.Errorf("build loader: %w", err)
	}
	common.Log.Info("wrote loader %s", cfg.Builder.JS.OutputPath)
	return nil
}
