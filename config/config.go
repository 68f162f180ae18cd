// Package config decodes the TOML root configuration file (spec.md §6):
// the font entries, the builder's backend/output settings, and the
// partitioner configuration, plus working-directory resolution.
package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/hsfzxjy/fontchan-go/build"
	"github.com/hsfzxjy/fontchan-go/digestutil"
	"github.com/hsfzxjy/fontchan-go/partition"
	"github.com/hsfzxjy/fontchan-go/routine"
	"github.com/hsfzxjy/fontchan-go/workdir"
)

// CSSFragments is one font's raw CSS pieces: ext is spliced verbatim
// after the @font-face block's opening brace; src is the src: line,
// which may itself carry {%SHA%}/{%FID%} placeholders the runtime loader
// substitutes (see jsloader).
type CSSFragments struct {
	Ext string `toml:"ext"`
	Src string `toml:"src"`
}

// FontConfig is one `[[fonts]]` table.
type FontConfig struct {
	CSS        CSSFragments        `toml:"css"`
	InputPath  *digestutil.LazyFile `toml:"input_path"`
	OutputTmpl *build.PathTemplate `toml:"output_tmpl"`
}

// JSBuilderConfig is the `[builder.js]` table.
type JSBuilderConfig struct {
	OutputPath string `toml:"output_path"`
}

// FontBuilderConfig is the `[builder.font]` table.
type FontBuilderConfig struct {
	Backend *routine.Routine `toml:"backend"`
}

// BuilderConfig is the `[builder]` table.
type BuilderConfig struct {
	JS   JSBuilderConfig   `toml:"js"`
	Font FontBuilderConfig `toml:"font"`
}

// Config is the decoded TOML root document.
type Config struct {
	WorkDir   string            `toml:"work_dir"`
	Fonts     []FontConfig      `toml:"fonts"`
	Builder   BuilderConfig     `toml:"builder"`
	Partition partition.Config  `toml:"partition"`
}

// Load reads and strictly decodes the TOML config at path (unknown
// fields are rejected, per spec.md §6), then resolves and chdirs into
// its working directory. It returns the decoded config and the resolved
// working directory.
func Load(path string) (*Config, string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	md, err := toml.NewDecoder(bytes.NewReader(content)).Decode(&cfg)
	if err != nil {
		return nil, "", fmt.Errorf("parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, "", fmt.Errorf("parse config %s: unknown fields %v", path, undecoded)
	}

	dir, err := workdir.Chdir("", cfg.WorkDir, path)
	if err != nil {
		return nil, "", err
	}

	return &cfg, dir, nil
}
