// Package build implements the content-addressed build graph: per-output
// fingerprinting, the destination filename template, the prior-output
// History used for incrementality and garbage collection, and the
// parallel orchestrator that drives an external subsetting backend over
// every (entry, font) pair.
package build

import (
	"fmt"
	"path/filepath"
	"strings"
)

// fidMetavar is the single metavariable an output_tmpl's filename must
// contain exactly once; its parent directory must contain none.
const fidMetavar = "<FID>"

// PathTemplate is a filesystem path template whose filename contains
// exactly one <FID> placeholder. It doubles as the matcher History uses
// to recognize a directory entry as belonging to this template's output
// slot (see matchToken).
type PathTemplate struct {
	dir    string
	prefix string
	suffix string
}

// ParsePathTemplate validates and parses a raw output_tmpl string.
func ParsePathTemplate(raw string) (*PathTemplate, error) {
	dir := filepath.Dir(raw)
	if dir == "" {
		dir = "."
	}
	name := filepath.Base(raw)
	if name == "." || name == string(filepath.Separator) {
		return nil, fmt.Errorf("output_tmpl %q: file name not found", raw)
	}
	if strings.Contains(dir, fidMetavar) {
		return nil, fmt.Errorf("output_tmpl %q: parent directory contains metavariable %q", raw, fidMetavar)
	}
	if strings.Count(name, fidMetavar) != 1 {
		return nil, fmt.Errorf("output_tmpl %q: file name must contain exactly one instance of %q", raw, fidMetavar)
	}
	idx := strings.Index(name, fidMetavar)
	return &PathTemplate{
		dir:    dir,
		prefix: name[:idx],
		suffix: name[idx+len(fidMetavar):],
	}, nil
}

// UnmarshalText lets *PathTemplate sit directly in a TOML-decoded config
// struct.
func (t *PathTemplate) UnmarshalText(text []byte) error {
	parsed, err := ParsePathTemplate(string(text))
	if err != nil {
		return err
	}
	*t = *parsed
	return nil
}

// Dir returns the template's parent directory.
func (t *PathTemplate) Dir() string {
	return t.dir
}

// Render substitutes fid for <FID> and joins the result onto Dir.
func (t *PathTemplate) Render(fid string) string {
	return filepath.Join(t.dir, t.prefix+fid+t.suffix)
}

// matchToken classifies name (a bare file name, no directory component)
// against the template: it matches iff name == prefix+stem+suffix and
// stem contains at least one '_'. The returned token is the portion of
// stem before its last '_'.
func (t *PathTemplate) matchToken(name string) (string, bool) {
	if !strings.HasPrefix(name, t.prefix) || !strings.HasSuffix(name, t.suffix) {
		return "", false
	}
	if len(name) < len(t.prefix)+len(t.suffix) {
		return "", false
	}
	stem := name[len(t.prefix) : len(name)-len(t.suffix)]
	idx := strings.LastIndexByte(stem, '_')
	if idx < 0 {
		return "", false
	}
	return stem[:idx], true
}
