package build

import (
	"fmt"
	"os"
	"path/filepath"
)

// tokenKey identifies "the same logical slot across content changes": a
// directory, the template that produced files in it, and the token stem
// (the portion of a matched file name before its last '_').
type tokenKey struct {
	dir   string
	tmpl  *PathTemplate
	token string
}

// History indexes every existing file in every distinct destination
// directory by (directory, token), so the orchestrator can garbage
// collect superseded outputs of a (entry, font) slot whose digest changed.
type History struct {
	files map[tokenKey][]string
}

// BuildHistory scans every distinct destination directory named by
// contexts and classifies its regular files against each of that
// directory's templates.
func BuildHistory(contexts []*FontContext) (*History, error) {
	byDir := map[string][]*PathTemplate{}
	for _, ctx := range contexts {
		dir := ctx.DestTmpl.Dir()
		byDir[dir] = append(byDir[dir], ctx.DestTmpl)
	}

	h := &History{files: map[tokenKey][]string{}}
	for dir, tmpls := range byDir {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("history: read dir %s: %w", dir, err)
		}
		for _, e := range entries {
			full := filepath.Join(dir, e.Name())
			// os.Stat follows symlinks on every platform, so a
			// file-or-file-symlink test collapses to one IsRegular
			// check after Stat (see SPEC_FULL.md §9).
			info, err := os.Stat(full)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
			for _, t := range tmpls {
				token, ok := t.matchToken(e.Name())
				if !ok {
					continue
				}
				k := tokenKey{dir: dir, tmpl: t, token: token}
				h.files[k] = append(h.files[k], full)
				break
			}
		}
	}
	return h, nil
}

// Lookup returns the previously existing paths that occupy the same
// logical slot as dest, if any.
func (h *History) Lookup(dest *DestInfo) []string {
	token, ok := dest.Template.matchToken(filepath.Base(dest.Path))
	if !ok {
		return nil
	}
	return h.files[tokenKey{dir: dest.Template.Dir(), tmpl: dest.Template, token: token}]
}
