// Package partition groups the usage-data providers (font cmaps, a
// character-frequency preset, and glob-discovered HTML pages) and the
// scoring algorithm that orders a font's code points into fixed-size
// URange buckets.
package partition

import (
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/net/html"

	"github.com/hsfzxjy/fontchan-go/routine"
)

// Page is the set of characters a single HTML document renders.
type Page map[rune]struct{}

// PagesProvider supplies the set of pages the partitioner scores against.
type PagesProvider interface {
	Pages() ([]Page, error)
}

// GlobPagesProvider discovers pages by walking a doublestar glob pattern
// (matched against the process's working directory, already resolved by
// workdir.Chdir before the build starts) and extracting the text content
// of every matched HTML file.
type GlobPagesProvider struct {
	pattern string

	cache []Page
	done  bool
}

func newGlobPagesProvider(_ *Context, rt routine.Routine) (PagesProvider, error) {
	pattern, err := rt.RequireArg()
	if err != nil {
		return nil, err
	}
	return &GlobPagesProvider{pattern: pattern}, nil
}

// Pages matches the glob pattern, reads and extracts text from every file,
// and caches the result for subsequent calls.
func (p *GlobPagesProvider) Pages() ([]Page, error) {
	if p.done {
		return p.cache, nil
	}
	matches, err := doublestar.FilepathGlob(p.pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", p.pattern, err)
	}
	pages := make([]Page, 0, len(matches))
	for _, path := range matches {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read page %s: %w", path, err)
		}
		page, err := extractPage(content)
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", path, err)
		}
		pages = append(pages, page)
	}
	p.cache = pages
	p.done = true
	return pages, nil
}

// extractPage walks the parsed HTML tree and collects every visible
// character from text nodes, skipping <script> and <style> bodies.
func extractPage(content []byte) (Page, error) {
	root, err := html.Parse(strings.NewReader(string(content)))
	if err != nil {
		return nil, err
	}
	page := Page{}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			for _, r := range n.Data {
				page[r] = struct{}{}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return page, nil
}

var pagesRegistry = routine.NewRegistry[*Context, PagesProvider]().
	Add("glob", newGlobPagesProvider)
