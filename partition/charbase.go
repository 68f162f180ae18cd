package partition

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/unidoc/unitype"

	"github.com/hsfzxjy/fontchan-go/digestutil"
	"github.com/hsfzxjy/fontchan-go/routine"
)

// CharBaseProvider supplies the mandatory set of code points a font must
// cover — typically read straight from the font's own cmap table.
type CharBaseProvider interface {
	CharBase() (map[rune]struct{}, error)
}

// FromFonts reads the cmap of every configured font and unions their
// covered code points. Parsing happens at most once per process: the
// backing LazyFile digests are already cached, and this provider adds its
// own once-guard around the (possibly expensive) cmap walk.
type FromFonts struct {
	fonts []*digestutil.LazyFile

	once  sync.Once
	chars map[rune]struct{}
	err   error
}

func newFromFonts(ctx *Context, _ routine.Routine) (CharBaseProvider, error) {
	return &FromFonts{fonts: ctx.FontFiles}, nil
}

// CharBase parses each font with unitype and unions the rune set its cmap
// maps to a glyph.
func (p *FromFonts) CharBase() (map[rune]struct{}, error) {
	p.once.Do(func() {
		chars := map[rune]struct{}{}
		for _, font := range p.fonts {
			content, err := font.Content()
			if err != nil {
				p.err = fmt.Errorf("read font %s: %w", font.Path(), err)
				return
			}
			if err := dumpCmap(content, chars); err != nil {
				p.err = fmt.Errorf("read cmap of %s: %w", font.Path(), err)
				return
			}
		}
		p.chars = chars
	})
	return p.chars, p.err
}

// dumpCmap parses a TrueType/OpenType font with unitype and inserts every
// code point its Unicode cmap subtable maps to a glyph.
func dumpCmap(content []byte, out map[rune]struct{}) error {
	fnt, err := unitype.Parse(bytes.NewReader(content))
	if err != nil {
		return err
	}
	runeToGID, err := fnt.GetRuneGIDMap()
	if err != nil {
		return fmt.Errorf("unsupported cmap encoding: %w", err)
	}
	for r := range runeToGID {
		out[r] = struct{}{}
	}
	return nil
}

var charBaseRegistry = routine.NewRegistry[*Context, CharBaseProvider]().
	Add("from_fonts", newFromFonts).
	WithDefault(routine.Routine{Name: "from_fonts"})
