package build

import (
	"github.com/hsfzxjy/fontchan-go/digestutil"
	"github.com/hsfzxjy/fontchan-go/urange"
)

// Entry is one partition bucket to subset: its bucket name (the decimal
// entry index, per spec.md §3) and its URange.
type Entry struct {
	Name  string
	Range *urange.URange
}

// FontContext is one configured font: its source file and the output
// path template its subsets render through.
type FontContext struct {
	Source   *digestutil.LazyFile
	DestTmpl *PathTemplate
}
