// Package urange provides the canonical ordered Unicode code point range
// representation used throughout fontchan-go: USpan is a single inclusive
// [start, end] pair, and URange is the merged, sorted, single/multi split
// collection built from a Builder.
package urange

import "sort"

// USpan is an inclusive code point range [Start, End] with Start <= End.
type USpan struct {
	Start rune
	End   rune
}

// IsSingle reports whether the span covers exactly one code point.
func (s USpan) IsSingle() bool {
	return s.Start == s.End
}

// Size returns the number of code points covered by the span.
func (s USpan) Size() int {
	return int(s.End-s.Start) + 1
}

// Less orders spans first by Start, then by End.
func (s USpan) Less(o USpan) bool {
	if s.Start != o.Start {
		return s.Start < o.Start
	}
	return s.End < o.End
}

// mergeWith returns the union of s and o if they overlap or touch (the gap
// between them is <= 0), and false otherwise. The receiver order does not
// matter; the smaller-starting span is used as the left side.
func (s USpan) mergeWith(o USpan) (USpan, bool) {
	lhs, rhs := s, o
	if rhs.Less(lhs) {
		lhs, rhs = rhs, lhs
	}
	if uint32(lhs.End)+1 < uint32(rhs.Start) {
		return USpan{}, false
	}
	end := lhs.End
	if rhs.End > end {
		end = rhs.End
	}
	return USpan{Start: lhs.Start, End: end}, true
}

// chars appends every code point in the span, in ascending order, to dst.
// End is bounded by U+10FFFF (see ParseCSSSyntax), so the loop cannot
// overflow rune's underlying int32.
func (s USpan) chars(dst []rune) []rune {
	for c := s.Start; c <= s.End; c++ {
		dst = append(dst, c)
	}
	return dst
}

// Builder accumulates raw spans (or single characters) and produces a
// normalized URange via Build.
type Builder struct {
	spans []USpan
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// FromChars seeds a Builder with one singleton span per character.
func FromChars(chars []rune) *Builder {
	b := &Builder{spans: make([]USpan, len(chars))}
	for i, c := range chars {
		b.spans[i] = USpan{Start: c, End: c}
	}
	return b
}

// Push adds a raw span to the builder and returns the builder for chaining.
func (b *Builder) Push(span USpan) *Builder {
	b.spans = append(b.spans, span)
	return b
}

// Build sorts, merges touching/overlapping spans, and stable-partitions the
// result so singles precede multis, recording the singleton count.
func (b *Builder) Build() *URange {
	spans := append([]USpan(nil), b.spans...)
	sort.Slice(spans, func(i, j int) bool { return spans[i].Less(spans[j]) })

	merged := make([]USpan, 0, len(spans))
	for _, sp := range spans {
		if n := len(merged); n > 0 {
			if m, ok := merged[n-1].mergeWith(sp); ok {
				merged[n-1] = m
				continue
			}
		}
		merged = append(merged, sp)
	}

	rank := func(sp USpan) int {
		if sp.IsSingle() {
			return 0
		}
		return 1
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return rank(merged[i]) < rank(merged[j])
	})

	numSingle := 0
	for numSingle < len(merged) && merged[numSingle].IsSingle() {
		numSingle++
	}

	return &URange{spans: merged, numSingle: numSingle}
}
