package partition

import (
	"fmt"
	"math"
	"sort"

	"github.com/hsfzxjy/fontchan-go/routine"
	"github.com/hsfzxjy/fontchan-go/urange"
)

// algorithmContext bundles the partitioner's target bucket size and
// whichever of the three providers the config named.
type algorithmContext struct {
	partSize PartSize
	charBase CharBaseProvider
	charFreq CharFreqProvider
	pages    PagesProvider
}

// algorithmImpl is the strategy interface every partitioner algorithm
// implements; today there is exactly one (SortByOccurrence), but the
// registry indirection keeps the door open the way the source's trait
// object did.
type algorithmImpl interface {
	partition(ctx *algorithmContext) ([]*urange.URange, error)
}

// doPartition slices an already-scored, ascending rune sequence into
// ⌈len(chars)/num⌉ chunks of num characters each, the final chunk taking
// whatever remainder is left (always <= num), and coalesces each chunk
// into a URange.
func doPartition(chars []rune, num int) []*urange.URange {
	if num <= 0 || len(chars) == 0 {
		return nil
	}
	nChunks := (len(chars) + num - 1) / num
	res := make([]*urange.URange, 0, nChunks)
	pos := 0
	for i := 0; i < nChunks; i++ {
		end := pos + num
		if end > len(chars) {
			end = len(chars)
		}
		res = append(res, urange.FromChars(chars[pos:end]).Build())
		pos = end
	}
	return res
}

// SortByOccurrence is the only shipped algorithm: it scores every
// candidate code point per the table in §4.2 and chunks the result.
type SortByOccurrence struct{}

func newSortByOccurrence(ctx *algorithmContext, _ routine.Routine) (algorithmImpl, error) {
	if ctx.charBase == nil && ctx.charFreq == nil && ctx.pages == nil {
		return nil, fmt.Errorf("partition: no input data (char_base, char_freq and pages all absent)")
	}
	return SortByOccurrence{}, nil
}

// caseWithPagesOnly scores each character by -occurrence count across all
// pages: more common sorts earlier (more negative).
func caseWithPagesOnly(num int, pages []Page) []*urange.URange {
	stats := map[rune]int{}
	for _, page := range pages {
		for ch := range page {
			stats[ch]--
		}
	}
	return sortAndPartition(num, stats)
}

// liftASCII forces every code point in U+0000..U+00FF to math.MinInt so
// Latin-1 text is always in the hottest (earliest) bucket.
func liftASCII(stats map[rune]int) {
	for r := rune(0); r <= 0xff; r++ {
		if _, ok := stats[r]; ok {
			stats[r] = math.MinInt
		}
	}
}

// caseWithPagesGeneric handles every combination that includes page data
// plus at least one of char_base/char_freq: seed scores from base (max
// int) and freq (list position), then erode each by page occurrences,
// capping the "drop to 0 then decrement" behavior the source specifies.
func caseWithPagesGeneric(num int, pages []Page, charFreq []rune, charBase map[rune]struct{}) []*urange.URange {
	stats := map[rune]int{}
	for ch := range charBase {
		stats[ch] = math.MaxInt
	}
	for i, ch := range charFreq {
		if charBase != nil {
			if _, ok := charBase[ch]; !ok {
				continue
			}
		}
		stats[ch] = i
	}
	for _, page := range pages {
		for ch := range page {
			cur, ok := stats[ch]
			if !ok {
				continue
			}
			if cur > 0 {
				cur = 0
			}
			stats[ch] = cur - 1
		}
	}
	liftASCII(stats)
	return sortAndPartition(num, stats)
}

func caseWithCharFreqOnly(num int, charFreq []rune) []*urange.URange {
	return doPartition(append([]rune(nil), charFreq...), num)
}

// caseWithCharFreqCharBase orders char_base∩char_freq in frequency order
// first, then the remaining char_base characters in ascending code-point
// order, deduplicating by keeping each character's first (freq-ordered)
// occurrence.
func caseWithCharFreqCharBase(num int, charFreq []rune, charBase map[rune]struct{}) []*urange.URange {
	type keyed struct {
		rank int
		ch   rune
	}
	seq := make([]keyed, 0, len(charFreq)+len(charBase))
	for i, ch := range charFreq {
		if _, ok := charBase[ch]; ok {
			seq = append(seq, keyed{rank: i, ch: ch})
		}
	}
	for ch := range charBase {
		seq = append(seq, keyed{rank: math.MaxInt, ch: ch})
	}
	sort.Slice(seq, func(i, j int) bool {
		if seq[i].ch != seq[j].ch {
			return seq[i].ch < seq[j].ch
		}
		return seq[i].rank < seq[j].rank
	})
	deduped := seq[:0]
	seen := map[rune]bool{}
	for _, k := range seq {
		if seen[k.ch] {
			continue
		}
		seen[k.ch] = true
		deduped = append(deduped, k)
	}
	sort.Slice(deduped, func(i, j int) bool {
		if deduped[i].rank != deduped[j].rank {
			return deduped[i].rank < deduped[j].rank
		}
		return deduped[i].ch < deduped[j].ch
	})
	chars := make([]rune, len(deduped))
	for i, k := range deduped {
		chars[i] = k.ch
	}
	return doPartition(chars, num)
}

func caseWithCharBase(num int, charBase map[rune]struct{}) []*urange.URange {
	chars := make([]rune, 0, len(charBase))
	for ch := range charBase {
		chars = append(chars, ch)
	}
	sort.Slice(chars, func(i, j int) bool { return chars[i] < chars[j] })
	return doPartition(chars, num)
}

// sortAndPartition turns a scored character map into an ascending
// (score, char) sequence — ties broken by code point, matching the
// source's tuple-sort semantics — and chunks it.
func sortAndPartition(num int, stats map[rune]int) []*urange.URange {
	type scored struct {
		score int
		ch    rune
	}
	pairs := make([]scored, 0, len(stats))
	for ch, score := range stats {
		pairs = append(pairs, scored{score: score, ch: ch})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].score != pairs[j].score {
			return pairs[i].score < pairs[j].score
		}
		return pairs[i].ch < pairs[j].ch
	})
	chars := make([]rune, len(pairs))
	for i, p := range pairs {
		chars[i] = p.ch
	}
	return doPartition(chars, num)
}

func (SortByOccurrence) partition(ctx *algorithmContext) ([]*urange.URange, error) {
	num := ctx.partSize.Chars

	var pages []Page
	var err error
	if ctx.pages != nil {
		if pages, err = ctx.pages.Pages(); err != nil {
			return nil, err
		}
	}
	var charBase map[rune]struct{}
	if ctx.charBase != nil {
		if charBase, err = ctx.charBase.CharBase(); err != nil {
			return nil, err
		}
	}
	var charFreq []rune
	if ctx.charFreq != nil {
		charFreq = ctx.charFreq.CharFreq()
	}

	switch {
	case ctx.pages != nil && ctx.charBase == nil && ctx.charFreq == nil:
		return caseWithPagesOnly(num, pages), nil
	case ctx.pages != nil:
		return caseWithPagesGeneric(num, pages, charFreq, charBase), nil
	case ctx.charBase == nil && ctx.charFreq != nil:
		return caseWithCharFreqOnly(num, charFreq), nil
	case ctx.charBase != nil && ctx.charFreq != nil:
		return caseWithCharFreqCharBase(num, charFreq, charBase), nil
	case ctx.charBase != nil:
		return caseWithCharBase(num, charBase), nil
	default:
		return nil, fmt.Errorf("partition: no input data")
	}
}

var algorithmRegistry = routine.NewRegistry[*algorithmContext, algorithmImpl]().
	Add("sort_by_occurrence", newSortByOccurrence).
	WithDefault(routine.Routine{Name: "sort_by_occurrence"})
