package partition

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCaseWithCharBaseChunking(t *testing.T) {
	base := map[rune]struct{}{}
	for _, c := range "gfedcba" {
		base[c] = struct{}{}
	}
	ranges := caseWithCharBase(3, base)
	require.Len(t, ranges, 3)
	require.Equal(t, []rune("abc"), ranges[0].AsChars())
	require.Equal(t, []rune("def"), ranges[1].AsChars())
	require.Equal(t, []rune("g"), ranges[2].AsChars())
}

func TestCaseWithCharFreqOnlyPreservesOrder(t *testing.T) {
	ranges := caseWithCharFreqOnly(2, []rune("zyx"))
	require.Len(t, ranges, 2)
	// Chunk membership follows freq order; AsChars itself is ascending.
	require.Equal(t, []rune("yz"), ranges[0].AsChars())
	require.Equal(t, []rune("x"), ranges[1].AsChars())
}

func TestCaseWithCharFreqCharBaseOrdersIntersectionFirst(t *testing.T) {
	freq := []rune("cab")
	base := map[rune]struct{}{'a': {}, 'b': {}, 'd': {}}
	ranges := caseWithCharFreqCharBase(10, freq, base)
	require.Len(t, ranges, 1)
	require.Equal(t, []rune("abd"), ranges[0].AsChars())
}

func TestCaseWithPagesOnlyRanksByOccurrence(t *testing.T) {
	pages := []Page{
		{'a': {}, 'b': {}},
		{'a': {}},
	}
	ranges := caseWithPagesOnly(10, pages)
	require.Len(t, ranges, 1)
	require.Equal(t, []rune("ab"), ranges[0].AsChars())
}

func TestCaseWithPagesGenericLiftsASCIIAndSeedsFromBase(t *testing.T) {
	pages := []Page{{'z': {}}}
	base := map[rune]struct{}{'b': {}}
	ranges := caseWithPagesGeneric(10, pages, nil, base)
	require.Len(t, ranges, 1)
	chars := string(ranges[0].AsChars())
	require.Contains(t, chars, "b")
	require.NotContains(t, chars, "z")
}

func TestCaseWithPagesGenericFreqRankOverridesBaseSeed(t *testing.T) {
	// Use non-ASCII characters so the U+0000..U+00FF lift in liftASCII
	// cannot mask the base-vs-freq precedence under test.
	// One character per bucket so the bucket order shows the ranking:
	// with both seeded from base alone, the code-point tie-break would put
	// 一 (U+4E00) before 的 (U+7684).
	base := map[rune]struct{}{'的': {}, '一': {}}
	freq := []rune("的一")
	ranges := caseWithPagesGeneric(1, nil, freq, base)
	require.Len(t, ranges, 2)
	require.Equal(t, []rune("的"), ranges[0].AsChars())
	require.Equal(t, []rune("一"), ranges[1].AsChars())
}

func TestSortByOccurrencePartitionRejectsEmptyContext(t *testing.T) {
	ctx := &algorithmContext{partSize: DefaultPartSize}
	_, err := SortByOccurrence{}.partition(ctx)
	require.Error(t, err)
}

// Mirrors the scenario "part_size=Chars(3), char_base={a..g} only" ⇒
// three chunks {a,b,c},{d,e,f},{g}.
func TestCharBaseOnlyThreeChunkScenario(t *testing.T) {
	base := map[rune]struct{}{}
	for _, c := range "abcdefg" {
		base[c] = struct{}{}
	}
	ranges := caseWithCharBase(3, base)
	require.Len(t, ranges, 3)
	require.Equal(t, []rune("abc"), ranges[0].AsChars())
	require.Equal(t, []rune("def"), ranges[1].AsChars())
	require.Equal(t, []rune("g"), ranges[2].AsChars())
}
