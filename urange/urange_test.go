package urange

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderBuildMergesAndSplits(t *testing.T) {
	r := FromChars([]rune("abcxyzm")).Build()

	require.Equal(t, 1, r.SingleCount())
	require.Equal(t, 2, r.MultiCount())

	spans := r.Spans()
	assert.Equal(t, USpan{'m', 'm'}, spans[0])
	assert.Equal(t, USpan{'a', 'c'}, spans[1])
	assert.Equal(t, USpan{'x', 'z'}, spans[2])
}

func TestAsCharsAscendingAndComplete(t *testing.T) {
	pushed := []rune("zafex")
	r := FromChars(pushed).Build()

	got := r.AsChars()
	for i := 1; i < len(got); i++ {
		assert.Less(t, got[i-1], got[i])
	}

	want := map[rune]bool{}
	for _, c := range pushed {
		want[c] = true
	}
	for _, c := range got {
		assert.True(t, want[c])
		delete(want, c)
	}
	assert.Empty(t, want)
}

func TestBuildNoTouchingSpans(t *testing.T) {
	b := NewBuilder()
	b.Push(USpan{'a', 'c'}).Push(USpan{'d', 'f'}).Push(USpan{'h', 'j'})
	r := b.Build()
	spans := r.Spans()
	require.Len(t, spans, 2)
	assert.Equal(t, USpan{'a', 'f'}, spans[0])
	assert.Equal(t, USpan{'h', 'j'}, spans[1])
}

func TestParseCSSSyntax(t *testing.T) {
	spans, err := ParseCSSSyntax("U+1F600-1F64F, U+1F680-u+1F6C5, U+???, U+4, U+3??")
	require.NoError(t, err)
	require.Equal(t, []USpan{
		{0x1F600, 0x1F64F},
		{0x1F680, 0x1F6C5},
		{0, 0xFFF},
		{4, 4},
		{0x300, 0x3FF},
	}, spans)
}

func TestParseCSSSyntaxErrors(t *testing.T) {
	cases := []string{
		"U+1-2-3",
		"U+ZZZZ",
		"U+10-1",
		"U+FFFFFFFF?",
	}
	for _, c := range cases {
		_, err := ParseCSSSyntax(c)
		assert.Error(t, err, c)
	}
}

func TestFromCSSSyntaxScenario(t *testing.T) {
	spans, err := ParseCSSSyntax("U+1F600-1F64F, U+???")
	require.NoError(t, err)
	assert.Equal(t, USpan{0x1F600, 0x1F64F}, spans[0])
	assert.Equal(t, USpan{0, 0xFFF}, spans[1])
}
