package routine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBareName(t *testing.T) {
	r, err := Parse("from_fonts")
	require.NoError(t, err)
	assert.Equal(t, Routine{Name: "from_fonts"}, r)
}

func TestParseWithArg(t *testing.T) {
	r, err := Parse("glob[posts/**/*.html]")
	require.NoError(t, err)
	assert.Equal(t, Routine{Name: "glob", Arg: "posts/**/*.html", HasArg: true}, r)
	assert.Equal(t, "glob[posts/**/*.html]", r.String())
}

func TestParseRejectsUnterminated(t *testing.T) {
	_, err := Parse("glob[unterminated")
	assert.Error(t, err)
}

func TestRegistryDefault(t *testing.T) {
	reg := NewRegistry[struct{}, string]().
		Add("a", func(struct{}, Routine) (string, error) { return "A", nil }).
		WithDefault(Routine{Name: "a"})
	got, err := reg.Build(struct{}{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "A", got)
}
