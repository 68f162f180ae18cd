package workdir

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDefaultsToConfigDir(t *testing.T) {
	dir, err := Resolve("", "", "/a/b/c/config.toml")
	require.NoError(t, err)
	assert.Equal(t, "/a/b/c", dir)
}

func TestResolveCFDPrefix(t *testing.T) {
	dir, err := Resolve("", "<CFD>/out", "/a/b/c/config.toml")
	require.NoError(t, err)
	assert.Equal(t, "/a/b/c/out", dir)
}

func TestResolveRelative(t *testing.T) {
	dir, err := Resolve("", "build", "/a/b/c/config.toml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/a/b/c", "build"), dir)
}

func TestResolveCLIBeatsConfig(t *testing.T) {
	dir, err := Resolve("<CFD>/cli-out", "<CFD>/config-out", "/a/b/c/config.toml")
	require.NoError(t, err)
	assert.Equal(t, "/a/b/c/cli-out", dir)
}
