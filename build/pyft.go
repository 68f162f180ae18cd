package build

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

// PyftBackend shells out to fontTools' pyftsubset, the teacher pack's
// reference Python subsetter (see original_source/fontchan/src/builder/
// font.rs PyftBackend). It is the default backend.
type PyftBackend struct{}

// Identity hashes the invoked tool name and its one fixed flag, so
// changing either invalidates every cached output.
func (PyftBackend) Identity() []byte {
	return []byte("pyftsubset--ignore-missing-glyphs")
}

// Subset writes the target characters to a temp text file (pyftsubset's
// --text-file input) and invokes pyftsubset against it.
func (PyftBackend) Subset(ctx context.Context, sourcePath string, chars []rune, destTmpPath string) error {
	textFile, err := os.CreateTemp("", "__fontchan_unicodes")
	if err != nil {
		return fmt.Errorf("pyft: create unicode text file: %w", err)
	}
	defer os.Remove(textFile.Name())

	if _, err := textFile.WriteString(string(chars)); err != nil {
		textFile.Close()
		return fmt.Errorf("pyft: write unicode text file: %w", err)
	}
	if err := textFile.Close(); err != nil {
		return fmt.Errorf("pyft: close unicode text file: %w", err)
	}

	cmd := exec.CommandContext(ctx, "pyftsubset",
		sourcePath,
		"--text-file="+textFile.Name(),
		"--output-file="+destTmpPath,
		"--ignore-missing-glyphs",
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("pyft: pyftsubset %s: %w: %s", sourcePath, err, out)
	}
	return nil
}
