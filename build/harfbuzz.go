package build

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/hsfzxjy/fontchan-go/urange"
)

// HarfbuzzBackend shells out to harfbuzz's hb-subset CLI.
type HarfbuzzBackend struct{}

// Identity hashes the invoked tool name, so switching from pyft
// invalidates every cached output.
func (HarfbuzzBackend) Identity() []byte {
	return []byte("hb-subset")
}

// Subset coalesces chars into ranges and passes them to hb-subset's
// --unicodes flag as a comma-separated U+HHHH / U+HHHH-HHHH list.
func (HarfbuzzBackend) Subset(ctx context.Context, sourcePath string, chars []rune, destTmpPath string) error {
	r := urange.FromChars(chars).Build()
	unicodes := formatUnicodesFlag(r)

	cmd := exec.CommandContext(ctx, "hb-subset",
		sourcePath,
		"--unicodes="+unicodes,
		"--output-file="+destTmpPath,
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("harfbuzz: hb-subset %s: %w: %s", sourcePath, err, out)
	}
	return nil
}

// formatUnicodesFlag renders r's spans as hb-subset's --unicodes grammar:
// comma-separated "U+HHHH" singles and "U+HHHH-HHHH" ranges, uppercase
// hex (hb-subset accepts either case; uppercase matches its own --help
// examples).
func formatUnicodesFlag(r *urange.URange) string {
	spans := r.Spans()
	parts := make([]string, 0, len(spans))
	for _, sp := range spans {
		if sp.IsSingle() {
			parts = append(parts, "U+"+strconv.FormatInt(int64(sp.Start), 16))
		} else {
			parts = append(parts, "U+"+strconv.FormatInt(int64(sp.Start), 16)+"-"+strconv.FormatInt(int64(sp.End), 16))
		}
	}
	return strings.ToUpper(strings.Join(parts, ","))
}
