// Package atomicfile provides a temp-file-then-rename commit guard so a
// reader can never observe a partially written output file, mirroring
// fontchan-util's AtomicPath/WritableAtomicPath pair.
package atomicfile

import (
	"fmt"
	"os"
	"path/filepath"
)

// Path names a destination that is written via a sibling temp file and
// published atomically with a single rename.
type Path struct {
	real string
}

// New wraps a destination path.
func New(real string) Path {
	return Path{real: real}
}

// String returns the destination path.
func (p Path) String() string {
	return p.real
}

// Create opens a writable temp file in the destination's parent directory
// and returns a Writer whose Commit renames it into place.
func (p Path) Create() (*Writer, error) {
	dir := filepath.Dir(p.real)
	if dir == "" {
		dir = "."
	}
	f, err := os.CreateTemp(dir, "__fontchan")
	if err != nil {
		return nil, fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	return &Writer{real: p.real, f: f}, nil
}

// Writer is an open temp file bound to a final destination.
type Writer struct {
	real string
	f    *os.File
}

// Name returns the temp file's path, for handing to an external process
// that writes its output directly to a path rather than a writer.
func (w *Writer) Name() string {
	return w.f.Name()
}

// Write implements io.Writer against the underlying temp file.
func (w *Writer) Write(b []byte) (int, error) {
	return w.f.Write(b)
}

// Commit closes the temp file and renames it to the real destination.
func (w *Writer) Commit() error {
	if err := w.f.Close(); err != nil {
		return fmt.Errorf("close temp file %s: %w", w.f.Name(), err)
	}
	if err := os.Rename(w.f.Name(), w.real); err != nil {
		return fmt.Errorf("commit %s -> %s: %w", w.f.Name(), w.real, err)
	}
	return nil
}

// Discard closes and removes the temp file without publishing it. Safe to
// call after a failed Commit or when an error aborts the write.
func (w *Writer) Discard() {
	_ = w.f.Close()
	_ = os.Remove(w.f.Name())
}
