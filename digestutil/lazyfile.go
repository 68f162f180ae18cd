package digestutil

import (
	"os"
	"sync"
)

// LazyFile is a font (or other) input file whose content and digest are
// read/hashed at most once per process, however many times Content/Digest
// are called — large font files are hashed once per run even though every
// (entry, font) build pair consults the digest. Safe for concurrent use.
type LazyFile struct {
	path string

	contentOnce sync.Once
	content     []byte
	contentErr  error

	digestOnce sync.Once
	digest     []byte
	digestErr  error
}

// NewLazyFile wraps path without reading it.
func NewLazyFile(path string) *LazyFile {
	return &LazyFile{path: path}
}

// Path returns the wrapped path.
func (f *LazyFile) Path() string {
	return f.path
}

// Content reads (and caches) the file's bytes.
func (f *LazyFile) Content() ([]byte, error) {
	f.contentOnce.Do(func() {
		f.content, f.contentErr = os.ReadFile(f.path)
	})
	return f.content, f.contentErr
}

// Digest returns (and caches) the SHA-512 digest of the file's content.
func (f *LazyFile) Digest() ([]byte, error) {
	f.digestOnce.Do(func() {
		content, err := f.Content()
		if err != nil {
			f.digestErr = err
			return
		}
		f.digest = New().Push(content).Bytes()
	})
	return f.digest, f.digestErr
}

// UnmarshalText lets LazyFile be used directly as a TOML string field value.
func (f *LazyFile) UnmarshalText(text []byte) error {
	f.path = string(text)
	return nil
}
