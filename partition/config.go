package partition

import (
	"github.com/hsfzxjy/fontchan-go/digestutil"
	"github.com/hsfzxjy/fontchan-go/routine"
	"github.com/hsfzxjy/fontchan-go/urange"
)

// PartSize is the target bucket size. It is a single-variant sum type in
// the source material (room for a future "Bytes(n)" variant); Go models
// that as a struct rather than an interface since there is exactly one
// case today.
type PartSize struct {
	Chars int
}

// DefaultPartSize matches the source's default target of 200 code points
// per bucket.
var DefaultPartSize = PartSize{Chars: 200}

// Config is the TOML-decoded `[partition]` table; a single partitioner is
// built from it for all configured fonts together.
type Config struct {
	PartSize  PartSize        `toml:"part_size"`
	CharBase  *routine.Routine `toml:"char_base"`
	CharFreq  *routine.Routine `toml:"char_freq"`
	Pages     *routine.Routine `toml:"pages"`
	Algorithm *routine.Routine `toml:"algorithm"`
}

// Context is the shared construction context every provider factory
// receives: the files of every configured font, so the
// "from_fonts" char-base provider can read their cmaps without the
// partition package knowing about build-level config.
type Context struct {
	FontFiles []*digestutil.LazyFile
}

// Algorithm is a fully constructed partitioner, ready to run against its
// captured providers.
type Algorithm struct {
	ctx  algorithmContext
	impl algorithmImpl
}

// Partition runs the configured scoring algorithm and returns the
// resulting URange buckets in ascending score order.
func (a *Algorithm) Partition() ([]*urange.URange, error) {
	return a.impl.partition(&a.ctx)
}

// BuildAlgorithm wires the three optional providers and the algorithm
// implementation named by cfg, resolving default routines where cfg
// leaves a field nil.
func BuildAlgorithm(ctx *Context, cfg *Config) (*Algorithm, error) {
	charBase, err := charBaseRegistry.Build(ctx, cfg.CharBase)
	if err != nil {
		return nil, err
	}
	charFreq, err := charFreqRegistry.Build(ctx, cfg.CharFreq)
	if err != nil {
		return nil, err
	}
	pages, err := pagesRegistry.Build(ctx, cfg.Pages)
	if err != nil {
		return nil, err
	}
	partSize := cfg.PartSize
	if partSize.Chars == 0 {
		partSize = DefaultPartSize
	}
	algoCtx := algorithmContext{
		partSize: partSize,
		charBase: charBase,
		charFreq: charFreq,
		pages:    pages,
	}
	impl, err := algorithmRegistry.Build(&algoCtx, cfg.Algorithm)
	if err != nil {
		return nil, err
	}
	return &Algorithm{ctx: algoCtx, impl: impl}, nil
}
