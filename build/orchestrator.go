package build

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/hsfzxjy/fontchan-go/atomicfile"
	"github.com/hsfzxjy/fontchan-go/common"
)

// Orchestrator drives the Cartesian product of entries × font contexts
// (see spec.md §4.5) through a single backend, in parallel, and
// aggregates the per-pair results in entry-major, context-minor order.
type Orchestrator struct {
	contexts []*FontContext
	backend  Backend
}

// NewOrchestrator returns an Orchestrator over contexts using backend for
// every subset invocation.
func NewOrchestrator(contexts []*FontContext, backend Backend) *Orchestrator {
	return &Orchestrator{contexts: contexts, backend: backend}
}

// Build runs every (entry, context) pair concurrently, over a
// work-stealing-like errgroup pool: the first error cancels the group and
// is returned, aborting remaining work; already-spawned subsetter
// processes are allowed to finish but their (temp, uncommitted) output is
// discarded. The returned Results preserves entry-major, context-minor
// order regardless of goroutine completion order because each result is
// written into its own pre-computed slice index.
func (o *Orchestrator) Build(ctx context.Context, entries []*Entry) (*Results, error) {
	history, err := BuildHistory(o.contexts)
	if err != nil {
		return nil, err
	}

	n := len(entries) * len(o.contexts)
	results := make([]Result, n)

	eg, gctx := errgroup.WithContext(ctx)
	for ei, entry := range entries {
		for ci, fctx := range o.contexts {
			ei, entry, ci, fctx := ei, entry, ci, fctx
			eg.Go(func() error {
				idx := ei*len(o.contexts) + ci
				res, err := o.buildOne(gctx, entry, fctx, history)
				if err != nil {
					return fmt.Errorf("build entry %s / font %s: %w", entry.Name, fctx.Source.Path(), err)
				}
				results[idx] = res
				return nil
			})
		}
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return &Results{ctxCount: len(o.contexts), results: results}, nil
}

func (o *Orchestrator) buildOne(ctx context.Context, entry *Entry, fctx *FontContext, history *History) (Result, error) {
	fontDigest, err := fctx.Source.Digest()
	if err != nil {
		return Result{}, fmt.Errorf("digest font: %w", err)
	}

	digest := Fingerprint(fontDigest, entry.Range, o.backend.Identity())
	dest := newDestInfo(fctx.DestTmpl, entry.Name, digest)

	for _, old := range history.Lookup(dest) {
		if old == dest.Path {
			continue
		}
		if err := os.Remove(old); err != nil {
			return Result{}, fmt.Errorf("gc stale output %s: %w", old, err)
		}
		common.Log.Info("removed stale subset %s", old)
	}

	changed, err := dest.Changed()
	if err != nil {
		return Result{}, fmt.Errorf("stat %s: %w", dest.Path, err)
	}
	if !changed {
		common.Log.Debug("skip unchanged %s", dest.Path)
		return Result{FID: dest.FID, Digest: dest.Digest}, nil
	}

	if err := os.MkdirAll(filepath.Dir(dest.Path), 0o755); err != nil {
		return Result{}, fmt.Errorf("mkdir %s: %w", filepath.Dir(dest.Path), err)
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	common.Log.Info("subsetting %s -> %s", fctx.Source.Path(), dest.Path)
	w, err := atomicfile.New(dest.Path).Create()
	if err != nil {
		return Result{}, err
	}
	// The subsetter runs detached from the group's cancellation so an
	// in-flight process completes; its output is discarded if the group
	// was cancelled meanwhile.
	if err := o.backend.Subset(context.WithoutCancel(ctx), fctx.Source.Path(), entry.Range.AsChars(), w.Name()); err != nil {
		w.Discard()
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		w.Discard()
		return Result{}, err
	}
	if err := w.Commit(); err != nil {
		return Result{}, err
	}

	return Result{FID: dest.FID, Digest: dest.Digest}, nil
}
