package build

// Result is what the orchestrator records for one (entry, font) pair.
type Result struct {
	FID    string
	Digest []byte
}

// Results holds the build's output in the required entry-major,
// context-minor order and can re-view it context-major, entry-minor.
type Results struct {
	ctxCount int
	results  []Result
}

// All returns the entry-major, context-minor ordered slice.
func (r *Results) All() []Result {
	return r.results
}

// EntryMinorIter re-views the same results context-major, entry-minor:
// [(e0,c0),(e1,c0),...,(e0,c1),(e1,c1),...]. This is the order the
// loader's fid_data stream is encoded in, since the decoder visits one
// font face's full FID list contiguously.
func (r *Results) EntryMinorIter() []Result {
	if r.ctxCount == 0 {
		return nil
	}
	entryCount := len(r.results) / r.ctxCount
	out := make([]Result, 0, len(r.results))
	for c := 0; c < r.ctxCount; c++ {
		for e := 0; e < entryCount; e++ {
			out = append(out, r.results[e*r.ctxCount+c])
		}
	}
	return out
}
