package partition

import "github.com/hsfzxjy/fontchan-go/routine"

// CharFreqProvider supplies an ordered character list, most frequent
// first, used to seed the partitioner's scoring when no page data (or no
// per-page occurrence count) is available.
type CharFreqProvider interface {
	CharFreq() []rune
}

// PresetZH is a built-in frequency ordering of common simplified Chinese
// characters (see freqzh.go).
type PresetZH struct{}

// CharFreq returns the preset list, most frequent first.
func (PresetZH) CharFreq() []rune {
	return freqPresetZH
}

func newPresetZH(*Context, routine.Routine) (CharFreqProvider, error) {
	return PresetZH{}, nil
}

var charFreqRegistry = routine.NewRegistry[*Context, CharFreqProvider]().
	Add("preset_zh", newPresetZH).
	WithDefault(routine.Routine{Name: "preset_zh"})
