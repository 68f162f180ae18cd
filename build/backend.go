package build

import (
	"context"

	"github.com/hsfzxjy/fontchan-go/routine"
)

// Backend is an external subsetting tool. Identity is hashed into every
// output's Fingerprint so that switching backends invalidates all prior
// outputs. Subset writes the subset of sourcePath covering chars into
// destTmpPath; the orchestrator renames destTmpPath to the real
// destination on success and discards it on failure.
type Backend interface {
	Identity() []byte
	Subset(ctx context.Context, sourcePath string, chars []rune, destTmpPath string) error
}

func newHarfbuzzBackend(_ struct{}, _ routine.Routine) (Backend, error) {
	return HarfbuzzBackend{}, nil
}

func newPyftBackend(_ struct{}, _ routine.Routine) (Backend, error) {
	return PyftBackend{}, nil
}

// backendRegistry is the closed set of backends named by
// builder.font.backend ("harfbuzz" or "pyft"); pyft is the default,
// matching the source's BACKEND_REGISTRY.
var backendRegistry = routine.NewRegistry[struct{}, Backend]().
	Add("harfbuzz", newHarfbuzzBackend).
	Add("pyft", newPyftBackend).
	WithDefault(routine.Routine{Name: "pyft"})

// BuildBackend resolves rt (or the registry default, if rt is nil) into a
// concrete Backend.
func BuildBackend(rt *routine.Routine) (Backend, error) {
	return backendRegistry.Build(struct{}{}, rt)
}
