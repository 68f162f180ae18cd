package routine

import "fmt"

// Factory builds a provider/backend instance named by a Routine's argument,
// given shared construction context Ctx.
type Factory[Ctx, I any] func(ctx Ctx, arg Routine) (I, error)

// Registry is a name-keyed set of Factory constructors for interface type I,
// with an optional default routine used when the config field is empty.
type Registry[Ctx, I any] struct {
	entries map[string]Factory[Ctx, I]
	def     *Routine
}

// NewRegistry returns an empty Registry.
func NewRegistry[Ctx, I any]() *Registry[Ctx, I] {
	return &Registry[Ctx, I]{entries: map[string]Factory[Ctx, I]{}}
}

// Add registers a named factory and returns the Registry for chaining.
func (r *Registry[Ctx, I]) Add(name string, f Factory[Ctx, I]) *Registry[Ctx, I] {
	r.entries[name] = f
	return r
}

// WithDefault sets the routine used when Build is called with a nil
// *Routine, and returns the Registry for chaining.
func (r *Registry[Ctx, I]) WithDefault(def Routine) *Registry[Ctx, I] {
	r.def = &def
	return r
}

// Build constructs the instance named by routine (or the registry's
// default, if routine is nil). It returns the zero value and no error when
// both are nil and the registry entry is optional (callers gate that with
// their own "required" flag; this generic type has no separate Opt/Req
// quantifier, unlike the Rust source — see DESIGN.md).
func (r *Registry[Ctx, I]) Build(ctx Ctx, rt *Routine) (I, error) {
	var zero I
	use := rt
	if use == nil {
		use = r.def
	}
	if use == nil {
		return zero, nil
	}
	factory, ok := r.entries[use.Name]
	if !ok {
		return zero, fmt.Errorf("unknown routine %q", use.Name)
	}
	return factory(ctx, *use)
}
