// Package routine parses the `name[arg]` grammar used by TOML config fields
// that select a dynamically-dispatched provider or backend (e.g.
// `pages = "glob[posts/**/*.html]"`), and a small name-keyed Registry that
// replaces the Rust source's autobox!/HKT machinery with ordinary Go
// interfaces and generics.
package routine

import (
	"fmt"
	"strings"
)

// Routine is a parsed "name[arg]" or bare "name" config value.
type Routine struct {
	Name string
	Arg  string
	// HasArg distinguishes "name[]" (empty arg) from "name" (no arg).
	HasArg bool
}

// Parse parses a routine string. Brackets must be balanced and, if present,
// wrap the entire remainder after the name.
func Parse(input string) (Routine, error) {
	open := strings.IndexByte(input, '[')
	if open < 0 {
		if strings.ContainsAny(input, "[]") {
			return Routine{}, fmt.Errorf("%q: invalid routine syntax", input)
		}
		return Routine{Name: input}, nil
	}
	if !strings.HasSuffix(input, "]") {
		return Routine{}, fmt.Errorf("%q: unterminated routine argument", input)
	}
	name := input[:open]
	arg := input[open+1 : len(input)-1]
	if name == "" {
		return Routine{}, fmt.Errorf("%q: missing routine name", input)
	}
	if strings.ContainsAny(arg, "[]") {
		return Routine{}, fmt.Errorf("%q: invalid routine syntax", input)
	}
	return Routine{Name: name, Arg: arg, HasArg: true}, nil
}

// String renders the routine back to "name[arg]" or "name" form.
func (r Routine) String() string {
	if !r.HasArg {
		return r.Name
	}
	return r.Name + "[" + r.Arg + "]"
}

// RequireArg returns Arg or an error if the routine carries none.
func (r Routine) RequireArg() (string, error) {
	if !r.HasArg {
		return "", fmt.Errorf("routine %q: argument required", r.Name)
	}
	return r.Arg, nil
}

// UnmarshalText implements encoding.TextUnmarshaler so *Routine can be
// embedded directly in a TOML-decoded config struct.
func (r *Routine) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
