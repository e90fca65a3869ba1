// Released under an MIT license. See LICENSE.

// Package env provides RumLisp's environment (scope chain) type.
//
// Grounded on internal/type/env/env.go: a frame holds its own mapping
// plus a pointer to its parent; Lookup walks the chain outward, Define
// writes to the current frame only. The builtin table is installed at
// the bottom of every fresh top-level environment (spec.md §2).
package env

import "github.com/rumlisp/rumlisp/internal/cell"

// T (env) is one frame of the environment chain.
type T struct {
	vars   map[string]cell.Value
	parent *T
}

// New creates a fresh top-level environment with no parent.
func New() *T {
	return &T{vars: map[string]cell.Value{}}
}

// Lookup walks the chain from e outward for name.
func (e *T) Lookup(name string) (cell.Value, bool) {
	for f := e; f != nil; f = f.parent {
		if v, ok := f.vars[name]; ok {
			return v, true
		}
	}

	return nil, false
}

// Define binds name to v in e itself, never in a parent frame
// (spec.md §3: "set mutates the innermost frame only"). Re-binding an
// existing name in the same frame overwrites it.
func (e *T) Define(name string, v cell.Value) {
	e.vars[name] = v
}

// Push returns a fresh child frame whose parent is e. A closure call
// pushes a frame atop the closure's captured environment; a `do` block
// does not push (spec.md §4.4 gives `do` no frame of its own).
func (e *T) Push() cell.Scope {
	return &T{vars: map[string]cell.Value{}, parent: e}
}

// Names returns every name bound directly in e (not walking the
// chain) — used by the REPL's :env introspection command.
func (e *T) Names() []string {
	names := make([]string, 0, len(e.vars))
	for n := range e.vars {
		names = append(names, n)
	}

	return names
}

var _ cell.Scope = (*T)(nil)
