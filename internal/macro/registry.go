// Released under an MIT license. See LICENSE.

package macro

import (
	"github.com/rumlisp/rumlisp/internal/ast"
	"github.com/rumlisp/rumlisp/internal/loc"
	"github.com/rumlisp/rumlisp/internal/rerr"
)

// Registry holds every macro defined so far by any reader sharing it.
// Macros persist across those readers: redefining a name is a syntax
// error (spec.md §4.3), not a shadowing rebind the way variable
// definitions work.
type Registry struct {
	defs map[string]*Def
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: map[string]*Def{}}
}

// Has reports whether name is a registered macro. The reader calls this
// for every S-expression head identifier, after reading the arguments,
// to decide whether to expand them or to build an ordinary call.
func (r *Registry) Has(name string) bool {
	_, ok := r.defs[name]

	return ok
}

// Define adds def to the registry, failing if its name is already
// taken.
func (r *Registry) Define(def *Def) error {
	if _, exists := r.defs[def.Name]; exists {
		return rerr.At(rerr.Syntactic, def.Loc, "macro %q is already defined", def.Name)
	}

	r.defs[def.Name] = def

	return nil
}

// Expand matches args (the argument expressions read at a macro call
// site, exactly as they would be for an ordinary call) against the
// named macro's pattern and, on success, returns the expanded
// replacement node.
func (r *Registry) Expand(name string, args []ast.Node, callLoc loc.T) (result ast.Node, err error) {
	def, ok := r.defs[name]
	if !ok {
		return nil, rerr.At(rerr.MacroExpansion, callLoc, "no macro named %q", name)
	}

	b, ok := match(def.Pattern, args)
	if !ok {
		return nil, rerr.At(rerr.MacroExpansion, callLoc, "arguments to macro %q do not match its pattern", name)
	}

	defer rerr.Recover(&err)

	nodes := expand(def.Template, b, callLoc)
	if len(nodes) != 1 {
		rerr.Throwf(rerr.MacroExpansion, callLoc, "macro %q's template must expand to exactly one expression", name)
	}

	return nodes[0], nil
}
