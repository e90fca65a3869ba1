// Released under an MIT license. See LICENSE.

package cell

import "github.com/rumlisp/rumlisp/internal/ast"

// True and False are the two distinguished booleans (spec.md §3, §9
// "Booleans-as-closures is a deliberate design choice... the two
// instances must be referentially unique within an interpreter").
// Calling True evaluates and returns its first argument; calling False
// evaluates and returns its second. Neither evaluates the argument it
// does not select (spec.md §4.4's "sole conditional primitive").
//
// Grounded on spec.md's own design note; there is no oh analog (oh has
// a real boolean.T type, internal/interface/boolean), but the
// "booleans as arity-2 closures" idiom is exactly the kind of
// dynamic-dispatch-without-a-class-hierarchy shape oh's
// internal/type/pair/pair.go init()-constructed singleton (Null)
// demonstrates for a different value.
var (
	True  = newBoolean("#t", 0)  //nolint:gochecknoglobals
	False = newBoolean("#f", 1)  //nolint:gochecknoglobals
)

func newBoolean(ident string, selected int) *Builtin {
	return &Builtin{
		Ident: ident,
		Min:   2,
		Max:   2,
		Direct: func(args []ast.Node, env Scope, eval EvalFunc) Value {
			return eval(args[selected], env)
		},
	}
}

// IsBoolean reports whether v is one of the two boolean singletons.
func IsBoolean(v Value) bool {
	return v == True || v == False
}

// Bool converts a Go bool into RumLisp's boolean singletons.
func Bool(b bool) *Builtin {
	if b {
		return True
	}

	return False
}
