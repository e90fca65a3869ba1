// Released under an MIT license. See LICENSE.

package cell

import "github.com/rumlisp/rumlisp/internal/ast"

// EvalFunc is how a Direct builtin (one of the narrow exceptions in
// spec.md §4.4: boolean selection, and/or short-circuiting, `.` and `$`)
// evaluates an argument expression itself, instead of having the
// evaluator do it eagerly beforehand.
type EvalFunc func(n ast.Node, env Scope) Value

// Behavior is the ordinary, eager-argument shape almost every builtin
// uses: the evaluator evaluates every argument left to right, then
// calls Behavior with the results.
type Behavior func(args []Value) Value

// Direct is the shape used by the handful of builtins that must see
// unevaluated argument expressions — #t/#f (evaluate only the selected
// branch), and/or (short-circuit), `.` and `$` (bare identifiers act as
// literal keys/path segments rather than variable references).
type Direct func(args []ast.Node, env Scope, eval EvalFunc) Value

// Builtin is a primitive operation: a name, an arity, and either an
// eager Behavior or a Direct evaluator. Grounded on oh's
// internal/engine/task/builtin.go Builtin type and the
// map[string]func(cell.I) cell.I registry shape in
// internal/engine/commands/commands.go.
type Builtin struct {
	Ident   string
	Min     int // Minimum argument count.
	Max     int // Maximum argument count; -1 means unbounded.
	Eager   Behavior
	Direct  Direct
}

func (b *Builtin) Name() string { return "builtin" }

func (b *Builtin) Equal(other Value) bool {
	o, ok := other.(*Builtin)
	return ok && b == o
}

// IsDirect reports whether b evaluates its own arguments.
func (b *Builtin) IsDirect() bool {
	return b.Direct != nil
}

// IsBuiltin reports whether v is a *Builtin.
func IsBuiltin(v Value) bool {
	_, ok := v.(*Builtin)
	return ok
}

// ToBuiltin returns v as a *Builtin, panicking if it is not one.
func ToBuiltin(v Value) *Builtin {
	b, ok := v.(*Builtin)
	if !ok {
		panic("not a builtin")
	}

	return b
}
