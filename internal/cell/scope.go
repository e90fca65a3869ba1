// Released under an MIT license. See LICENSE.

package cell

// Scope is the interface a Closure's capture satisfies. It lives in
// package cell (rather than alongside its implementation in package
// env) so that cell.Closure can hold one without internal/env importing
// internal/cell and internal/env being imported back by internal/cell —
// grounded directly on oh's internal/interface/scope/scope.go, which
// exists for exactly this reason (env.T implements scope.T so cell
// types can reference an environment without an import cycle).
type Scope interface {
	// Lookup walks the scope chain outward for name.
	Lookup(name string) (Value, bool)

	// Define binds name to v in this frame only (spec.md §3: "set
	// mutates the innermost frame only").
	Define(name string, v Value)

	// Push returns a fresh child frame whose parent is this scope —
	// what a closure call pushes on top of its captured scope (a `do`
	// block pushes nothing).
	Push() Scope
}
