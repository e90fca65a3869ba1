// Released under an MIT license. See LICENSE.

// Package cell defines RumLisp's runtime value types.
//
// Grounded on oh's tagged-cell design (internal/interface/cell,
// internal/type/pair, internal/type/num, internal/type/str): a small
// Value interface every concrete type satisfies, plus a per-type
// Is/To pair for safe downcasting instead of an OO class hierarchy
// (spec.md §9 "Dynamic dispatch on values").
package cell

// Value is the interface every RumLisp runtime value satisfies.
type Value interface {
	// Name returns the type name used in error messages ("number",
	// "string", "list", "dict", "closure", "builtin", "unit").
	Name() string

	// Equal reports whether v equals other under this type's equality
	// rule (value equality for numbers/strings/booleans, identity for
	// lists/dicts/closures — spec.md §3).
	Equal(other Value) bool
}

// Truthy reports the boolean sense of a value, as the not, and, and or
// builtins use it (conditional evaluation itself is boolean selection
// via #t/#f, spec.md §4.4). Every value is "truthy" except Unit and the
// #f singleton.
func Truthy(v Value) bool {
	if v == Unit {
		return false
	}

	if b, ok := v.(*Builtin); ok {
		return b != False
	}

	return true
}
