// Released under an MIT license. See LICENSE.

package builtin

import "github.com/rumlisp/rumlisp/internal/cell"

// booleanBuiltins installs the two distinguished boolean singletons
// (internal/cell/boolean.go) under their surface names. They are the
// sole conditional primitive (spec.md §4.4); every other "predicate"
// builtin in this package just returns one of these two values.
func booleanBuiltins() map[string]*cell.Builtin {
	return map[string]*cell.Builtin{
		"#t": cell.True,
		"#f": cell.False,
	}
}
