// Released under an MIT license. See LICENSE.

package builtin

import (
	"github.com/rumlisp/rumlisp/internal/cell"
	"github.com/rumlisp/rumlisp/internal/rerr"
)

// comparisonBuiltins implements spec.md §4.5's equality and ordering
// operators. Equality (=, !=) uses each type's own Equal rule — value
// equality for numbers/strings, identity for lists/dicts/closures/
// builtins. Ordering (lt, gt, le, ge) only accepts numbers, strings,
// and lists, and goes through cell.CompareValues.
func comparisonBuiltins() map[string]*cell.Builtin {
	return map[string]*cell.Builtin{
		"=":  binary("=", func(a, b cell.Value) cell.Value { return cell.Bool(a.Equal(b)) }),
		"!=": binary("!=", func(a, b cell.Value) cell.Value { return cell.Bool(!a.Equal(b)) }),

		"lt": binary("lt", ordered("lt", func(c int) bool { return c < 0 })),
		"gt": binary("gt", ordered("gt", func(c int) bool { return c > 0 })),
		"le": binary("le", ordered("le", func(c int) bool { return c <= 0 })),
		"ge": binary("ge", ordered("ge", func(c int) bool { return c >= 0 })),
	}
}

func ordered(name string, pred func(c int) bool) func(a, b cell.Value) cell.Value {
	return func(a, b cell.Value) cell.Value {
		if !orderable(a) || !orderable(b) || a.Name() != b.Name() {
			rerr.Throw(typeError(name, []cell.Value{a, b}))
		}

		return cell.Bool(pred(cell.CompareValues(a, b)))
	}
}

func orderable(v cell.Value) bool {
	return cell.IsNumber(v) || cell.IsString(v) || cell.IsList(v)
}
