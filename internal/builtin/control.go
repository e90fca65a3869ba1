// Released under an MIT license. See LICENSE.

package builtin

import (
	"fmt"
	"os"

	"github.com/rumlisp/rumlisp/internal/ast"
	"github.com/rumlisp/rumlisp/internal/cell"
	"github.com/rumlisp/rumlisp/internal/rerr"
)

// controlBuiltins covers output, type introspection, and the two
// short-circuiting logical operators. and/or are Direct, not Eager,
// for the same reason #t/#f are (cell.True/cell.False in
// internal/cell/boolean.go): they must not evaluate an argument they
// don't need (spec.md §4.4).
func controlBuiltins() map[string]*cell.Builtin {
	return map[string]*cell.Builtin{
		"print":   variadic("print", func(args []cell.Value) cell.Value { return writeAll(os.Stdout, args, "") }),
		"println": variadic("println", func(args []cell.Value) cell.Value { return writeAll(os.Stdout, args, "\n") }),

		"type":    unary("type", func(v cell.Value) cell.Value { return cell.String(v.Name()) }),
		"type-is": binaryBool("type-is", func(a, b cell.Value) bool { return a.Name() == string(mustString("type-is", b)) }),

		"not": unary("not", func(v cell.Value) cell.Value { return cell.Bool(!cell.Truthy(v)) }),

		"and": shortCircuit("and", false),
		"or":  shortCircuit("or", true),
	}
}

func variadic(name string, f func(args []cell.Value) cell.Value) *cell.Builtin {
	return &cell.Builtin{Ident: name, Min: 0, Max: -1, Eager: f}
}

func binaryBool(name string, f func(a, b cell.Value) bool) *cell.Builtin {
	return binary(name, func(a, b cell.Value) cell.Value { return cell.Bool(f(a, b)) })
}

func mustString(name string, v cell.Value) cell.String {
	s, ok := v.(cell.String)
	if !ok {
		rerr.Throw(typeError(name, []cell.Value{v}))
	}

	return s
}

func writeAll(w *os.File, args []cell.Value, suffix string) cell.Value {
	for i, a := range args {
		if i > 0 {
			fmt.Fprint(w, " ")
		}

		fmt.Fprint(w, cell.Show(a))
	}

	fmt.Fprint(w, suffix)

	return cell.Unit
}

// shortCircuit builds and (stopValue=false: stop at the first falsy
// argument) and or (stopValue=true: stop at the first truthy
// argument) as Direct builtins, so later arguments are never even
// evaluated once the result is decided — spec.md §4.5.
func shortCircuit(name string, stopValue bool) *cell.Builtin {
	return &cell.Builtin{
		Ident: name,
		Min:   1,
		Max:   -1,
		Direct: func(args []ast.Node, env cell.Scope, eval cell.EvalFunc) cell.Value {
			var result cell.Value = cell.Bool(!stopValue)

			for _, a := range args {
				result = eval(a, env)
				if cell.Truthy(result) == stopValue {
					return result
				}
			}

			return result
		},
	}
}
