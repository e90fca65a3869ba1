// Released under an MIT license. See LICENSE.

package builtin

import (
	"path"
	"strings"

	"github.com/rumlisp/rumlisp/internal/cell"
	"github.com/rumlisp/rumlisp/internal/rerr"
)

func arithmeticBuiltins() map[string]*cell.Builtin {
	return map[string]*cell.Builtin{
		"add": binary("add", add),
		"sub": binary("sub", numericOnly("sub", func(a, b cell.Number) cell.Value { return a - b })),
		"mul": binary("mul", numericOnly("mul", func(a, b cell.Number) cell.Value { return a * b })),
		"div": binary("div", div),
		"mod": binary("mod", mod),

		"band": binary("band", bitwise("band", func(a, b int64) int64 { return a & b })),
		"bor":  binary("bor", bitwise("bor", func(a, b int64) int64 { return a | b })),
		"bxor": binary("bxor", bitwise("bxor", func(a, b int64) int64 { return a ^ b })),
		"<<":   binary("<<", bitwise("<<", func(a, b int64) int64 { return a << uint(b) })), //nolint:gosec
		">>":   binary(">>", bitwise(">>", func(a, b int64) int64 { return a >> uint(b) })), //nolint:gosec

		"bcom": unary("bcom", func(v cell.Value) cell.Value {
			n, ok := v.(cell.Number)
			if !ok {
				rerr.Throw(typeError("bcom", []cell.Value{v}))
			}

			return cell.Number(^int64(n))
		}),
	}
}

// add is polymorphic: number+number, string+string (concatenation), and
// list+list (concatenation) — spec.md §4.5.
func add(a, b cell.Value) cell.Value {
	switch av := a.(type) {
	case cell.Number:
		bv, ok := b.(cell.Number)
		if !ok {
			rerr.Throw(typeError("add", []cell.Value{a, b}))
		}

		return av + bv
	case cell.String:
		bv, ok := b.(cell.String)
		if !ok {
			rerr.Throw(typeError("add", []cell.Value{a, b}))
		}

		return av + bv
	case *cell.List:
		bv, ok := b.(*cell.List)
		if !ok {
			rerr.Throw(typeError("add", []cell.Value{a, b}))
		}

		items := make([]cell.Value, 0, len(av.Items)+len(bv.Items))
		items = append(items, av.Items...)
		items = append(items, bv.Items...)

		return cell.NewList(items...)
	}

	rerr.Throw(typeError("add", []cell.Value{a, b}))

	panic("unreachable")
}

// div is number/number, plus string/string as a forward-slash-normalized
// path join (spec.md §4.5).
func div(a, b cell.Value) cell.Value {
	if av, ok := a.(cell.Number); ok {
		bv, ok := b.(cell.Number)
		if !ok {
			rerr.Throw(typeError("div", []cell.Value{a, b}))
		}

		if bv == 0 {
			rerr.Throw(rerr.New(rerr.Evaluation, "division by zero"))
		}

		return av / bv
	}

	if av, ok := a.(cell.String); ok {
		bv, ok := b.(cell.String)
		if !ok {
			rerr.Throw(typeError("div", []cell.Value{a, b}))
		}

		joined := path.Join(strings.ReplaceAll(string(av), `\`, "/"), strings.ReplaceAll(string(bv), `\`, "/"))

		return cell.String(joined)
	}

	rerr.Throw(typeError("div", []cell.Value{a, b}))

	panic("unreachable")
}

func mod(a, b cell.Value) cell.Value {
	av, aok := a.(cell.Number)
	bv, bok := b.(cell.Number)

	if !aok || !bok {
		rerr.Throw(typeError("mod", []cell.Value{a, b}))
	}

	if bv == 0 {
		rerr.Throw(rerr.New(rerr.Evaluation, "modulus by zero"))
	}

	ai, bi := int64(av), int64(bv)

	return cell.Number(ai % bi)
}

func numericOnly(name string, f func(a, b cell.Number) cell.Value) func(a, b cell.Value) cell.Value {
	return func(a, b cell.Value) cell.Value {
		av, aok := a.(cell.Number)
		bv, bok := b.(cell.Number)

		if !aok || !bok {
			rerr.Throw(typeError(name, []cell.Value{a, b}))
		}

		return f(av, bv)
	}
}

func bitwise(name string, f func(a, b int64) int64) func(a, b cell.Value) cell.Value {
	return func(a, b cell.Value) cell.Value {
		av, aok := a.(cell.Number)
		bv, bok := b.(cell.Number)

		if !aok || !bok {
			rerr.Throw(typeError(name, []cell.Value{a, b}))
		}

		return cell.Number(f(int64(av), int64(bv)))
	}
}

func binary(name string, f func(a, b cell.Value) cell.Value) *cell.Builtin {
	return &cell.Builtin{
		Ident: name,
		Min:   2,
		Max:   2,
		Eager: func(args []cell.Value) cell.Value {
			return f(args[0], args[1])
		},
	}
}

func unary(name string, f func(v cell.Value) cell.Value) *cell.Builtin {
	return &cell.Builtin{
		Ident: name,
		Min:   1,
		Max:   1,
		Eager: func(args []cell.Value) cell.Value {
			return f(args[0])
		},
	}
}
