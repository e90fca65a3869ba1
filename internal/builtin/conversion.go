// Released under an MIT license. See LICENSE.

package builtin

import (
	"math"
	"path"
	"strconv"
	"strings"

	"github.com/rumlisp/rumlisp/internal/cell"
	"github.com/rumlisp/rumlisp/internal/rerr"
)

// conversionBuiltins covers spec.md §4.5's numeric rounding family,
// the show/repr/parse string conversions, and chars (a string split
// into its one-character-each pieces).
func conversionBuiltins() map[string]*cell.Builtin {
	return map[string]*cell.Builtin{
		"trunc": numFn("trunc", math.Trunc),
		"floor": numFn("floor", math.Floor),
		"ceil":  numFn("ceil", math.Ceil),
		"round": numFn("round", math.Round),
		"abs":   unary("abs", abs),

		"show": unary("show", func(v cell.Value) cell.Value { return cell.String(cell.Show(v)) }),
		"repr": unary("repr", func(v cell.Value) cell.Value { return cell.String(cell.Repr(v)) }),
		"parse": unary("parse", parse),
		"chars": unary("chars", chars),
	}
}

func numFn(name string, f func(float64) float64) *cell.Builtin {
	return unary(name, func(v cell.Value) cell.Value {
		n, ok := v.(cell.Number)
		if !ok {
			rerr.Throw(typeError(name, []cell.Value{v}))
		}

		return cell.Number(f(float64(n)))
	})
}

// abs is polymorphic: the magnitude of a number, or the canonicalized
// absolute path of a string (spec.md §4.5's host-boundary path
// builtins share this "string doubles as a path" convention).
func abs(v cell.Value) cell.Value {
	switch t := v.(type) {
	case cell.Number:
		return cell.Number(math.Abs(float64(t)))
	case cell.String:
		return cell.String(path.Clean("/" + strings.ReplaceAll(string(t), `\`, "/")))
	}

	rerr.Throw(typeError("abs", []cell.Value{v}))

	panic("unreachable")
}

func parse(v cell.Value) cell.Value {
	s, ok := v.(cell.String)
	if !ok {
		rerr.Throw(typeError("parse", []cell.Value{v}))
	}

	n, err := strconv.ParseFloat(string(s), 64)
	if err != nil {
		rerr.Throw(rerr.New(rerr.Evaluation, "cannot parse %q as a number", string(s)))
	}

	return cell.Number(n)
}

func chars(v cell.Value) cell.Value {
	s, ok := v.(cell.String)
	if !ok {
		rerr.Throw(typeError("chars", []cell.Value{v}))
	}

	runes := []rune(string(s))
	items := make([]cell.Value, len(runes))

	for i, r := range runes {
		items[i] = cell.String(string(r))
	}

	return cell.NewList(items...)
}
