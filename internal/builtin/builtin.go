// Released under an MIT license. See LICENSE.

// Package builtin is RumLisp's immutable registry of primitive
// operations (spec.md §4.5), installed at the bottom of every fresh
// environment.
//
// Grounded on oh's internal/engine/commands package: a flat
// map[string]func(cell.I) cell.I table built by a handful of Register
// helper functions grouped by concern (arithmetic.go, string.go,
// list.go in oh's tree). RumLisp keeps that grouping-by-file shape;
// each group's ...Builtins function returns the map entries it owns and
// Table, below, merges them.
package builtin

import (
	"github.com/rumlisp/rumlisp/internal/cell"
	"github.com/rumlisp/rumlisp/internal/rerr"
)

// Table returns a fresh copy of the full builtin registry. A fresh map
// per call means nothing downstream can mutate the registry every
// other evaluator shares; __stack__ and eval are added on top by
// package eval, which needs a live evaluator handle neither group here
// has.
func Table() map[string]*cell.Builtin {
	table := map[string]*cell.Builtin{}

	for _, group := range []map[string]*cell.Builtin{
		arithmeticBuiltins(),
		comparisonBuiltins(),
		conversionBuiltins(),
		sequenceBuiltins(),
		controlBuiltins(),
		hostBuiltins(),
		booleanBuiltins(),
	} {
		for name, b := range group {
			table[name] = b
		}
	}

	return table
}

func typeError(name string, args []cell.Value) *rerr.T {
	names := make([]string, len(args))
	for i, a := range args {
		names[i] = a.Name()
	}

	return newTypeError(name, names)
}
