// Released under an MIT license. See LICENSE.

package builtin

import (
	"strings"

	"github.com/michaelmacinnis/adapted"

	"github.com/rumlisp/rumlisp/internal/ast"
	"github.com/rumlisp/rumlisp/internal/cell"
	"github.com/rumlisp/rumlisp/internal/rerr"
)

// ModuleNames is the set of module names import can resolve against. A
// real host embedding RumLisp populates it; the core interpreter ships
// it empty, so import always falls through to the "unsupported in this
// build" error without ever touching a filesystem (spec.md §1's file
// I/O Non-goal). Entries a host adds are matched with
// github.com/michaelmacinnis/adapted's Match, the same glob matcher
// oh's module search uses.
var ModuleNames []string //nolint:gochecknoglobals

// hostUnixBuiltins is populated by host_unix.go's init() on platforms
// golang.org/x/sys/unix supports; on other platforms it stays empty and
// umask is simply absent from the table, rather than present as a
// builtin that always errors.
var hostUnixBuiltins = map[string]*cell.Builtin{} //nolint:gochecknoglobals

// hostBuiltins covers spec.md §4.5's host-boundary operations. $ and .
// need no real host and are fully implemented; read, import, and @ need
// file I/O or subprocess execution, both explicit Non-goals, so they
// parse fine but throw a clear "unsupported in this build" error.
func hostBuiltins() map[string]*cell.Builtin {
	table := map[string]*cell.Builtin{
		"$": pathHandle(),
		".": dotAccess(),

		"read":   unsupported("read"),
		"import": importBuiltin(),
		"@":      unsupported("@"),
	}

	for name, b := range hostUnixBuiltins {
		table[name] = b
	}

	return table
}

// pathHandle builds a path string out of its arguments' literal
// identifier text rather than their evaluated value — ($ usr local
// bin) is the string "usr/local/bin", never three variable lookups
// (spec.md §4.5).
func pathHandle() *cell.Builtin {
	return &cell.Builtin{
		Ident: "$",
		Min:   0,
		Max:   -1,
		Direct: func(args []ast.Node, _ cell.Scope, _ cell.EvalFunc) cell.Value {
			segments := make([]string, len(args))

			for i, a := range args {
				v, ok := a.(*ast.Var)
				if !ok {
					rerr.Throwf(rerr.Evaluation, a.At(), "'$' expects bare identifiers as path segments")
				}

				segments[i] = v.Name
			}

			return cell.String(strings.Join(segments, "/"))
		},
	}
}

// dotAccess looks a literal key up in a dict — (. d key) reads key's
// identifier text as a string key, never as a variable reference
// (spec.md §4.5); the dict itself is still evaluated normally.
func dotAccess() *cell.Builtin {
	return &cell.Builtin{
		Ident: ".",
		Min:   2,
		Max:   2,
		Direct: func(args []ast.Node, env cell.Scope, eval cell.EvalFunc) cell.Value {
			d, ok := eval(args[0], env).(*cell.Dict)
			if !ok {
				rerr.Throwf(rerr.Evaluation, args[0].At(), "'.' expects a dict as its first argument")
			}

			key, ok := args[1].(*ast.Var)
			if !ok {
				rerr.Throwf(rerr.Evaluation, args[1].At(), "'.' expects a bare identifier as its key")
			}

			v, found := d.Get(cell.String(key.Name))
			if !found {
				rerr.Throwf(rerr.Evaluation, args[1].At(), "key %q not found", key.Name)
			}

			return v
		},
	}
}

func unsupported(name string) *cell.Builtin {
	return &cell.Builtin{
		Ident: name,
		Min:   0,
		Max:   -1,
		Eager: func([]cell.Value) cell.Value {
			rerr.Throw(rerr.New(rerr.Evaluation, "'%s' is unsupported in this build", name))

			panic("unreachable")
		},
	}
}

// importBuiltin matches a module name against each ModuleNames entry
// with shell-glob matching. With ModuleNames left empty (the default for
// the core interpreter, which does no file I/O) no matching happens.
// Whether or not an entry matches, import ends with the unsupported
// error.
func importBuiltin() *cell.Builtin {
	return &cell.Builtin{
		Ident: "import",
		Min:   1,
		Max:   1,
		Eager: func(args []cell.Value) cell.Value {
			name, ok := args[0].(cell.String)
			if !ok {
				rerr.Throw(typeError("import", args))
			}

			for _, candidate := range ModuleNames {
				matched, err := adapted.Match(candidate, string(name))
				if err == nil && matched {
					rerr.Throw(rerr.New(rerr.Evaluation, "'import' is unsupported in this build"))
				}
			}

			rerr.Throw(rerr.New(rerr.Evaluation, "'import' is unsupported in this build"))

			panic("unreachable")
		},
	}
}
