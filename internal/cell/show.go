// Released under an MIT license. See LICENSE.

package cell

import (
	"strings"

	"github.com/michaelmacinnis/adapted"
)

// Show renders v the friendly way: a top-level string prints as its raw
// text (no quotes), everything else prints the way Repr would (so a
// string nested inside a list or dict is still quoted — otherwise
// `[1 "a"]` and `[1 a]` would print identically). Used by the print/
// println builtins.
func Show(v Value) string {
	if s, ok := v.(String); ok {
		return string(s)
	}

	return Repr(v)
}

// Repr renders v as a canonical, read-back-oriented representation: a
// string is always quoted. Used by the repr builtin and by the REPL's
// "strings quoted" result printing (spec.md §6).
//
// String quoting is RumLisp's own dollar-single-quote escaping, reused
// verbatim from oh's adapted.CanonicalString (wires
// github.com/michaelmacinnis/adapted) — the core reader does not
// process escapes in string literals (spec.md §6), so Repr's output is
// meant for display, not for feeding back through the reader.
func Repr(v Value) string {
	switch t := v.(type) {
	case String:
		return adapted.CanonicalString(string(t))
	case Number:
		return t.String()
	case *List:
		parts := make([]string, len(t.Items))
		for i, item := range t.Items {
			parts[i] = Repr(item)
		}

		return "[" + strings.Join(parts, " ") + "]"
	case *Dict:
		parts := make([]string, 0, t.Len())
		for _, e := range t.Entries() {
			parts = append(parts, "("+Repr(e.Items[0])+" "+Repr(e.Items[1])+")")
		}

		return "{" + strings.Join(parts, " ") + "}"
	case *Closure:
		if t.Label != "" {
			return "<closure " + t.Label + ">"
		}

		return "<closure>"
	case *Builtin:
		return "<builtin " + t.Ident + ">"
	default:
		if v == Unit {
			return "()"
		}

		return v.Name()
	}
}
