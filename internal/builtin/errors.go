// Released under an MIT license. See LICENSE.

package builtin

import (
	"strings"

	"github.com/rumlisp/rumlisp/internal/rerr"
)

// newTypeError builds the standardized message spec.md §4.4 specifies:
// "unaccepted arguments types (T1 T2 …) for '<name>'". Its source
// location is filled in by the evaluator's call-site frame, not here —
// a builtin has no AST location of its own to report.
func newTypeError(name string, typeNames []string) *rerr.T {
	return rerr.New(rerr.Evaluation, "unaccepted arguments types (%s) for '%s'", strings.Join(typeNames, " "), name)
}
