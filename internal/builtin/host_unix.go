// Released under an MIT license. See LICENSE.

//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package builtin

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/rumlisp/rumlisp/internal/cell"
	"github.com/rumlisp/rumlisp/internal/rerr"
)

// umask reads (0 args) or sets (1 arg) the process umask, returning the
// previous mask as an "0oNNN"-formatted string. Grounded directly on
// oh's internal/engine/commands/umask_unix.go, which wires
// golang.org/x/sys/unix the same way; the read-don't-set trick (set to
// the new mask, then restore the old one if nothing was actually asked
// to change) is oh's, used verbatim.
func umask(args []cell.Value) cell.Value {
	if len(args) > 1 {
		rerr.Throw(typeError("umask", args))
	}

	nmask := int64(0)

	if len(args) == 1 {
		n, ok := args[0].(cell.Number)
		if !ok {
			rerr.Throw(typeError("umask", args))
		}

		nmask = int64(n)
	}

	omask := unix.Umask(int(nmask))

	if len(args) == 0 {
		unix.Umask(omask)
	}

	return cell.String(fmt.Sprintf("0o%o", omask))
}

func init() {
	hostUnixBuiltins["umask"] = &cell.Builtin{Ident: "umask", Min: 0, Max: 1, Eager: umask}
}
