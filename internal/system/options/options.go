// Released under an MIT license. See LICENSE.

// Package options parses RumLisp's command line, grounded on oh's
// internal/system/options/options.go (docopt-go usage string, a
// package of plain accessor functions over a handful of unexported
// globals set by Parse). RumLisp's interface is far smaller than oh's
// shell-flavored one — no job control, no foreground/background
// distinction — so the usage doc and the fields behind it are cut down
// to spec.md §6's CLI contract plus a -c command string: a script path
// or command, its arguments, and REPL mode when both are absent.
package options

import (
	"os"

	"github.com/docopt/docopt-go"
	"github.com/mattn/go-isatty"
)

//nolint:gochecknoglobals
var (
	args        []string
	command     string
	interactive bool
	script      string
	usage       = `rumlisp

Usage:
  rumlisp [-i] SCRIPT [ARGUMENTS...]
  rumlisp [-i] -c COMMAND [ARGUMENTS...]
  rumlisp [-i]
  rumlisp -h
  rumlisp -v

Arguments:
  ARGUMENTS  Positional parameters; accepted, but not passed to SCRIPT or COMMAND.
  SCRIPT     Path to a RumLisp source file. With no SCRIPT and no -c,
             rumlisp starts a REPL instead.

Options:
  -c, --command=COMMAND  Evaluate COMMAND instead of reading a script.
  -i, --interactive      Accepted but not acted on; the REPL starts whenever
                         neither SCRIPT nor -c is given.
  -h, --help             Display this help.
  -v, --version          Print rumlisp's version.
`
)

// Args returns the positional arguments following SCRIPT or COMMAND,
// if any.
func Args() []string {
	return args
}

// Command returns the -c argument, or "" if none was given.
func Command() string {
	return command
}

// Script returns the path passed on the command line, or "" to mean
// "start the REPL instead" (spec.md §6: "If file is absent, enter
// REPL mode").
func Script() string {
	return script
}

// Interactive reports whether -i was given, or whether neither SCRIPT
// nor -c was given and stdin is a terminal — the same isatty check oh
// makes before enabling its interactive features. cmd/rumlisp does not
// consult it: the choice between a batch run and the REPL depends only
// on SCRIPT and -c, and the REPL always uses line editing.
func Interactive() bool {
	return interactive
}

// Parse reads os.Args into the package's accessors, matching oh's own
// docopt.ParseDoc call. -h prints usage and exits via docopt itself;
// -v is handled here since ParseDoc has no separate version hook.
func Parse(version string) {
	if len(os.Args) == 2 && (os.Args[1] == "-v" || os.Args[1] == "--version") {
		println(version)
		os.Exit(0)
	}

	opts, err := docopt.ParseDoc(usage)
	if err != nil {
		// Error in the usage doc. This should never happen.
		panic(err.Error())
	}

	script, _ = opts.String("SCRIPT")
	command, _ = opts.String("--command")
	args, _ = opts["ARGUMENTS"].([]string)

	forced, _ := opts.Bool("--interactive")
	interactive = forced || (script == "" && command == "" && isatty.IsTerminal(os.Stdin.Fd()))
}
