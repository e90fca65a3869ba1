// Released under an MIT license. See LICENSE.

// Package ui is RumLisp's read-eval-print loop.
package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/peterh/liner"
)

// Evaluator evaluates one line of input, returning the already
// show/repr-formatted text to print for each resulting value other
// than unit — spec.md §6: "each resulting value (other than unit) is
// printed on its own line, strings quoted." A line beginning with `:`
// other than `:exit` (handled by Run itself, since it ends the loop)
// is passed through unchanged; Evaluate decides what, if anything, a
// given `:`-command prints.
type Evaluator interface {
	Evaluate(line string) (results []string, err error)
}

// words seeds the line-editor's tab completion with RumLisp's reserved
// identifiers and a handful of its most common builtins; grounded on
// the completer shape in oh's internal/ui/ui.go, simplified from a
// live parse-ahead completer (oh completes against the grammar's
// expected-token set) to a fixed word list, since RumLisp's reader has
// no equivalent "Expected()" introspection to drive one.
var words = []string{ //nolint:gochecknoglobals
	"let", "do", "macro", "add", "sub", "mul", "div", "mod",
	"get", "set", "push", "pop", "len", "print", "println",
	"and", "or", "not", "eval",
}

// Run launches RumLisp's REPL: print a greeting, then read one line at
// a time from stdin, terminating on :exit and otherwise handing the
// line to e verbatim, `:`-commands included (spec.md §6). Grounded on
// oh's internal/ui/ui.go's use of github.com/peterh/liner for history
// and line editing; oh drives a shared lexer across the whole session
// so a single top-level form can span prompts, but spec.md §6 defines
// the REPL contract purely in terms of whole lines, so there is no
// equivalent continuation state here — each line is read and evaluated
// independently.
func Run(e Evaluator) {
	fmt.Println("RumLisp REPL. :help for help, :exit to quit.")

	cli := liner.NewLiner()
	defer cli.Close()

	cli.SetCtrlCAborts(true)
	cli.SetWordCompleter(func(line string, pos int) (head string, completions []string, tail string) {
		head, tail = line[:pos], line[pos:]

		start := strings.LastIndexAny(head, " \t()[]{}") + 1
		prefix := head[start:]

		for _, w := range words {
			if strings.HasPrefix(w, prefix) {
				completions = append(completions, head[:start]+w)
			}
		}

		return head, completions, tail
	})

	for {
		line, err := cli.Prompt("rumlisp> ")
		if err != nil {
			return
		}

		cli.AppendHistory(line)

		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, ":exit") {
			return
		}

		results, err := e.Evaluate(line)

		for _, r := range results {
			fmt.Println(r)
		}

		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
		}
	}
}
