// Released under an MIT license. See LICENSE.

// Command rumlisp is RumLisp's CLI entry point (spec.md §6): run a
// script file, run a -c command, or start a REPL when neither is
// given.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rumlisp/rumlisp/internal/ast"
	"github.com/rumlisp/rumlisp/internal/cell"
	"github.com/rumlisp/rumlisp/internal/eval"
	"github.com/rumlisp/rumlisp/internal/macro"
	"github.com/rumlisp/rumlisp/internal/reader"
	"github.com/rumlisp/rumlisp/internal/rerr"
	"github.com/rumlisp/rumlisp/internal/system/options"
	"github.com/rumlisp/rumlisp/internal/ui"
)

const version = "rumlisp 0.1.0"

// session bundles the one registry, one evaluator, and one top-level
// environment a single interpreter instance owns (spec.md §5: "a
// single interpreter instance therefore owns one registry and one
// initial environment").
type session struct {
	macros *macro.Registry
	eval   *eval.T
	env    cell.Scope
}

func newSession() *session {
	macros := macro.NewRegistry()
	ev := eval.New(macros)

	return &session{macros: macros, eval: ev, env: ev.NewTopEnv()}
}

// run parses every top-level form in src, then evaluates each in
// order, stopping at the first failure (spec.md §7: "a single failure
// aborts that top-level form"; for a batch of forms from one source we
// extend that to abort the remaining forms in the same source too).
func (s *session) run(src, name string) ([]cell.Value, error) {
	r := reader.New(src, name, s.macros)

	nodes, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	results := make([]cell.Value, 0, len(nodes))

	for _, n := range nodes {
		v, err := s.evalOne(n)
		if err != nil {
			return results, err
		}

		results = append(results, v)
	}

	return results, nil
}

func (s *session) evalOne(n ast.Node) (v cell.Value, err error) {
	defer rerr.Recover(&err)

	return s.eval.Eval(n, s.env), nil
}

func main() {
	options.Parse(version)

	s := newSession()
	s.loadPrelude()

	switch {
	case options.Command() != "":
		runBatch(s, options.Command(), "<command>")
	case options.Script() != "":
		runScript(s, options.Script())
	default:
		ui.Run(&replEvaluator{s: s})
	}
}

// loadPrelude evaluates $RISP_LIB/prelude.risp into the session's
// top-level environment before any user code runs (spec.md §6).
// Absence of the variable, or of the file it names, is a non-fatal
// warning — oh's own house style for a missing optional resource,
// never an error return.
func (s *session) loadPrelude() {
	dir := os.Getenv("RISP_LIB")
	if dir == "" {
		fmt.Fprintln(os.Stderr, "rumlisp: RISP_LIB not set, skipping prelude")
		return
	}

	path := filepath.Join(dir, "prelude.risp")

	contents, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		fmt.Fprintf(os.Stderr, "rumlisp: cannot read prelude %s: %s\n", path, err.Error())
		return
	}

	if _, err := s.run(string(contents), path); err != nil {
		fmt.Fprintf(os.Stderr, "rumlisp: error loading prelude %s: %s\n", path, err.Error())
	}
}

func runScript(s *session, path string) {
	contents, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	runBatch(s, string(contents), path)
}

func runBatch(s *session, src, name string) {
	if _, err := s.run(src, name); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

// replEvaluator adapts session to ui.Evaluator, formatting results the
// way spec.md §6 specifies for the REPL: unit produces nothing, every
// other value is printed on its own line with strings quoted (i.e.
// cell.Repr, not cell.Show).
type replEvaluator struct {
	s *session
}

// namer is satisfied by internal/env.T; asserted for rather than added
// to cell.Scope, since listing bound names is a REPL introspection
// need, not part of the environment contract spec.md §3 describes.
type namer interface {
	Names() []string
}

func (e *replEvaluator) Evaluate(line string) ([]string, error) {
	trimmed := strings.TrimSpace(line)

	switch {
	case trimmed == ":help":
		return []string{
			":exit    quit the REPL",
			":help    show this message",
			":env     list names bound in the top-level environment",
		}, nil
	case trimmed == ":env":
		n, ok := e.s.env.(namer)
		if !ok {
			return nil, nil
		}

		return n.Names(), nil
	case strings.HasPrefix(trimmed, ":"):
		return []string{"unknown command " + trimmed + "; try :help"}, nil
	}

	values, err := e.s.run(line, "<repl>")

	results := make([]string, 0, len(values))

	for _, v := range values {
		if v == cell.Unit {
			continue
		}

		results = append(results, cell.Repr(v))
	}

	return results, err
}
