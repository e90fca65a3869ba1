// Released under an MIT license. See LICENSE.

package eval

import (
	"testing"

	"github.com/rumlisp/rumlisp/internal/cell"
	"github.com/rumlisp/rumlisp/internal/macro"
	"github.com/rumlisp/rumlisp/internal/reader"
)

// run reads every top-level form in src and evaluates each in a fresh
// top-level environment, returning every result in order.
func run(t *testing.T, src string) []cell.Value {
	t.Helper()

	macros := macro.NewRegistry()
	e := New(macros)
	scope := e.NewTopEnv()

	r := reader.New(src, "<test>", macros)

	nodes, err := r.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll(%q): %v", src, err)
	}

	results := make([]cell.Value, len(nodes))
	for i, n := range nodes {
		results[i] = e.Eval(n, scope)
	}

	return results
}

func mustNumber(t *testing.T, v cell.Value) float64 {
	t.Helper()

	n, ok := v.(cell.Number)
	if !ok {
		t.Fatalf("expected a number, got %#v", v)
	}

	return float64(n)
}

// TestLetAndInc is scenario 1 from spec.md §8.
func TestLetAndInc(t *testing.T) {
	results := run(t, `(let x 41) (let (inc n) (add n 1)) (inc x)`)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	if mustNumber(t, results[0]) != 41 {
		t.Errorf("result 0: %#v", results[0])
	}

	if !cell.IsClosure(results[1]) {
		t.Errorf("result 1: expected a closure, got %#v", results[1])
	}

	if mustNumber(t, results[2]) != 42 {
		t.Errorf("result 2: %#v", results[2])
	}
}

// TestListPushLen is scenario 2 from spec.md §8.
func TestListPushLen(t *testing.T) {
	results := run(t, `(let xs [1 2 3]) (push xs 4) (len xs)`)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	// Every form has been evaluated by now, so result 0 is the very list
	// push returned as result 1.
	xs, ok := results[0].(*cell.List)
	if !ok || results[1] != cell.Value(xs) {
		t.Fatalf("result 0: expected the list push returned as result 1, got %#v and %#v", results[0], results[1])
	}

	if mustNumber(t, results[2]) != 4 {
		t.Errorf("result 2: expected 4, got %#v", results[2])
	}

	// push mutated the list xs aliases, per spec.md §3/§5 reference
	// sharing.
	if len(xs.Items) != 4 {
		t.Errorf("expected the original list to grow in place, got %#v", xs.Items)
	}
}

// TestFactorial is scenario 3 from spec.md §8: boolean selection as the
// sole conditional primitive, used recursively.
func TestFactorial(t *testing.T) {
	results := run(t, `(let (fact n) ((= n 0) 1 (mul n (fact (sub n 1))))) (fact 5)`)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	if mustNumber(t, results[1]) != 120 {
		t.Errorf("fact 5: expected 120, got %#v", results[1])
	}
}

// TestDictGetTryget is scenario 4 from spec.md §8.
func TestDictGetTryget(t *testing.T) {
	results := run(t, `(let d { (1 "a") (2 "b") }) (get d 1) (tryget d 3)`)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	if s, ok := results[1].(cell.String); !ok || s != "a" {
		t.Errorf("get d 1: expected \"a\", got %#v", results[1])
	}

	if results[2] != cell.Unit {
		t.Errorf("tryget d 3: expected unit fallback, got %#v", results[2])
	}
}

// TestEmptyDoIsError is scenario 5 from spec.md §8.
func TestEmptyDoIsError(t *testing.T) {
	macros := macro.NewRegistry()
	e := New(macros)
	scope := e.NewTopEnv()

	r := reader.New(`(do)`, "<test>", macros)

	nodes, err := r.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("expected (do) to panic with an evaluation error")
		}
	}()

	e.Eval(nodes[0], scope)
}

// TestUnlessMacro is scenario 6 from spec.md §8.
func TestUnlessMacro(t *testing.T) {
	results := run(t, `(macro (unless %c{expr} %b{expr}) (%c () %b)) (unless (= 1 2) "ran") (unless (= 1 1) "ran")`)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	if results[0] != cell.Unit {
		t.Errorf("macro def result: expected unit, got %#v", results[0])
	}

	if s, ok := results[1].(cell.String); !ok || s != "ran" {
		t.Errorf("unless (1 != 2): expected \"ran\", got %#v", results[1])
	}

	if results[2] != cell.Unit {
		t.Errorf("unless (1 == 1): expected unit, got %#v", results[2])
	}
}

// TestBooleanSelectionEvaluatesOneBranch pins spec.md §8's invariant
// directly: the branch not selected must never be evaluated, proven by
// putting a call to an undefined name there, which would abort
// evaluation if it ran.
func TestBooleanSelectionEvaluatesOneBranch(t *testing.T) {
	results := run(t, `(#t (add 1 2) (undefined-name))`)
	if len(results) != 1 || mustNumber(t, results[0]) != 3 {
		t.Fatalf("expected [3], got %#v", results)
	}

	results = run(t, `(#f (undefined-name) (add 1 2))`)
	if len(results) != 1 || mustNumber(t, results[0]) != 3 {
		t.Fatalf("expected [3], got %#v", results)
	}
}

// TestEnvironmentCaptureVisibility pins spec.md §8's invariant that a
// closure's captured environment sees later outer mutation.
func TestEnvironmentCaptureVisibility(t *testing.T) {
	results := run(t, `
		(let x 1)
		(let (peek) x)
		(let x 2)
		(peek)
	`)

	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}

	if mustNumber(t, results[3]) != 2 {
		t.Errorf("peek after outer mutation: expected 2, got %#v", results[3])
	}
}

// TestArityMismatchBeforeArgEvaluation pins spec.md §8's invariant that
// an arity mismatch is raised before any argument expression runs.
func TestArityMismatchBeforeArgEvaluation(t *testing.T) {
	macros := macro.NewRegistry()
	e := New(macros)
	scope := e.NewTopEnv()

	r := reader.New(`(let (one n) n) (one (undefined-name) (undefined-name))`, "<test>", macros)

	nodes, err := r.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}

	e.Eval(nodes[0], scope)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected an arity-mismatch panic")
		}
	}()

	e.Eval(nodes[1], scope)
}

func TestStackIntrospection(t *testing.T) {
	results := run(t, `(let (inner) (__stack__)) (let (outer) (inner)) (outer)`)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	l, ok := results[2].(*cell.List)
	if !ok {
		t.Fatalf("expected __stack__ to return a list, got %#v", results[2])
	}

	if len(l.Items) < 2 {
		t.Fatalf("expected at least 2 stack frames, got %#v", l.Items)
	}
}

// TestAndOrShortCircuit pins and/or's contract directly: and returns
// the first falsy argument (or the last, if all are truthy) without
// evaluating anything past it; or returns the first truthy argument
// (or the last, if all are falsy). An unevaluated undefined-name call
// would panic if the short circuit let it run.
func TestAndOrShortCircuit(t *testing.T) {
	results := run(t, `(and #t #f) (and #t #t) (and #f (undefined-name))`)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	if results[0] != cell.False {
		t.Errorf("(and #t #f) = %#v, want #f", results[0])
	}

	if results[1] != cell.True {
		t.Errorf("(and #t #t) = %#v, want #t", results[1])
	}

	if results[2] != cell.False {
		t.Errorf("(and #f (undefined-name)) = %#v, want #f", results[2])
	}

	results = run(t, `(or #f #t) (or #f #f) (or #t (undefined-name))`)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	if results[0] != cell.True {
		t.Errorf("(or #f #t) = %#v, want #t", results[0])
	}

	if results[1] != cell.False {
		t.Errorf("(or #f #f) = %#v, want #f", results[1])
	}

	if results[2] != cell.True {
		t.Errorf("(or #t (undefined-name)) = %#v, want #t", results[2])
	}
}

func TestEvalSharesCurrentEnvironment(t *testing.T) {
	results := run(t, `(let x 10) (eval "(add x 1)")`)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	if mustNumber(t, results[1]) != 11 {
		t.Errorf("eval result: expected 11, got %#v", results[1])
	}
}
