// Released under an MIT license. See LICENSE.

// Package eval is RumLisp's tree-walking evaluator.
//
// Grounded on oh's internal/engine/task evaluation loop for the
// overall shape (a driver that walks a tree, dispatching on node kind,
// maintaining an explicit environment/frame chain) — but oh's own
// evaluator is a continuation-passing SECD machine built for
// suspendable jobs, which spec.md explicitly rules out (§5: "no
// suspension points"). The dispatch-by-node-kind switch and the
// recover-wrap-repanic stack trace below are new, built directly from
// spec.md §4.4's evaluation rules and §4.4's "environment chain doubles
// as the call stack."
package eval

import (
	"github.com/rumlisp/rumlisp/internal/ast"
	"github.com/rumlisp/rumlisp/internal/builtin"
	"github.com/rumlisp/rumlisp/internal/cell"
	"github.com/rumlisp/rumlisp/internal/env"
	"github.com/rumlisp/rumlisp/internal/loc"
	"github.com/rumlisp/rumlisp/internal/macro"
	"github.com/rumlisp/rumlisp/internal/reader"
	"github.com/rumlisp/rumlisp/internal/rerr"
)

// T (evaluator) walks an AST, dispatching on node kind. It holds the
// macro registry so the `eval` builtin can restart the reader/macro
// pipeline on a string (spec.md §2: "the evaluator never re-enters the
// reader except via the eval builtin"), and a live call stack so the
// `__stack__` builtin can report it.
type T struct {
	Macros *macro.Registry

	stack []rerr.Frame
}

// New creates an evaluator sharing macros with whatever reader produced
// the AST it will walk.
func New(macros *macro.Registry) *T {
	return &T{Macros: macros}
}

// NewTopEnv builds a fresh top-level environment with the builtin table
// installed at the bottom (spec.md §2), plus __stack__, which needs a
// handle on this evaluator's live call stack and so is not part of the
// plain builtin.Table.
func (e *T) NewTopEnv() cell.Scope {
	top := env.New()

	for name, b := range builtin.Table() {
		top.Define(name, b)
	}

	top.Define("__stack__", e.stackBuiltin())
	top.Define("eval", e.evalBuiltin())

	return top
}

// Eval evaluates n in env, per spec.md §4.4's per-node-kind rules.
func (e *T) Eval(n ast.Node, scope cell.Scope) cell.Value {
	switch t := n.(type) {
	case *ast.Number:
		return cell.Number(t.Value)
	case *ast.String:
		return cell.String(t.Value)
	case *ast.Var:
		v, ok := scope.Lookup(t.Name)
		if !ok {
			rerr.Throwf(rerr.Evaluation, t.At(), "undefined variable %q", t.Name)
		}

		return v
	case *ast.SExpr:
		return e.evalSExpr(t, scope)
	case *ast.ListExpr:
		items := make([]cell.Value, len(t.Items))
		for i, it := range t.Items {
			items[i] = e.Eval(it, scope)
		}

		return cell.NewList(items...)
	case *ast.DictExpr:
		d := cell.NewDict()

		for _, p := range t.Pairs {
			k := e.Eval(p.Key, scope)
			v := e.Eval(p.Val, scope)
			d.Set(k, v)
		}

		return d
	case *ast.LetVar:
		v := e.Eval(t.Expr, scope)
		scope.Define(t.Name, v)

		return v
	case *ast.LetFunc:
		c := &cell.Closure{Label: t.Name, Params: t.Params, Body: t.Body, Capture: scope}
		scope.Define(t.Name, c)

		return c
	case *ast.Lambda:
		return &cell.Closure{Params: t.Params, Body: t.Body, Capture: scope}
	case *ast.Do:
		if len(t.Exprs) == 0 {
			rerr.Throwf(rerr.Evaluation, t.At(), "empty do block")
		}

		var result cell.Value

		for _, ex := range t.Exprs {
			result = e.Eval(ex, scope)
		}

		return result
	case *ast.MacroDef:
		return cell.Unit
	}

	rerr.Throwf(rerr.Evaluation, n.At(), "cannot evaluate node of type %T", n)

	panic("unreachable")
}

func (e *T) evalSExpr(s *ast.SExpr, scope cell.Scope) cell.Value {
	if s.Head == nil {
		return cell.Unit
	}

	head := e.Eval(s.Head, scope)

	switch callee := head.(type) {
	case *cell.Closure:
		return e.callClosure(callee, s.Args, scope, s.At())
	case *cell.Builtin:
		return e.callBuiltin(callee, s.Args, scope, s.At())
	default:
		rerr.Throwf(rerr.Evaluation, s.At(), "cannot call a value of type %s", head.Name())
	}

	panic("unreachable")
}

func (e *T) callClosure(c *cell.Closure, argExprs []ast.Node, callerEnv cell.Scope, at loc.T) cell.Value {
	if len(argExprs) != len(c.Params) {
		rerr.Throwf(rerr.Evaluation, at,
			"closure %s expected %d argument(s), got %d", frameLabel(c), len(c.Params), len(argExprs))
	}

	args := make([]cell.Value, len(argExprs))
	for i, ae := range argExprs {
		args[i] = e.Eval(ae, callerEnv)
	}

	frame := c.Capture.Push()
	for i, p := range c.Params {
		frame.Define(p, args[i])
	}

	e.stack = append(e.stack, rerr.Frame{Name: frameLabel(c), At: at})
	defer func() { e.stack = e.stack[:len(e.stack)-1] }()
	defer reraiseWithFrame(frameLabel(c), at)

	return e.Eval(c.Body, frame)
}

func (e *T) callBuiltin(b *cell.Builtin, argExprs []ast.Node, callerEnv cell.Scope, at loc.T) cell.Value {
	n := len(argExprs)
	if n < b.Min || (b.Max >= 0 && n > b.Max) {
		rerr.Throwf(rerr.Evaluation, at, "'%s' expected between %d and %d argument(s), got %d", b.Ident, b.Min, b.Max, n)
	}

	defer reraiseWithFrame(b.Ident, at)

	if b.IsDirect() {
		return b.Direct(argExprs, callerEnv, e.Eval)
	}

	args := make([]cell.Value, n)
	for i, ae := range argExprs {
		args[i] = e.Eval(ae, callerEnv)
	}

	return b.Eager(args)
}

// reraiseWithFrame is deferred by every call site that knows a frame
// name and location; it appends that frame to a propagating *rerr.T's
// trace before letting the panic continue to unwind. The innermost call
// unwinds first, so the trace lists frames from innermost outward.
func reraiseWithFrame(name string, at loc.T) func() {
	return func() {
		r := recover()
		if r == nil {
			return
		}

		if rt, ok := r.(*rerr.T); ok {
			if rt.At == nil {
				l := at
				rt.At = &l
			}

			panic(rerr.WithFrame(rt, rerr.Frame{Name: name, At: at}))
		}

		panic(r)
	}
}

func frameLabel(c *cell.Closure) string {
	if c.Label != "" {
		return c.Label
	}

	return "<lambda>"
}

func (e *T) stackBuiltin() *cell.Builtin {
	return &cell.Builtin{
		Ident: "__stack__",
		Min:   0,
		Max:   0,
		Eager: func([]cell.Value) cell.Value {
			items := make([]cell.Value, len(e.stack))

			for i, f := range e.stack {
				items[len(e.stack)-1-i] = cell.String(f.Name + " " + f.At.String())
			}

			return cell.NewList(items...)
		},
	}
}

// evalBuiltin restarts reading on a string and evaluates the result in
// the caller's own environment — "`eval` shares the current environment
// by design" (spec.md §5) — the one place the evaluator re-enters the
// reader (spec.md §2). It is Direct, not Eager, solely to get hold of
// that environment; its argument is still evaluated exactly once,
// eagerly, matching every other builtin's calling convention.
func (e *T) evalBuiltin() *cell.Builtin {
	return &cell.Builtin{
		Ident: "eval",
		Min:   1,
		Max:   1,
		Direct: func(argExprs []ast.Node, scope cell.Scope, evalFn cell.EvalFunc) cell.Value {
			val := evalFn(argExprs[0], scope)

			s, ok := val.(cell.String)
			if !ok {
				rerr.Throwf(rerr.Evaluation, argExprs[0].At(), "unaccepted argument types (%s) for 'eval'", val.Name())
			}

			r := reader.New(string(s), "<eval>", e.Macros)

			nodes, err := r.ReadAll()
			if err != nil {
				rerr.Throwf(rerr.Evaluation, argExprs[0].At(), "%s", err.Error())
			}

			var result cell.Value = cell.Unit

			for _, n := range nodes {
				result = e.Eval(n, scope)
			}

			return result
		},
	}
}
