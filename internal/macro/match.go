// Released under an MIT license. See LICENSE.

package macro

import "github.com/rumlisp/rumlisp/internal/ast"

// binding is what a single pattern name captured: either one argument
// node, or (for a `%*`/`%+`/`%?` repeat) the ordered sequence of nodes
// each repetition matched.
type binding struct {
	Node     ast.Node
	Nodes    []ast.Node
	IsRepeat bool
}

type bindings struct {
	m map[string]*binding
}

func newBindings() *bindings {
	return &bindings{m: map[string]*binding{}}
}

func (b *bindings) get(name string) (*binding, bool) {
	v, ok := b.m[name]

	return v, ok
}

func (b *bindings) set(name string, n ast.Node) {
	if name == "" {
		return
	}

	b.m[name] = &binding{Node: n}
}

func (b *bindings) setRepeat(name string, nodes []ast.Node) {
	if name == "" {
		return
	}

	b.m[name] = &binding{Nodes: nodes, IsRepeat: true}
}

func (b *bindings) clone() *bindings {
	cp := newBindings()
	for k, v := range b.m {
		cp.m[k] = v
	}

	return cp
}

// match runs terms against args, the argument expressions collected at
// a macro call site exactly as the reader collects them for an ordinary
// call. It is a deterministic backtracking matcher: repeats are matched
// greedily, then backtracked one element at a time if the remainder of
// the pattern cannot follow; a selector tries its choices in the order
// written and commits to the first that matches locally.
func match(terms []Term, args []ast.Node) (*bindings, bool) {
	b := newBindings()
	if matchSeq(terms, args, b) {
		return b, true
	}

	return nil, false
}

func matchSeq(terms []Term, args []ast.Node, b *bindings) bool {
	if len(terms) == 0 {
		return len(args) == 0
	}

	t := terms[0]
	rest := terms[1:]

	if t.Repeat != 0 {
		return matchRepeat(t, rest, args, b)
	}

	if len(args) == 0 {
		return false
	}

	if !matchOne(t, args[0], b) {
		return false
	}

	return matchSeq(rest, args[1:], b)
}

func matchRepeat(t Term, rest []Term, args []ast.Node, b *bindings) bool {
	min := 0
	if t.Repeat == '+' {
		min = 1
	}

	max := len(args)
	if t.Repeat == '?' && max > 1 {
		max = 1
	}

	inst := t
	inst.Repeat = 0
	inst.Name = ""

	for count := max; count >= min; count-- {
		trial := b.clone()
		nodes := make([]ast.Node, 0, count)

		ok := true

		for i := 0; i < count; i++ {
			if !matchOne(inst, args[i], trial) {
				ok = false

				break
			}

			nodes = append(nodes, args[i])
		}

		if !ok {
			continue
		}

		if t.Name != "" {
			trial.setRepeat(t.Name, nodes)
		}

		if matchSeq(rest, args[count:], trial) {
			*b = *trial

			return true
		}
	}

	return false
}

func matchOne(t Term, arg ast.Node, b *bindings) bool {
	switch t.Tag {
	case TagLiteral:
		return literalEqual(t.Literal, arg)
	case TagCapture:
		if !kindMatches(t.Kind, arg) {
			return false
		}

		b.set(t.Name, arg)

		return true
	case TagGroup:
		items, ok := structItems('(', arg)
		if !ok || !matchSeq(t.Inner, items, b) {
			return false
		}

		b.set(t.Name, arg)

		return true
	case TagStruct:
		items, ok := structItems(t.Bracket, arg)
		if !ok {
			return false
		}

		return matchSeq(t.Inner, items, b)
	case TagSelector:
		for _, choice := range t.Choices {
			trial := b.clone()
			if matchOne(choice, arg, trial) {
				*b = *trial

				if t.Name != "" {
					b.set(t.Name, arg)
				}

				return true
			}
		}

		return false
	}

	return false
}

// structItems flattens the contents of a bracketed argument node into
// the sequence a nested pattern matches against: an SExpr's head
// followed by its args, a ListExpr's items, or a DictExpr's pairs (each
// re-expressed as a two-element `(key value)` SExpr).
func structItems(bracket byte, arg ast.Node) ([]ast.Node, bool) {
	switch bracket {
	case '(':
		s, ok := arg.(*ast.SExpr)
		if !ok {
			return nil, false
		}

		if s.Head == nil {
			return nil, true
		}

		items := make([]ast.Node, 0, 1+len(s.Args))
		items = append(items, s.Head)
		items = append(items, s.Args...)

		return items, true
	case '[':
		l, ok := arg.(*ast.ListExpr)
		if !ok {
			return nil, false
		}

		return l.Items, true
	case '{':
		d, ok := arg.(*ast.DictExpr)
		if !ok {
			return nil, false
		}

		items := make([]ast.Node, 0, len(d.Pairs))
		for _, p := range d.Pairs {
			items = append(items, ast.NewSExpr(p.Key.At(), p.Key, []ast.Node{p.Val}))
		}

		return items, true
	}

	return nil, false
}

func literalEqual(lit ast.Node, arg ast.Node) bool {
	switch l := lit.(type) {
	case *ast.Number:
		a, ok := arg.(*ast.Number)

		return ok && a.Value == l.Value
	case *ast.String:
		a, ok := arg.(*ast.String)

		return ok && a.Value == l.Value
	case *ast.Var:
		a, ok := arg.(*ast.Var)

		return ok && a.Name == l.Name
	}

	return false
}

func kindMatches(k Kind, arg ast.Node) bool {
	switch k {
	case KindExpr:
		return true
	case KindToken:
		return isAtom(arg)
	case KindNumber:
		_, ok := arg.(*ast.Number)

		return ok
	case KindString:
		_, ok := arg.(*ast.String)

		return ok
	case KindIdent:
		_, ok := arg.(*ast.Var)

		return ok
	}

	return false
}

func isAtom(n ast.Node) bool {
	switch n.(type) {
	case *ast.Number, *ast.String, *ast.Var:
		return true
	}

	return false
}
