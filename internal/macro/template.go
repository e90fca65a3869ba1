// Released under an MIT license. See LICENSE.

package macro

import (
	"github.com/rumlisp/rumlisp/internal/ast"
	"github.com/rumlisp/rumlisp/internal/lexer"
	"github.com/rumlisp/rumlisp/internal/loc"
	"github.com/rumlisp/rumlisp/internal/rerr"
)

// tmplNode is a compiled macro template, built once at `macro` reading
// time and replayed against a fresh Bindings set on every matching call.
type tmplNode interface{}

// tmplAtom is a literal number, string, or identifier carried over into
// every expansion verbatim.
type tmplAtom struct {
	Node ast.Node
}

// tmplSubst is a `%name` (Splice false) or `%%name` (Splice true)
// reference into the match's bindings.
type tmplSubst struct {
	Name   string
	Splice bool
}

// tmplGroup is a `(...)`, `[...]`, or `{...}` template group, expanded
// into an SExpr, ListExpr, or DictExpr respectively.
type tmplGroup struct {
	Bracket byte
	Items   []tmplNode
}

func parseTemplate(ts *tokSrc) tmplNode {
	tok := ts.next()

	switch {
	case tok.Kind == lexer.Symbol && tok.Literal == "%":
		return parseTemplateSubst(ts)
	case tok.Kind == lexer.Symbol && isOpenBracket(tok.Literal):
		closer := closerFor(tok.Literal[0])

		var items []tmplNode

		for {
			p := ts.peek()
			if p.Kind == lexer.Symbol && p.Literal == closer {
				ts.next()

				break
			}

			if p.Kind == lexer.EOF {
				rerr.Throwf(rerr.Syntactic, p.At, "unexpected end of input in macro template")
			}

			items = append(items, parseTemplate(ts))
		}

		return tmplGroup{Bracket: tok.Literal[0], Items: items}
	case tok.Kind == lexer.Number:
		return tmplAtom{ast.NewNumber(tok.At, parseNum(tok))}
	case tok.Kind == lexer.String:
		return tmplAtom{ast.NewString(tok.At, tok.Literal)}
	case tok.Kind == lexer.Identifier:
		return tmplAtom{ast.NewVar(tok.At, tok.Literal)}
	}

	rerr.Throwf(rerr.Syntactic, tok.At, "unexpected token %q in macro template", tok.Literal)

	panic("unreachable")
}

func parseTemplateSubst(ts *tokSrc) tmplNode {
	next := ts.next()
	if next.Kind == lexer.Symbol && next.Literal == "%" {
		nameTok := expectKind(ts, lexer.Identifier, "splice name")

		return tmplSubst{Name: nameTok.Literal, Splice: true}
	}

	if next.Kind != lexer.Identifier {
		rerr.Throwf(rerr.Syntactic, next.At, "expected substitution name, found %q", next.Literal)
	}

	return tmplSubst{Name: next.Literal}
}

// expand replays node against the bindings produced by a successful
// match, returning the AST nodes it contributes. Every shape but a
// splice contributes exactly one node; a `%%name` splice contributes
// however many nodes its repeat capture matched, to be spliced into the
// enclosing group.
func expand(node tmplNode, b *bindings, callLoc loc.T) []ast.Node {
	switch n := node.(type) {
	case tmplAtom:
		return []ast.Node{relocate(n.Node, callLoc)}
	case tmplSubst:
		return expandSubst(n, b, callLoc)
	case tmplGroup:
		return expandGroup(n, b, callLoc)
	}

	return nil
}

func expandSubst(n tmplSubst, b *bindings, callLoc loc.T) []ast.Node {
	bind, ok := b.get(n.Name)
	if !ok {
		rerr.Throwf(rerr.MacroExpansion, callLoc, "macro template refers to unbound pattern name %q", n.Name)
	}

	if n.Splice {
		if !bind.IsRepeat {
			rerr.Throwf(rerr.MacroExpansion, callLoc, "%%%%%s splices a repeated capture, but %%%s did not repeat", n.Name, n.Name)
		}

		return append([]ast.Node{}, bind.Nodes...)
	}

	if bind.IsRepeat {
		rerr.Throwf(rerr.MacroExpansion, callLoc, "%%%s repeated; use %%%%%s to splice it", n.Name, n.Name)
	}

	return []ast.Node{bind.Node}
}

func expandGroup(n tmplGroup, b *bindings, callLoc loc.T) []ast.Node {
	var items []ast.Node

	for _, it := range n.Items {
		items = append(items, expand(it, b, callLoc)...)
	}

	switch n.Bracket {
	case '(':
		if len(items) == 0 {
			return []ast.Node{ast.NewSExpr(callLoc, nil, nil)}
		}

		return []ast.Node{ast.NewSExpr(callLoc, items[0], items[1:])}
	case '[':
		return []ast.Node{ast.NewListExpr(callLoc, items)}
	case '{':
		pairs := make([]ast.DictPair, 0, len(items))

		for _, it := range items {
			s, ok := it.(*ast.SExpr)
			if !ok || s.Head == nil || len(s.Args) != 1 {
				rerr.Throwf(rerr.MacroExpansion, callLoc, "dict template entries must be (key value) pairs")
			}

			pairs = append(pairs, ast.DictPair{Key: s.Head, Val: s.Args[0]})
		}

		return []ast.Node{ast.NewDictExpr(callLoc, pairs)}
	}

	return items
}

// relocate returns a copy of n stamped with callLoc, so a literal atom
// written directly in a macro's template points at the call site rather
// than the macro's own definition when it surfaces in an error.
func relocate(n ast.Node, callLoc loc.T) ast.Node {
	switch t := n.(type) {
	case *ast.Number:
		return ast.NewNumber(callLoc, t.Value)
	case *ast.String:
		return ast.NewString(callLoc, t.Value)
	case *ast.Var:
		return ast.NewVar(callLoc, t.Name)
	}

	return n
}
