// Released under an MIT license. See LICENSE.

// Package reader is RumLisp's recursive-descent S-expression parser,
// built directly on internal/lexer.
//
// Grounded on internal/reader/parser/parser.go's top-level shape (a
// reader wraps a lexer and a registry, Next/ReadAll drive it to
// exhaustion) and on spec.md §4.2's per-form rules, which this file
// follows directly — oh's own parser is goyacc-generated (LALR) and
// does not resemble a hand-written descent parser, so the per-form
// control flow below is new, while the lexer-wrapping shape and the
// "checked token" idea (EOF/Error tokens become raised failures) are
// carried over.
package reader

import (
	"errors"
	"strconv"

	"github.com/rumlisp/rumlisp/internal/ast"
	"github.com/rumlisp/rumlisp/internal/lexer"
	"github.com/rumlisp/rumlisp/internal/loc"
	"github.com/rumlisp/rumlisp/internal/macro"
	"github.com/rumlisp/rumlisp/internal/rerr"
)

// ErrEOF is returned by Next once the source is exhausted. It is not a
// failure: the top-level driver (ReadAll, the REPL, cmd/rumlisp) treats
// it as ordinary termination, not an error to report.
var ErrEOF = errors.New("reader: end of input")

// reserved is the fixed table of special-form keywords (spec.md §4.2,
// §9 "the macro layer does not add to this table").
var reserved = map[string]bool{
	"let":   true,
	"\\":    true,
	"do":    true,
	"macro": true,
}

func isReserved(name string) bool {
	return reserved[name]
}

// T (reader) parses one source text's worth of top-level forms. The
// macro registry it holds is shared across every Reader the host
// constructs during a single process's lifetime (spec.md §5: "the
// macro registry is process-wide... and never cleared").
type T struct {
	lx     *lexer.T
	macros *macro.Registry
}

// New creates a reader over src. macros must not be nil; share one
// Registry across every Reader so macro definitions persist the way
// spec.md §5 requires.
func New(src, name string, macros *macro.Registry) *T {
	return &T{lx: lexer.New(src, name), macros: macros}
}

// Next reads and returns one top-level expression, or ErrEOF once the
// source is exhausted.
func (r *T) Next() (node ast.Node, err error) {
	defer rerr.Recover(&err)

	if r.lx.LookNext().Kind == lexer.EOF {
		return nil, ErrEOF
	}

	return r.readExpr(), nil
}

// ReadAll drives Next to exhaustion, returning every top-level
// expression read.
func (r *T) ReadAll() ([]ast.Node, error) {
	var nodes []ast.Node

	for {
		n, err := r.Next()
		if errors.Is(err, ErrEOF) {
			return nodes, nil
		}

		if err != nil {
			return nodes, err
		}

		nodes = append(nodes, n)
	}
}

func (r *T) readExpr() ast.Node {
	tok := r.lx.LookNext()

	switch tok.Kind {
	case lexer.EOF:
		rerr.Throwf(rerr.Syntactic, tok.At, "unexpected end of input")
	case lexer.Error:
		rerr.Throwf(rerr.Lexical, tok.At, "%s", tok.Literal)
	case lexer.Number:
		r.lx.Next()

		return ast.NewNumber(tok.At, parseNumber(tok))
	case lexer.String:
		r.lx.Next()

		return ast.NewString(tok.At, tok.Literal)
	case lexer.Identifier:
		if isReserved(tok.Literal) {
			rerr.Throwf(rerr.Syntactic, tok.At, "%q used outside its calling position", tok.Literal)
		}

		r.lx.Next()

		return ast.NewVar(tok.At, tok.Literal)
	case lexer.Symbol:
		switch tok.Literal {
		case "(":
			return r.readSExpr(tok.At)
		case "[":
			return r.readListExpr(tok.At)
		case "{":
			return r.readDictExpr(tok.At)
		}
	}

	rerr.Throwf(rerr.Syntactic, tok.At, "unexpected token %q", tok.Literal)

	panic("unreachable")
}

// readSExpr reads a `(...)` form. openAt is the location of the `(`,
// which has been peeked but not yet consumed.
func (r *T) readSExpr(openAt loc.T) ast.Node {
	r.lx.Next() // Consume '('.

	head := r.lx.LookNext()

	if head.Kind == lexer.Identifier && isReserved(head.Literal) {
		r.lx.Next()

		switch head.Literal {
		case "let":
			return r.readLet(openAt)
		case "\\":
			return r.readLambda(openAt)
		case "do":
			return r.readDo(openAt)
		case "macro":
			return r.readMacro(openAt)
		}
	}

	items := r.readUntilClose(")")

	if len(items) == 0 {
		return ast.NewSExpr(openAt, nil, nil)
	}

	if v, ok := items[0].(*ast.Var); ok && r.macros.Has(v.Name) {
		node, err := r.macros.Expand(v.Name, items[1:], openAt)
		throwOn(err, rerr.MacroExpansion, openAt)

		return node
	}

	return ast.NewSExpr(openAt, items[0], items[1:])
}

// readUntilClose reads expressions until the next token is the symbol
// closer, consumes it, and returns everything read.
func (r *T) readUntilClose(closer string) []ast.Node {
	var items []ast.Node

	for {
		p := r.lx.LookNext()
		if p.Kind == lexer.Symbol && p.Literal == closer {
			r.lx.Next()

			break
		}

		if p.Kind == lexer.EOF {
			rerr.Throwf(rerr.Syntactic, p.At, "unexpected end of input, expected %q", closer)
		}

		items = append(items, r.readExpr())
	}

	return items
}

func (r *T) readListExpr(openAt loc.T) ast.Node {
	r.lx.Next() // Consume '['.

	return ast.NewListExpr(openAt, r.readUntilClose("]"))
}

func (r *T) readDictExpr(openAt loc.T) ast.Node {
	r.lx.Next() // Consume '{'.

	var pairs []ast.DictPair

	for {
		p := r.lx.LookNext()
		if p.Kind == lexer.Symbol && p.Literal == "}" {
			r.lx.Next()

			break
		}

		if p.Kind == lexer.EOF {
			rerr.Throwf(rerr.Syntactic, p.At, "unexpected end of input, expected %q", "}")
		}

		r.expectSymbol("(")

		key := r.readExpr()
		val := r.readExpr()

		r.expectSymbol(")")

		pairs = append(pairs, ast.DictPair{Key: key, Val: val})
	}

	return ast.NewDictExpr(openAt, pairs)
}

// readLet reads everything after `let` has been consumed: either a
// variable binding (identifier, one expression, `)`) or a function
// binding (`(`, identifier, parameter identifiers, `)`, one expression,
// `)`).
func (r *T) readLet(openAt loc.T) ast.Node {
	tok := r.lx.LookNext()

	switch {
	case tok.Kind == lexer.Identifier:
		if isReserved(tok.Literal) {
			rerr.Throwf(rerr.Syntactic, tok.At, "keyword %q is not a valid identifier", tok.Literal)
		}

		r.lx.Next()

		expr := r.readExpr()

		r.expectSymbol(")")

		return ast.NewLetVar(openAt, tok.Literal, expr)
	case tok.Kind == lexer.Symbol && tok.Literal == "(":
		r.lx.Next()

		target := r.lx.Brackets().Total() - 1

		nameTok := r.lx.Next()
		if nameTok.Kind != lexer.Identifier || isReserved(nameTok.Literal) {
			rerr.Throwf(rerr.Syntactic, nameTok.At, "expected a function name, found %q", nameTok.Literal)
		}

		params := r.readParamsUntilBalanced(target)

		body := r.readExpr()

		r.expectSymbol(")")

		return ast.NewLetFunc(openAt, nameTok.Literal, params, body)
	}

	rerr.Throwf(rerr.Syntactic, tok.At, "expected an identifier or '(' after let, found %q", tok.Literal)

	panic("unreachable")
}

func (r *T) readLambda(openAt loc.T) ast.Node {
	r.expectSymbol("(")

	target := r.lx.Brackets().Total() - 1

	params := r.readParamsUntilBalanced(target)

	body := r.readExpr()

	r.expectSymbol(")")

	return ast.NewLambda(openAt, params, body)
}

// readParamsUntilBalanced implements the bracket-counter-snapshot trick
// (spec.md §4.2): the caller has already consumed the header's opening
// `(` and computed target as the live bracket total minus one. Each
// iteration consumes one token; once consuming it brings the live total
// down to target, that token was the header's closing `)`, consumed
// uniformly as part of the loop rather than with a separate `expect`.
func (r *T) readParamsUntilBalanced(target int) []string {
	var params []string

	for {
		tok := r.lx.Next()

		if r.lx.Brackets().Total() == target {
			break
		}

		if tok.Kind == lexer.EOF {
			rerr.Throwf(rerr.Syntactic, tok.At, "unexpected end of input in parameter list")
		}

		if tok.Kind != lexer.Identifier || isReserved(tok.Literal) {
			rerr.Throwf(rerr.Syntactic, tok.At, "expected a parameter identifier, found %q", tok.Literal)
		}

		params = append(params, tok.Literal)
	}

	return params
}

func (r *T) readDo(openAt loc.T) ast.Node {
	return ast.NewDo(openAt, r.readUntilClose(")"))
}

func (r *T) readMacro(openAt loc.T) ast.Node {
	def, err := macro.ParseDef(r.lx)
	throwOn(err, rerr.Syntactic, openAt)

	throwOn(r.macros.Define(def), rerr.Syntactic, openAt)

	return ast.NewMacroDef(openAt, def.Name)
}

func (r *T) expectSymbol(lit string) {
	tok := r.lx.Next()
	if tok.Kind != lexer.Symbol || tok.Literal != lit {
		rerr.Throwf(rerr.Syntactic, tok.At, "expected %q, found %q", lit, tok.Literal)
	}
}

func parseNumber(tok lexer.Token) float64 {
	v, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		rerr.Throwf(rerr.Lexical, tok.At, "malformed number %q", tok.Literal)
	}

	return v
}

// throwOn converts err, if non-nil, into a panic: a *rerr.T is
// re-thrown as-is so its original kind and location survive; any other
// error is wrapped at kind/at.
func throwOn(err error, kind rerr.Kind, at loc.T) {
	if err == nil {
		return
	}

	if rt, ok := err.(*rerr.T); ok {
		rerr.Throw(rt)
	}

	rerr.Throwf(kind, at, "%s", err.Error())
}
