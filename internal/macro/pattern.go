// Released under an MIT license. See LICENSE.

package macro

import (
	"strconv"
	"strings"

	"github.com/rumlisp/rumlisp/internal/ast"
	"github.com/rumlisp/rumlisp/internal/lexer"
	"github.com/rumlisp/rumlisp/internal/loc"
	"github.com/rumlisp/rumlisp/internal/rerr"
)

// Def is a single compiled `(macro (name pattern...) template)` form.
type Def struct {
	Name     string
	Pattern  []Term
	Template tmplNode
	Loc      loc.T
}

// ParseDef reads a macro definition from lx. The caller (internal/reader)
// has already consumed the opening `(` of the macro form and the `macro`
// identifier itself; ParseDef reads everything from the header's opening
// `(` through the form's closing `)`.
func ParseDef(lx *lexer.T) (def *Def, err error) {
	defer rerr.Recover(&err)

	ts := newTokSrc(lx)

	expectSymbol(ts, "(")
	nameTok := expectKind(ts, lexer.Identifier, "macro name")

	var terms []Term

	for {
		tok := ts.peek()
		if tok.Kind == lexer.Symbol && tok.Literal == ")" {
			ts.next()

			break
		}

		if tok.Kind == lexer.EOF {
			rerr.Throwf(rerr.Syntactic, tok.At, "unexpected end of input in macro pattern")
		}

		terms = append(terms, parseTerm(ts))
	}

	tmpl := parseTemplate(ts)
	expectSymbol(ts, ")")

	return &Def{Name: nameTok.Literal, Pattern: terms, Template: tmpl, Loc: nameTok.At}, nil
}

func parseTerm(ts *tokSrc) Term {
	tok := ts.next()

	switch {
	case tok.Kind == lexer.Symbol && tok.Literal == "%":
		return maybeRepeat(ts, parsePercentTerm(ts))
	case tok.Kind == lexer.Symbol && isOpenBracket(tok.Literal):
		inner := parseTermsUntil(ts, closerFor(tok.Literal[0]))

		return maybeRepeat(ts, Term{Tag: TagStruct, Bracket: tok.Literal[0], Inner: inner})
	case tok.Kind == lexer.Number:
		return maybeRepeat(ts, Term{Tag: TagLiteral, Literal: ast.NewNumber(tok.At, parseNum(tok))})
	case tok.Kind == lexer.String:
		return maybeRepeat(ts, Term{Tag: TagLiteral, Literal: ast.NewString(tok.At, tok.Literal)})
	case tok.Kind == lexer.Identifier:
		return maybeRepeat(ts, Term{Tag: TagLiteral, Literal: ast.NewVar(tok.At, tok.Literal)})
	}

	rerr.Throwf(rerr.Syntactic, tok.At, "unexpected token %q in macro pattern", tok.Literal)

	panic("unreachable")
}

// parsePercentTerm reads what follows a `%` already consumed by the
// caller: a capture name, then `{kind}`, `(...)`, or `[...]`.
func parsePercentTerm(ts *tokSrc) Term {
	nameTok := expectKind(ts, lexer.Identifier, "pattern capture name")
	name := nameTok.Literal

	next := ts.peek()

	switch {
	case next.Kind == lexer.Symbol && next.Literal == "{":
		ts.next()
		kindTok := expectKind(ts, lexer.Identifier, "capture kind")
		expectSymbol(ts, "}")

		return Term{Tag: TagCapture, Name: name, Kind: Kind(kindTok.Literal)}
	case next.Kind == lexer.Symbol && next.Literal == "(":
		ts.next()
		inner := parseTermsUntil(ts, ")")

		return Term{Tag: TagGroup, Name: name, Bracket: '(', Inner: inner}
	case next.Kind == lexer.Symbol && next.Literal == "[":
		ts.next()
		choices := parseTermsUntil(ts, "]")

		return Term{Tag: TagSelector, Name: name, Choices: choices}
	}

	rerr.Throwf(rerr.Syntactic, next.At, "expected {, (, or [ after %%%s", name)

	panic("unreachable")
}

// maybeRepeat looks for a trailing `%?`, `%*`, or `%+` and, if found,
// attaches it to term. Any other `%` is left for the next parseTerm call
// to read as the start of a new term.
func maybeRepeat(ts *tokSrc, term Term) Term {
	p1 := ts.peek()
	if !(p1.Kind == lexer.Symbol && p1.Literal == "%") {
		return term
	}

	ts.next()

	p2 := ts.peek()
	if p2.Kind == lexer.Identifier && len(p2.Literal) == 1 && strings.ContainsRune("?*+", rune(p2.Literal[0])) {
		ts.next()
		term.Repeat = p2.Literal[0]

		return term
	}

	ts.pushback(p1)

	return term
}

func parseTermsUntil(ts *tokSrc, closer string) []Term {
	var terms []Term

	for {
		tok := ts.peek()
		if tok.Kind == lexer.Symbol && tok.Literal == closer {
			ts.next()

			break
		}

		if tok.Kind == lexer.EOF {
			rerr.Throwf(rerr.Syntactic, tok.At, "unexpected end of input, expected %q", closer)
		}

		terms = append(terms, parseTerm(ts))
	}

	return terms
}

func expectSymbol(ts *tokSrc, lit string) lexer.Token {
	tok := ts.next()
	if tok.Kind != lexer.Symbol || tok.Literal != lit {
		rerr.Throwf(rerr.Syntactic, tok.At, "expected %q, found %q", lit, tok.Literal)
	}

	return tok
}

func expectKind(ts *tokSrc, k lexer.Kind, what string) lexer.Token {
	tok := ts.next()
	if tok.Kind != k {
		rerr.Throwf(rerr.Syntactic, tok.At, "expected %s, found %q", what, tok.Literal)
	}

	return tok
}

func isOpenBracket(lit string) bool {
	return lit == "(" || lit == "[" || lit == "{"
}

func closerFor(open byte) string {
	switch open {
	case '(':
		return ")"
	case '[':
		return "]"
	case '{':
		return "}"
	}

	return ""
}

func parseNum(tok lexer.Token) float64 {
	v, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		rerr.Throwf(rerr.Syntactic, tok.At, "malformed number %q", tok.Literal)
	}

	return v
}
