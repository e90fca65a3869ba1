// Released under an MIT license. See LICENSE.

// Package lexer tokenizes RumLisp source text.
//
// The lexer adapts the state-function scanning approach oh's own lexer
// uses (itself adapted from Go's text/template lexer and Rob Pike's
// "Lexical Scanning in Go"), but is de-channeled: RumLisp's core is
// synchronous (spec.md §5), so Next/LookNext are plain method calls
// instead of values received from a token channel fed by a goroutine.
package lexer

import (
	"regexp"
	"strings"

	"github.com/rumlisp/rumlisp/internal/loc"
)

// Kind identifies the category of a scanned token.
type Kind int

const (
	Number Kind = iota
	String
	Symbol
	Identifier
	EOF
	Error
)

// Token is one lexical unit: a kind, its literal text, and the
// source position of its first character.
type Token struct {
	Kind    Kind
	Literal string
	At      loc.T
}

var numberPattern = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

// delimiters is the set of bytes that end an identifier-or-number run.
const delimiters = " \t\r\n()[]{};`%\""

// T (lexer) scans source text into a stream of tokens. Zero value is
// not usable; construct with New.
type T struct {
	src string
	pos int
	at  loc.T

	brackets loc.Brackets

	peeked    *Token
	peekedLen int // bytes of src consumed to produce peeked, for Next.
}

// New creates a lexer for src. Name labels the source in error messages
// and token locations (a file path, or "<repl>").
func New(src, name string) *T {
	return &T{
		src: src,
		at:  loc.T{Line: 1, Char: 1, Name: name},
	}
}

// Brackets returns the lexer's live bracket-balance counters. The
// reader snapshots this at the start of a variadic header read.
func (l *T) Brackets() loc.Brackets {
	return l.brackets
}

// LookNext returns the same token Next would, without advancing the
// lexer's position or updating the bracket counter. Idempotent: any
// number of LookNext calls followed by one Next yields the token that
// first LookNext returned.
func (l *T) LookNext() Token {
	if l.peeked == nil {
		t, n := l.scan()
		l.peeked = &t
		l.peekedLen = n
	}

	return *l.peeked
}

// Next returns the next token and advances the lexer past it, updating
// the bracket counter if the token is a bracket symbol.
func (l *T) Next() Token {
	t := l.LookNext()

	start := l.pos
	end := start + l.peekedLen
	if end > len(l.src) {
		end = len(l.src)
	}

	l.at = advance(l.at, l.src[start:end])
	l.pos = end
	l.peeked = nil

	if t.Kind == Symbol && len(t.Literal) == 1 {
		switch t.Literal[0] {
		case '(', '[', '{':
			l.brackets.Open(t.Literal[0])
		case ')', ']', '}':
			if !l.brackets.Close(t.Literal[0]) {
				return Token{Kind: Error, Literal: "unmatched bracket", At: t.At}
			}
		}
	}

	return t
}

func advance(at loc.T, consumed string) loc.T {
	for i := 0; i < len(consumed); i++ {
		at = at.Advance(consumed[i])
	}

	return at
}

// scan tokenizes the text starting at l.pos, returning the token and
// the number of source bytes it (and any skipped whitespace/comments)
// consumed.
func (l *T) scan() (Token, int) {
	start := l.pos
	at := l.at

	i := start
	for i < len(l.src) {
		if l.src[i] == ';' {
			for i < len(l.src) && l.src[i] != '\n' {
				i++
			}

			continue
		}

		if isSpace(l.src[i]) {
			i++
			continue
		}

		break
	}

	skipped := l.src[start:i]
	at = advance(at, skipped)

	if i >= len(l.src) {
		return Token{Kind: EOF, At: at}, i - start
	}

	rest := l.src[i:]

	// Rule 1: identifier-or-number, a maximal run not in delimiters.
	if !strings.ContainsRune(delimiters, rune(rest[0])) {
		n := 0
		for n < len(rest) && !strings.ContainsRune(delimiters, rune(rest[n])) {
			n++
		}

		text := rest[:n]

		kind := Identifier
		if numberPattern.MatchString(text) {
			kind = Number
		}

		return Token{Kind: kind, Literal: text, At: at}, (i - start) + n
	}

	// Rule 2: double-quoted string, multiline, non-greedy to the next
	// quote (there is no escape processing).
	if rest[0] == '"' {
		n := 1
		for n < len(rest) && rest[n] != '"' {
			n++
		}

		if n >= len(rest) {
			return Token{Kind: Error, Literal: "unterminated string", At: at}, (i - start) + n
		}

		text := rest[1:n]

		return Token{Kind: String, Literal: text, At: at}, (i - start) + n + 1
	}

	// Rule 3: individual single-character symbols.
	switch rest[0] {
	case '(', ')', '[', ']', '{', '}', '`', '%', '"', ';':
		return Token{Kind: Symbol, Literal: rest[0:1], At: at}, (i - start) + 1
	}

	return Token{Kind: Error, Literal: "unexpected character series", At: at}, (i - start) + 1
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}
