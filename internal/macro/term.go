// Released under an MIT license. See LICENSE.

// Package macro implements RumLisp's pattern-based, parse-time macro
// system (spec.md §4.3).
//
// spec.md's own design notes (§4.3, §9) say the source repository's
// NFA-pointer matcher is unfinished and sanction replacing it with "a
// deterministic backtracking matcher over the argument sequence... this
// is equivalent for the documented directive set and simpler to prove
// correct." That is what this package implements. There is no oh analog
// — oh has no macro system — so the term/pattern/template shapes below
// are built directly from spec.md §4.3's grammar, with the
// recursive-descent-over-tokens control flow borrowed structurally from
// how internal/reader/parser/parser.go walks a token stream.
package macro

import "github.com/rumlisp/rumlisp/internal/ast"

// Kind is the category of a capture term (spec.md §4.3's
// "%name{kind}").
type Kind string

const (
	KindExpr   Kind = "expr"
	KindToken  Kind = "token"
	KindNumber Kind = "number"
	KindString Kind = "string"
	KindIdent  Kind = "ident"
)

// TermTag distinguishes the shapes of pattern term spec.md §4.3
// enumerates.
type TermTag int

const (
	TagLiteral TermTag = iota // A bare atom the argument must match exactly.
	TagCapture                // %name{kind}
	TagGroup                  // %name(...)
	TagSelector               // %name[choice...]
	TagStruct                 // (...), [...], {...} with no leading %name.
)

// Term is one element of a compiled macro pattern.
type Term struct {
	Tag     TermTag
	Name    string // Bound name for Capture/Group/Selector (and for a Repeat, the name that moves up).
	Kind    Kind   // For TagCapture.
	Bracket byte   // '(', '[', or '{' for TagGroup/TagStruct.
	Inner   []Term // Nested pattern for TagGroup/TagStruct.
	Choices []Term // For TagSelector: each alternative, tried in order.
	Literal ast.Node // For TagLiteral.
	Repeat  byte     // 0, '?', '*', or '+'.
}
