// Released under an MIT license. See LICENSE.

package macro

import (
	"testing"

	"github.com/rumlisp/rumlisp/internal/ast"
	"github.com/rumlisp/rumlisp/internal/lexer"
	"github.com/rumlisp/rumlisp/internal/loc"
)

// parseDefSrc parses a full `(macro (name pattern...) template)` form,
// mimicking what the reader does: consume the opening `(` and the
// `macro` identifier itself before handing the lexer to ParseDef.
func parseDefSrc(t *testing.T, src string) *Def {
	t.Helper()

	lx := lexer.New(src, "<test>")

	open := lx.Next()
	if open.Literal != "(" {
		t.Fatalf("expected ( got %q", open.Literal)
	}

	kw := lx.Next()
	if kw.Literal != "macro" {
		t.Fatalf("expected macro keyword got %q", kw.Literal)
	}

	def, err := ParseDef(lx)
	if err != nil {
		t.Fatalf("ParseDef: %v", err)
	}

	return def
}

func TestExpandSimpleCapture(t *testing.T) {
	def := parseDefSrc(t, `(macro (unless %c{expr} %b{expr}) (%c () %b))`)

	reg := NewRegistry()
	if err := reg.Define(def); err != nil {
		t.Fatalf("Define: %v", err)
	}

	cond := ast.NewVar(loc0(), "done")
	body := ast.NewNumber(loc0(), 42)

	got, err := reg.Expand("unless", []ast.Node{cond, body}, loc0())
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}

	s, ok := got.(*ast.SExpr)
	if !ok {
		t.Fatalf("expected *ast.SExpr, got %T", got)
	}

	if s.Head != cond {
		t.Errorf("expected head to be the captured condition node")
	}

	if len(s.Args) != 2 {
		t.Fatalf("expected 2 args (the unit branch and the body), got %d", len(s.Args))
	}

	if !ast.IsUnit(s.Args[0]) {
		t.Errorf("expected the first arg to be the unit expression")
	}

	if s.Args[1] != body {
		t.Errorf("expected the second arg to be the captured body node")
	}
}

func TestExpandRepeatSplice(t *testing.T) {
	def := parseDefSrc(t, `(macro (listof %x{expr}%*) [%%x])`)

	reg := NewRegistry()
	if err := reg.Define(def); err != nil {
		t.Fatalf("Define: %v", err)
	}

	a := ast.NewNumber(loc0(), 1)
	b := ast.NewNumber(loc0(), 2)
	c := ast.NewNumber(loc0(), 3)

	got, err := reg.Expand("listof", []ast.Node{a, b, c}, loc0())
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}

	l, ok := got.(*ast.ListExpr)
	if !ok {
		t.Fatalf("expected *ast.ListExpr, got %T", got)
	}

	if len(l.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(l.Items))
	}
}

func TestDefineDuplicateNameIsError(t *testing.T) {
	reg := NewRegistry()

	def1 := parseDefSrc(t, `(macro (twice %x{expr}) (%x))`)
	if err := reg.Define(def1); err != nil {
		t.Fatalf("first Define: %v", err)
	}

	def2 := parseDefSrc(t, `(macro (twice %y{expr}) (%y))`)
	if err := reg.Define(def2); err == nil {
		t.Fatalf("expected redefinition error, got nil")
	}
}

func TestLiteralPatternTermMustMatchExactly(t *testing.T) {
	def := parseDefSrc(t, `(macro (arrow %a{expr} then %b{expr}) [%a %b])`)

	reg := NewRegistry()
	if err := reg.Define(def); err != nil {
		t.Fatalf("Define: %v", err)
	}

	a := ast.NewNumber(loc0(), 1)
	notThen := ast.NewVar(loc0(), "else")
	b := ast.NewNumber(loc0(), 2)

	if _, err := reg.Expand("arrow", []ast.Node{a, notThen, b}, loc0()); err == nil {
		t.Fatalf("expected a match failure when the literal term %q is not present", "then")
	}

	thenIdent := ast.NewVar(loc0(), "then")

	got, err := reg.Expand("arrow", []ast.Node{a, thenIdent, b}, loc0())
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}

	if _, ok := got.(*ast.ListExpr); !ok {
		t.Fatalf("expected *ast.ListExpr, got %T", got)
	}
}

func loc0() loc.T {
	return loc.T{Line: 1, Char: 1, Name: "<test>"}
}
