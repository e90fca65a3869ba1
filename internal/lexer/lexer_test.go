// Released under an MIT license. See LICENSE.

package lexer

import "testing"

func tokens(src string) []Token {
	l := New(src, "test")

	var out []Token

	for {
		t := l.Next()
		out = append(out, t)

		if t.Kind == EOF || t.Kind == Error {
			break
		}
	}

	return out
}

func TestAtoms(t *testing.T) {
	toks := tokens(`42 -3.5 foo "hi there"`)

	want := []struct {
		kind    Kind
		literal string
	}{
		{Number, "42"},
		{Number, "-3.5"},
		{Identifier, "foo"},
		{String, "hi there"},
		{EOF, ""},
	}

	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}

	for i, w := range want {
		if toks[i].Kind != w.kind || toks[i].Literal != w.literal {
			t.Errorf("token %d: got %v %q, want %v %q", i, toks[i].Kind, toks[i].Literal, w.kind, w.literal)
		}
	}
}

func TestComment(t *testing.T) {
	toks := tokens("1 ; a comment\n2")

	if len(toks) != 3 {
		t.Fatalf("got %d tokens, want 3: %v", len(toks), toks)
	}

	if toks[0].Literal != "1" || toks[1].Literal != "2" || toks[2].Kind != EOF {
		t.Errorf("unexpected tokens: %v", toks)
	}
}

func TestBrackets(t *testing.T) {
	l := New("(+ 1 [2])", "test")

	for l.Next().Kind != EOF {
	}

	if !l.Brackets().Balanced() {
		t.Errorf("expected balanced brackets, got %+v", l.Brackets())
	}
}

func TestUnmatchedBracket(t *testing.T) {
	l := New(")", "test")

	tok := l.Next()
	if tok.Kind != Error {
		t.Fatalf("expected an error token, got %v", tok)
	}
}

func TestLookNextIdempotent(t *testing.T) {
	l := New("foo bar", "test")

	a := l.LookNext()
	b := l.LookNext()

	if a != b {
		t.Fatalf("LookNext not idempotent: %v != %v", a, b)
	}

	n := l.Next()
	if n != a {
		t.Fatalf("Next after LookNext: got %v, want %v", n, a)
	}
}

func TestIdentifierReclassifiedAsNumber(t *testing.T) {
	toks := tokens("-42")
	if toks[0].Kind != Number {
		t.Errorf("expected -42 to lex as a number, got %v", toks[0].Kind)
	}

	toks = tokens("-foo")
	if toks[0].Kind != Identifier {
		t.Errorf("expected -foo to lex as an identifier, got %v", toks[0].Kind)
	}
}
