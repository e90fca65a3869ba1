// Released under an MIT license. See LICENSE.

package macro

import "github.com/rumlisp/rumlisp/internal/lexer"

// tokSrc wraps a *lexer.T with arbitrary pushback, which the pattern
// parser needs to disambiguate a `%` that starts a repeat marker
// (`%*`, `%+`, `%?`) from a `%` that starts the next pattern term —
// both look identical until the token after it is inspected.
type tokSrc struct {
	lx  *lexer.T
	buf []lexer.Token
}

func newTokSrc(lx *lexer.T) *tokSrc {
	return &tokSrc{lx: lx}
}

func (t *tokSrc) peek() lexer.Token {
	if len(t.buf) == 0 {
		t.buf = append(t.buf, t.lx.Next())
	}

	return t.buf[len(t.buf)-1]
}

func (t *tokSrc) next() lexer.Token {
	tok := t.peek()
	t.buf = t.buf[:len(t.buf)-1]

	return tok
}

func (t *tokSrc) pushback(tok lexer.Token) {
	t.buf = append(t.buf, tok)
}
