package calculator

// cursor is a forward-only view over a token sequence. The last token is
// always EOF, and reads past the end keep returning it.
type cursor struct {
	toks []Token
	p    int
}

func newCursor(toks []Token) *cursor {
	if len(toks) == 0 || toks[len(toks)-1].Kind != TokenEOF {
		end := 0
		if len(toks) > 0 {
			end = toks[len(toks)-1].End + 1
		}
		toks = append(toks, Token{Kind: TokenEOF, Text: "EOF", Start: end, End: end})
	}
	return &cursor{toks: toks}
}

func (c *cursor) at(i int) Token {
	if i >= len(c.toks) {
		return c.toks[len(c.toks)-1]
	}
	return c.toks[i]
}

// current returns the token under the cursor.
func (c *cursor) current() Token {
	return c.at(c.p)
}

// next returns the token after the current one without moving.
func (c *cursor) next() Token {
	return c.at(c.p + 1)
}

// consume returns the current token and advances past it. The cursor never
// advances past EOF.
func (c *cursor) consume() Token {
	tok := c.current()
	if tok.Kind != TokenEOF {
		c.p++
	}
	return tok
}

// expect consumes a token and checks that it has the given kind.
func (c *cursor) expect(kind TokenKind) (Token, error) {
	tok := c.consume()
	switch {
	case tok.Kind == kind:
		return tok, nil
	case tok.Kind == TokenEOF:
		return tok, &EndError{Col: tok.Start}
	default:
		return tok, &TokenError{Text: tok.Text, Start: tok.Start, Stop: tok.End}
	}
}

// take consumes the current token if it has the given kind and returns its
// operator. Otherwise the cursor stays put and the result is OpNone.
func (c *cursor) take(kind TokenKind) Op {
	tok := c.consume()
	if tok.Kind == kind {
		return tok.Op
	}
	if tok.Kind != TokenEOF {
		c.p--
	}
	return OpNone
}

func (c *cursor) takeAddOp() Op { return c.take(TokenAdd) }
func (c *cursor) takeMulOp() Op { return c.take(TokenMul) }
func (c *cursor) takeExpOp() Op { return c.take(TokenExp) }
