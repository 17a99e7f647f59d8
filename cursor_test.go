package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursor(t *testing.T) {
	toks, err := Tokenize("1 + 2 * 3")
	require.NoError(t, err)
	c := newCursor(toks)

	assert.Equal(t, TokenNum, c.current().Kind)
	assert.Equal(t, TokenAdd, c.next().Kind)
	assert.Equal(t, OpNone, c.takeAddOp(), "take must not match a number")
	assert.Equal(t, TokenNum, c.current().Kind, "failed take must not move")

	assert.Equal(t, float32(1), c.consume().Num)
	assert.Equal(t, OpNone, c.takeMulOp())
	assert.Equal(t, OpNone, c.takeExpOp())
	assert.Equal(t, OpAdd, c.takeAddOp())
	assert.Equal(t, float32(2), c.consume().Num)
	assert.Equal(t, OpMul, c.takeMulOp())
	tok, err := c.expect(TokenNum)
	require.NoError(t, err)
	assert.Equal(t, float32(3), tok.Num)

	// Reads at the end keep returning EOF.
	for i := 0; i < 3; i++ {
		assert.Equal(t, TokenEOF, c.current().Kind)
		assert.Equal(t, TokenEOF, c.next().Kind)
		assert.Equal(t, TokenEOF, c.consume().Kind)
		assert.Equal(t, OpNone, c.takeAddOp())
	}
	_, err = c.expect(TokenEOF)
	assert.NoError(t, err)
}

func TestCursorExpect(t *testing.T) {
	toks, err := Tokenize("( 12")
	require.NoError(t, err)
	c := newCursor(toks)

	_, err = c.expect(TokenClose)
	var te *TokenError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "(", te.Text)
	assert.Equal(t, 0, te.Pos())
	assert.Equal(t, 0, te.End())

	_, err = c.expect(TokenClose)
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "12", te.Text)
	assert.Equal(t, 2, te.Pos())
	assert.Equal(t, 3, te.End())

	_, err = c.expect(TokenClose)
	var ee *EndError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, 4, ee.Pos())
}

func TestCursorAddsEOF(t *testing.T) {
	c := newCursor(nil)
	assert.Equal(t, TokenEOF, c.current().Kind)
	c = newCursor([]Token{num("7", 7, 0, 0)})
	assert.Equal(t, TokenNum, c.consume().Kind)
	assert.Equal(t, eof(1), c.current())
}
