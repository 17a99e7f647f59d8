package calculator

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// operands is a fixed list of arguments for calling a Func directly.
type operands struct {
	v []float32
	n int
}

func (o *operands) NextOperand() (float32, error) {
	if o.n >= len(o.v) {
		return 0, &EndError{Col: o.n}
	}
	o.n++
	return o.v[o.n-1], nil
}

func TestFuncOf(t *testing.T) {
	boom := errors.New("boom")
	cases := []struct {
		name  string
		fn    any
		arity int
		args  []float32
		r     float32
		err   error
	}{
		{"unary", func(x float32) float32 { return -x }, 1, []float32{2}, -2, nil},
		{"unary-err", func(x float32) (float32, error) { return 0, boom }, 1, []float32{2}, 0, boom},
		{"binary", func(x, y float32) float32 { return x - y }, 2, []float32{5, 3}, 2, nil},
		{"binary-err", func(x, y float32) (float32, error) { return x * y, nil }, 2, []float32{5, 3}, 15, nil},
		{"ternary", func(x, y, z float32) float32 { return x*y + z }, 3, []float32{2, 3, 4}, 10, nil},
		{"ternary-err", func(x, y, z float32) (float32, error) { return 0, boom }, 3, []float32{2, 3, 4}, 0, boom},
		{"func", Binary(func(x, y float32) (float32, error) { return x / y, nil }), 2, []float32{1, 4}, 0.25, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f, err := FuncOf(c.fn)
			require.NoError(t, err)
			assert.Equal(t, c.arity, f.Arity())
			args := &operands{v: c.args}
			r, err := f.Call(args)
			assert.Equal(t, c.r, r)
			assert.ErrorIs(t, err, c.err)
			assert.Equal(t, c.arity, args.n, "operands pulled")
		})
	}
}

func TestFuncPullsInOrder(t *testing.T) {
	f := Ternary(func(x, y, z float32) (float32, error) { return x*100 + y*10 + z, nil })
	r, err := f.Call(&operands{v: []float32{1, 2, 3, 4}})
	require.NoError(t, err)
	assert.Equal(t, float32(123), r)
}

func TestFuncTooFewOperands(t *testing.T) {
	called := false
	f := Binary(func(x, y float32) (float32, error) { called = true; return 0, nil })
	_, err := f.Call(&operands{v: []float32{1}})
	var ee *EndError
	assert.ErrorAs(t, err, &ee)
	assert.False(t, called)
}

func TestMonadic(t *testing.T) {
	f := Monadic("sqrt", 64, (*big.Float).Sqrt)
	assert.Equal(t, 1, f.Arity())
	r, err := f.Call(&operands{v: []float32{2.25}})
	require.NoError(t, err)
	assert.Equal(t, float32(1.5), r)

	_, err = f.Call(&operands{v: []float32{-4}})
	var re *RuntimeError
	require.ErrorAs(t, err, &re)
	var de DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "sqrt", de.Func)
	assert.ErrorAs(t, err, new(big.ErrNaN))
	assert.Equal(t, "invalid argument: -4 outside domain of sqrt", err.Error())
}

func TestMonadicPanics(t *testing.T) {
	f := Monadic("bad", 64, func(out, in *big.Float) *big.Float { panic(errors.New("not a domain error")) })
	assert.Panics(t, func() { f.Call(&operands{v: []float32{1}}) })
}
