package calculator

import (
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// Operands supplies arguments to a Func. Each call to NextOperand parses
// one more atomic term from the input following the function name, so
// "max 10 4 + 2" gives max the operands 10 and 4.
type Operands interface {
	// NextOperand parses and evaluates the next atomic term. Errors are the
	// same as for any other parse, e.g. *EndError if the input has no more
	// terms.
	NextOperand() (float32, error)
}

// Func is a native function. Functions pull their own arguments, so the
// grammar never needs to know how many a function takes.
type Func interface {
	// Call evaluates the function, pulling as many operands from args as the
	// function needs, in order.
	Call(args Operands) (float32, error)
	// Arity returns the number of operands Call pulls.
	Arity() int
}

type unary struct {
	f func(float32) (float32, error)
}

func (u unary) Call(args Operands) (float32, error) {
	x, err := args.NextOperand()
	if err != nil {
		return 0, err
	}
	return u.f(x)
}

func (unary) Arity() int { return 1 }

type binary struct {
	f func(float32, float32) (float32, error)
}

func (b binary) Call(args Operands) (float32, error) {
	x, err := args.NextOperand()
	if err != nil {
		return 0, err
	}
	y, err := args.NextOperand()
	if err != nil {
		return 0, err
	}
	return b.f(x, y)
}

func (binary) Arity() int { return 2 }

type ternary struct {
	f func(float32, float32, float32) (float32, error)
}

func (t ternary) Call(args Operands) (float32, error) {
	x, err := args.NextOperand()
	if err != nil {
		return 0, err
	}
	y, err := args.NextOperand()
	if err != nil {
		return 0, err
	}
	z, err := args.NextOperand()
	if err != nil {
		return 0, err
	}
	return t.f(x, y, z)
}

func (ternary) Arity() int { return 3 }

// Unary wraps a fallible function of one operand into a Func.
func Unary(f func(float32) (float32, error)) Func {
	return unary{f}
}

// Binary wraps a fallible function of two operands into a Func.
func Binary(f func(float32, float32) (float32, error)) Func {
	return binary{f}
}

// Ternary wraps a fallible function of three operands into a Func.
func Ternary(f func(float32, float32, float32) (float32, error)) Func {
	return ternary{f}
}

// FuncOf converts a Go function into a Func. fn may take one, two, or three
// float32 parameters and return either float32 or (float32, error). A Func is
// returned as is. Any other value is an error.
func FuncOf(fn any) (Func, error) {
	switch f := fn.(type) {
	case Func:
		return f, nil
	case func(float32) float32:
		return unary{func(x float32) (float32, error) { return f(x), nil }}, nil
	case func(float32) (float32, error):
		return unary{f}, nil
	case func(float32, float32) float32:
		return binary{func(x, y float32) (float32, error) { return f(x, y), nil }}, nil
	case func(float32, float32) (float32, error):
		return binary{f}, nil
	case func(float32, float32, float32) float32:
		return ternary{func(x, y, z float32) (float32, error) { return f(x, y, z), nil }}, nil
	case func(float32, float32, float32) (float32, error):
		return ternary{f}, nil
	default:
		return nil, fmt.Errorf("calculator: cannot use %T as a function", fn)
	}
}

// stdconsts and stdfuncs are the bindings installed by InitBuiltins.
var (
	stdconsts = map[string]float32{
		"pi": math.Pi,
		"e":  math.E,
	}
	stdfuncs = map[string]func(float32) float32{
		"sin":  lift(math.Sin),
		"asin": lift(math.Asin),
		"cos":  lift(math.Cos),
		"acos": lift(math.Acos),
		"tan":  lift(math.Tan),
		"atan": lift(math.Atan),
		"r2d":  func(x float32) float32 { return x * 180 / math.Pi },
		"d2r":  func(x float32) float32 { return x * math.Pi / 180 },
	}
)

func lift(f func(float64) float64) func(float32) float32 {
	return func(x float32) float32 {
		return float32(f(float64(x)))
	}
}

// bigfuncs computes the extended built-ins in arbitrary precision. Each must
// set out to its result; the return value is ignored. Out-of-domain inputs
// panic with big.ErrNaN.
var bigfuncs = map[string]func(out, in *big.Float) *big.Float{
	"exp": bigfloat.Exp,
	"ln":  bigfloat.Log,
	"log": func(out, in *big.Float) *big.Float {
		bigfloat.Log(out, in)
		in.SetFloat64(10).SetPrec(out.Prec())
		bigfloat.Log(in, in)
		return out.Quo(out, in)
	},
	"sqrt": (*big.Float).Sqrt,
}

type monadic struct {
	name string
	prec uint
	f    func(out, in *big.Float) *big.Float
}

func (m monadic) Call(args Operands) (float32, error) {
	x, err := args.NextOperand()
	if err != nil {
		return 0, err
	}
	return m.eval(x)
}

func (m monadic) eval(x float32) (r float32, err error) {
	if math.IsNaN(float64(x)) {
		return 0, &RuntimeError{Msg: "invalid argument", Err: DomainError{X: x, Func: m.name}}
	}
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		var nan big.ErrNaN
		switch e := p.(type) {
		case error:
			if !errors.As(e, &nan) {
				panic(p)
			}
		case string:
			// Some bigfloat functions panic with a plain message.
		default:
			panic(p)
		}
		r, err = 0, &RuntimeError{Msg: "invalid argument", Err: DomainError{X: x, Func: m.name, NaN: nan}}
	}()
	in := new(big.Float).SetPrec(m.prec).SetFloat64(float64(x))
	out := new(big.Float).SetPrec(m.prec)
	m.f(out, in)
	f, _ := out.Float32()
	return f, nil
}

func (monadic) Arity() int { return 1 }

// Monadic wraps an arbitrary-precision function of one variable into a Func.
// The operand is converted to a big.Float with prec bits, and the result is
// rounded to the nearest float32. If f is called on an argument outside its
// domain, it should panic with an error of type big.ErrNaN, which Call
// reports as a *RuntimeError wrapping a DomainError.
func Monadic(name string, prec uint, f func(out, in *big.Float) *big.Float) Func {
	return monadic{name: name, prec: prec, f: f}
}
