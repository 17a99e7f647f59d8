package calculator

import (
	"math"
)

// statement = "let" ident "=" statement | additive
// additive = multiplicative { ("+" | "-") multiplicative }
// multiplicative = exponential { ("*" | "/" | "%") exponential }
// exponential = atomic { ("**" | "//") atomic }
// atomic = num | "$" | ident | ident atomic... | ("+" | "-") atomic | "(" additive ")"
//
// Every loop folds left to right, including exponentials: 2 ** 3 ** 2 is
// (2 ** 3) ** 2.

// parser evaluates tokens as it parses them. It is the Operands given to
// native functions, which parse their own arguments.
type parser struct {
	cur *cursor
	env *Environment
}

// NextOperand parses and evaluates one atomic term.
func (p *parser) NextOperand() (float32, error) {
	return p.atomic()
}

// statement parses an assignment or an additive expression.
func (p *parser) statement() (float32, error) {
	if p.cur.current().Kind != TokenLet {
		return p.additive()
	}
	p.cur.consume()
	id, err := p.cur.expect(TokenIdent)
	if err != nil {
		return 0, err
	}
	if _, err := p.cur.expect(TokenEquals); err != nil {
		return 0, err
	}
	v, err := p.statement()
	if err != nil {
		return 0, err
	}
	p.env.AssignConstant(id.Text, v)
	return v, nil
}

func (p *parser) additive() (float32, error) {
	l, err := p.multiplicative()
	if err != nil {
		return 0, err
	}
	for op := p.cur.takeAddOp(); op != OpNone; op = p.cur.takeAddOp() {
		r, err := p.multiplicative()
		if err != nil {
			return 0, err
		}
		if l, err = arith(op, l, r); err != nil {
			return 0, err
		}
	}
	return l, nil
}

func (p *parser) multiplicative() (float32, error) {
	l, err := p.exponential()
	if err != nil {
		return 0, err
	}
	for op := p.cur.takeMulOp(); op != OpNone; op = p.cur.takeMulOp() {
		r, err := p.exponential()
		if err != nil {
			return 0, err
		}
		if l, err = arith(op, l, r); err != nil {
			return 0, err
		}
	}
	return l, nil
}

func (p *parser) exponential() (float32, error) {
	l, err := p.atomic()
	if err != nil {
		return 0, err
	}
	for op := p.cur.takeExpOp(); op != OpNone; op = p.cur.takeExpOp() {
		r, err := p.atomic()
		if err != nil {
			return 0, err
		}
		if l, err = arith(op, l, r); err != nil {
			return 0, err
		}
	}
	return l, nil
}

// atomic parses the most binding terms: literals, names and calls, signs,
// and parenthesized expressions.
func (p *parser) atomic() (float32, error) {
	tok := p.cur.consume()
	switch tok.Kind {
	case TokenNum:
		return tok.Num, nil
	case TokenLast:
		v, ok := p.env.LastResult()
		if !ok {
			return 0, &NameError{Name: tok.Text, Start: tok.Start, Stop: tok.End}
		}
		return v, nil
	case TokenIdent:
		return p.call(tok)
	case TokenAdd:
		v, err := p.atomic()
		if err != nil {
			return 0, err
		}
		if tok.Op == OpSub {
			v = -v
		}
		return v, nil
	case TokenOpen:
		v, err := p.additive()
		if err != nil {
			return 0, err
		}
		if _, err := p.cur.expect(TokenClose); err != nil {
			return 0, err
		}
		return v, nil
	case TokenEOF:
		return 0, &EndError{Col: tok.Start}
	default:
		return 0, &TokenError{Text: tok.Text, Start: tok.Start, Stop: tok.End}
	}
}

// call resolves an identifier. Constants yield their values; functions parse
// their operands from the tokens that follow.
func (p *parser) call(tok Token) (float32, error) {
	v, ok := p.env.Get(tok.Text)
	if !ok {
		return 0, &NameError{Name: tok.Text, Start: tok.Start, Stop: tok.End}
	}
	switch v.Kind {
	case Constant:
		return v.Value, nil
	case UnaryFn:
		x, err := p.atomic()
		if err != nil {
			return 0, err
		}
		return v.Unary(x), nil
	case Custom:
		r, err := v.Func.Call(p)
		if err != nil {
			return 0, classify(tok.Text, err)
		}
		return r, nil
	default:
		return 0, &FatalError{Msg: "invalid binding for " + tok.Text}
	}
}

// arith applies a binary operator. Division, modulo, and root by zero are
// errors rather than infinities.
func arith(op Op, l, r float32) (float32, error) {
	switch op {
	case OpAdd:
		return l + r, nil
	case OpSub:
		return l - r, nil
	case OpMul:
		return l * r, nil
	case OpDiv:
		if r == 0 {
			return 0, &RuntimeError{Msg: errDivZero}
		}
		return l / r, nil
	case OpMod:
		if r == 0 {
			return 0, &RuntimeError{Msg: errDivZero}
		}
		return float32(math.Mod(float64(l), float64(r))), nil
	case OpPow:
		return float32(math.Pow(float64(l), float64(r))), nil
	case OpRoot:
		if r == 0 {
			return 0, &RuntimeError{Msg: errDivZero}
		}
		return float32(math.Pow(float64(l), 1/float64(r))), nil
	default:
		return 0, &FatalError{Msg: "invalid operator"}
	}
}
