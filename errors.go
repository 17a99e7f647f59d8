package calculator

import (
	"errors"
	"math/big"
	"strconv"
)

// CharacterError indicates a character that cannot begin any token. It
// implements InputError.
type CharacterError struct {
	// Char is the rejected character.
	Char rune
	// Col is the character offset of Char in the input.
	Col int
}

func (err *CharacterError) Error() string {
	return errpos(err.Col, "invalid character "+strconv.QuoteRune(err.Char))
}

func (err *CharacterError) Pos() int { return err.Col }
func (err *CharacterError) End() int { return err.Col }

// TokenError indicates a token in a place where the grammar does not allow
// it, including tokens left over after a complete statement. It implements
// InputError.
type TokenError struct {
	// Text is the source text of the token.
	Text string
	// Start and Stop are the inclusive offsets of the token.
	Start, Stop int
}

func (err *TokenError) Error() string {
	return errpos(err.Start, "unexpected token "+strconv.Quote(err.Text))
}

func (err *TokenError) Pos() int { return err.Start }
func (err *TokenError) End() int { return err.Stop }

// EndError indicates that the input ended where another token was needed.
// It implements InputError.
type EndError struct {
	// Col is the offset of the end of the input.
	Col int
}

func (err *EndError) Error() string {
	return errpos(err.Col, "unexpected end of input")
}

func (err *EndError) Pos() int { return err.Col }
func (err *EndError) End() int { return err.Col }

// NameError is an error from a lookup for a variable that is missing from the
// environment. The last result marker $ reports the name "$" before any
// evaluation has succeeded. It implements InputError.
type NameError struct {
	// Name is the name that was missing.
	Name string
	// Start and Stop are the inclusive offsets of the name.
	Start, Stop int
}

func (err *NameError) Error() string {
	return errpos(err.Start, "undefined variable: "+strconv.Quote(err.Name))
}

func (err *NameError) Pos() int { return err.Start }
func (err *NameError) End() int { return err.Stop }

// RuntimeError is an arithmetic failure, such as division by zero, or a
// failure reported by a native function.
type RuntimeError struct {
	// Msg describes the failure.
	Msg string
	// Err is the underlying cause, if any.
	Err error
}

func (err *RuntimeError) Error() string {
	if err.Err != nil {
		return err.Msg + ": " + err.Err.Error()
	}
	return err.Msg
}

func (err *RuntimeError) Unwrap() error {
	return err.Err
}

// errDivZero is the message for division, modulo, and root by zero.
const errDivZero = "division by zero"

// FatalError indicates an internal state that valid input cannot reach.
type FatalError struct {
	Msg string
}

func (err *FatalError) Error() string {
	return "fatal: " + err.Msg
}

// DomainError is an error returned when a function is called on arguments
// outside its domain. DomainError unwraps to big.ErrNaN.
type DomainError struct {
	// X is the out-of-domain argument.
	X float32
	// Func is a name identifying the function.
	Func string
	// NaN is the underlying panic value from the computation, if any.
	NaN big.ErrNaN
}

func (err DomainError) Error() string {
	r := strconv.FormatFloat(float64(err.X), 'g', -1, 32) + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	return r
}

func (err DomainError) Unwrap() error {
	return err.NaN
}

// classify returns err if it is one of the package's error types and
// otherwise wraps it in a *RuntimeError naming the function that failed.
func classify(name string, err error) error {
	var (
		ce *CharacterError
		te *TokenError
		ee *EndError
		ne *NameError
		re *RuntimeError
		fe *FatalError
	)
	switch {
	case errors.As(err, &ce), errors.As(err, &te), errors.As(err, &ee),
		errors.As(err, &ne), errors.As(err, &re), errors.As(err, &fe):
		return err
	}
	return &RuntimeError{Msg: name + " failed", Err: err}
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the character offset of the first character of the
	// offending span.
	Pos() int
	// End returns the character offset of the last character of the
	// offending span.
	End() int
}

var (
	_ InputError = (*CharacterError)(nil)
	_ InputError = (*TokenError)(nil)
	_ InputError = (*EndError)(nil)
	_ InputError = (*NameError)(nil)
)
