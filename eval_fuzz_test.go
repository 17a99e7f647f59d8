//go:build go1.18
// +build go1.18

package calculator_test

import (
	"testing"

	"github.com/zephyrtronium/calculator"
)

func FuzzEvaluate(f *testing.F) {
	f.Add("x")
	f.Add("let y = $")
	f.Add("1 ** 2 // 3 % 4")
	f.Add("max -1 (x)")
	f.Fuzz(func(t *testing.T, s string) {
		env := calculator.NewEnvironment(calculator.SetVar("x", 1))
		env.RegisterFunction("max", func(a, b float32) float32 {
			if a > b {
				return a
			}
			return b
		})
		calculator.Evaluate(s, env)
	})
}

func FuzzTokenize(f *testing.F) {
	f.Add("1.2.3")
	f.Add("**//")
	f.Add("let π = 3")
	f.Fuzz(func(t *testing.T, s string) {
		toks, err := calculator.Tokenize(s)
		if err != nil {
			if toks != nil {
				t.Errorf("%q: got tokens with error %v", s, err)
			}
			return
		}
		if len(toks) == 0 || toks[len(toks)-1].Kind != calculator.TokenEOF {
			t.Errorf("%q: tokens do not end with EOF: %v", s, toks)
		}
		for _, tok := range toks {
			if tok.Start > tok.End {
				t.Errorf("%q: token %v ends before it starts", s, tok)
			}
		}
	})
}
