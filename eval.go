package calculator

import (
	"io"
	"log/slog"
	"strings"
)

// Evaluate tokenizes, parses, and evaluates one statement against env. The
// whole input must form the statement. On success, the result also becomes
// env's last result. Bindings made by let persist in env even if a later
// part of the input fails.
func Evaluate(input string, env *Environment) (float32, error) {
	return Eval(strings.NewReader(input), env)
}

// Eval is like Evaluate but reads the statement from src to its end.
func Eval(src io.RuneScanner, env *Environment) (float32, error) {
	toks, err := tokenize(src)
	if err != nil {
		env.log.Debug("tokenize failed", slog.Any("error", err))
		return 0, err
	}
	p := parser{cur: newCursor(toks), env: env}
	r, err := p.statement()
	if err == nil {
		_, err = p.cur.expect(TokenEOF)
	}
	if err != nil {
		env.log.Debug("evaluation failed", slog.Int("tokens", len(toks)), slog.Any("error", err))
		return 0, err
	}
	env.SetLastResult(r)
	env.log.Debug("evaluated", slog.Int("tokens", len(toks)), slog.Float64("result", float64(r)))
	return r, nil
}
