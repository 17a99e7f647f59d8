package calculator

import (
	"io"
	"log/slog"
)

// EnvOption is an option used when creating or cloning an environment.
type EnvOption interface {
	envOption(*Environment)
}

type (
	varopt struct {
		name string
		val  float32
	}
	varsopt map[string]float32
	funcopt struct {
		name string
		fn   Func
	}
	funcsopt   map[string]Func
	precopt    uint
	logopt     struct{ h slog.Handler }
	builtinopt struct{}
)

// SetVar sets the value of a constant in the environment.
func SetVar(name string, val float32) EnvOption {
	return varopt{name, val}
}

func (o varopt) envOption(env *Environment) {
	env.vars[o.name] = Variable{Kind: Constant, Value: o.val}
}

// SetVars sets the values of any number of constants in the environment.
func SetVars(vars map[string]float32) EnvOption {
	return varsopt(vars)
}

func (o varsopt) envOption(env *Environment) {
	for k, v := range o {
		env.vars[k] = Variable{Kind: Constant, Value: v}
	}
}

// SetFunc binds a native function in the environment. To remove a binding,
// pass nil for fn.
func SetFunc(name string, fn Func) EnvOption {
	return funcopt{name, fn}
}

func (o funcopt) envOption(env *Environment) {
	if o.fn == nil {
		delete(env.vars, o.name)
		return
	}
	env.vars[o.name] = Variable{Kind: Custom, Func: o.fn}
}

// SetFuncs binds a group of native functions. Nil entries remove bindings.
func SetFuncs(fns map[string]Func) EnvOption {
	return funcsopt(fns)
}

func (o funcsopt) envOption(env *Environment) {
	for k, v := range o {
		funcopt{k, v}.envOption(env)
	}
}

// Prec sets the precision in bits of arbitrary-precision built-ins. It
// affects built-ins installed after it is applied.
func Prec(prec uint) EnvOption {
	return precopt(prec)
}

func (o precopt) envOption(env *Environment) {
	env.prec = uint(o)
}

// Logger sets the handler for the environment's log records. Records are
// grouped under "calculator". A nil handler discards logs.
func Logger(h slog.Handler) EnvOption {
	return logopt{h}
}

func (o logopt) envOption(env *Environment) {
	if o.h == nil {
		env.log = discardLogger()
		return
	}
	env.log = slog.New(o.h.WithGroup("calculator"))
}

// WithBuiltins installs the built-in constants and functions as if by
// InitBuiltins.
func WithBuiltins() EnvOption {
	return builtinopt{}
}

func (builtinopt) envOption(env *Environment) {
	env.InitBuiltins()
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
