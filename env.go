package calculator

import (
	"log/slog"
	"slices"
)

// VarKind identifies what a name is bound to.
type VarKind int8

const (
	// Constant is a plain value.
	Constant VarKind = iota + 1
	// UnaryFn is a pure built-in function of one operand.
	UnaryFn
	// Custom is a native function that pulls its own operands.
	Custom
)

func (k VarKind) String() string {
	switch k {
	case Constant:
		return "constant"
	case UnaryFn:
		return "unary function"
	case Custom:
		return "function"
	default:
		return "invalid"
	}
}

// Variable is a binding in an Environment. Exactly one of Value, Unary, and
// Func is meaningful, according to Kind.
type Variable struct {
	Kind  VarKind
	Value float32
	Unary func(float32) float32
	Func  Func
}

// Environment holds the named constants and functions available to
// expressions, plus the result of the last successful evaluation. The zero
// value is not usable; create environments with NewEnvironment. It is not
// safe to use an Environment concurrently.
type Environment struct {
	vars map[string]Variable
	last float32
	has  bool
	prec uint
	log  *slog.Logger
}

// NewEnvironment creates a new environment. Options are applied in order. If
// no precision is given, the default is 64.
func NewEnvironment(opts ...EnvOption) *Environment {
	env := Environment{vars: make(map[string]Variable), prec: 64, log: discardLogger()}
	return env.Clone(opts...)
}

// Clone creates a copy of an environment and applies options to it. The copy
// shares no mutable state with env, including the last result.
func (env *Environment) Clone(opts ...EnvOption) *Environment {
	n := Environment{
		vars: make(map[string]Variable, len(env.vars)),
		last: env.last,
		has:  env.has,
		prec: env.prec,
		log:  env.log,
	}
	for k, v := range env.vars {
		n.vars[k] = v
	}
	for _, opt := range opts {
		if opt != nil {
			opt.envOption(&n)
		}
	}
	return &n
}

// AssignConstant binds name to a constant value, replacing any previous
// binding of the name.
func (env *Environment) AssignConstant(name string, value float32) {
	env.vars[name] = Variable{Kind: Constant, Value: value}
	env.log.Debug("assigned constant", slog.String("name", name), slog.Float64("value", float64(value)))
}

// AssignUnary binds name to a pure function of one operand.
func (env *Environment) AssignUnary(name string, f func(float32) float32) {
	env.vars[name] = Variable{Kind: UnaryFn, Unary: f}
}

// AssignFunc binds name to a native function, replacing any previous binding
// of the name.
func (env *Environment) AssignFunc(name string, fn Func) {
	env.vars[name] = Variable{Kind: Custom, Func: fn}
	env.log.Debug("assigned function", slog.String("name", name), slog.Int("arity", fn.Arity()))
}

// RegisterFunction binds name to a Go function of one, two, or three float32
// operands returning float32 or (float32, error). See FuncOf.
func (env *Environment) RegisterFunction(name string, fn any) error {
	f, err := FuncOf(fn)
	if err != nil {
		env.log.Warn("rejected function", slog.String("name", name), slog.Any("error", err))
		return err
	}
	env.AssignFunc(name, f)
	return nil
}

// Get looks up a binding.
func (env *Environment) Get(name string) (Variable, bool) {
	v, ok := env.vars[name]
	return v, ok
}

// Lookup returns the value of a constant. If there is no such constant in
// the environment, then ok is false.
func (env *Environment) Lookup(name string) (value float32, ok bool) {
	v := env.vars[name]
	if v.Kind != Constant {
		return 0, false
	}
	return v.Value, true
}

// Names returns the bound names in sorted order.
func (env *Environment) Names() []string {
	r := make([]string, 0, len(env.vars))
	for k := range env.vars {
		r = append(r, k)
	}
	slices.Sort(r)
	return r
}

// LastResult returns the result of the most recent successful evaluation.
// ok is false if there has been none.
func (env *Environment) LastResult() (value float32, ok bool) {
	return env.last, env.has
}

// SetLastResult sets the value of the last result marker $.
func (env *Environment) SetLastResult(value float32) {
	env.last, env.has = value, true
}

// Prec returns the precision in bits used by arbitrary-precision built-ins.
func (env *Environment) Prec() uint {
	return env.prec
}

// InitBuiltins binds the constants pi and e, the unary functions sin, asin,
// cos, acos, tan, atan, r2d, and d2r, and the functions exp, ln, log, and
// sqrt, which are computed at the environment's precision. Existing bindings
// of those names are replaced.
func (env *Environment) InitBuiltins() {
	for k, v := range stdconsts {
		env.vars[k] = Variable{Kind: Constant, Value: v}
	}
	for k, f := range stdfuncs {
		env.vars[k] = Variable{Kind: UnaryFn, Unary: f}
	}
	for k, f := range bigfuncs {
		env.vars[k] = Variable{Kind: Custom, Func: Monadic(k, env.prec, f)}
	}
	env.log.Debug("installed builtins", slog.Int("count", len(stdconsts)+len(stdfuncs)+len(bigfuncs)))
}
