package matchc

import (
	"github.com/maranget/matchc/internal/model"
	"github.com/maranget/matchc/internal/runtime"
)

// Program is a compiled match form, ready to run against concrete
// argument values (spec §6's "Output: a host expression whose evaluation
// runs the decision tree").
type Program struct {
	Expr HostExpr

	// Occurrences holds, in declaration order, the name of every
	// occurrence that was a bare symbol in the source — these, and only
	// these, are what Eval's positional args bind to. Occurrences that
	// were written as expressions are self-contained and evaluated
	// internally; they take no argument.
	Occurrences []string
}

// HostExpr is the lowered expression tree a Program wraps; exposing the
// alias keeps internal/model out of callers' import lists.
type HostExpr = model.HostExpr

// Eval binds args positionally to Occurrences and evaluates the compiled
// decision tree, returning the matched clause's action result or
// ErrNoMatch.
func (p *Program) Eval(args ...any) (any, error) {
	env := runtime.NewEnv()
	for i, name := range p.Occurrences {
		if i >= len(args) {
			break
		}
		v, err := runtime.FromGo(args[i])
		if err != nil {
			return nil, err
		}
		env.Set(name, v)
	}
	trace := &runtime.Trace{Enabled: Tracing}
	v, err := runtime.Eval(p.Expr, env, trace)
	if err != nil {
		return nil, err
	}
	return toGo(v), nil
}
