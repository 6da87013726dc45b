package runtime

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/maranget/matchc/internal/model"
)

// Trace accumulates the branch-taken breadcrumbs spec §7 describes for a
// "no match found" error raised while tracing is enabled.
type Trace struct {
	Enabled     bool
	Breadcrumbs []string
}

func (t *Trace) record(format string, args ...any) {
	if t == nil || !t.Enabled {
		return
	}
	msg := fmt.Sprintf(format, args...)
	t.Breadcrumbs = append(t.Breadcrumbs, msg)
	logrus.WithField("branches_taken", len(t.Breadcrumbs)).Debug(msg)
}

// Eval evaluates a lowered HostExpr tree (spec §4.4's output) against env.
func Eval(expr model.HostExpr, env *Env, trace *Trace) (Value, error) {
	switch e := expr.(type) {
	case model.HLiteral:
		return FromNative(e.Value), nil

	case model.HName:
		v, ok := env.Get(e.Name)
		if !ok {
			return nil, fmt.Errorf("matchc: unbound name %q", e.Name)
		}
		return v, nil

	case model.HLet:
		child := env.Child()
		for _, b := range e.Bindings {
			v, err := Eval(b.Expr, child, trace)
			if err != nil {
				return nil, err
			}
			child.Set(b.Name, v)
		}
		return Eval(e.Body, child, trace)

	case model.HIf:
		cond, err := Eval(e.Cond, env, trace)
		if err != nil {
			return nil, err
		}
		if Truthy(cond) {
			return Eval(e.Then, env, trace)
		}
		return Eval(e.Else, env, trace)

	case model.HCond:
		for i, clause := range e.Clauses {
			cond, err := Eval(clause.Test, env, trace)
			if err != nil {
				return nil, err
			}
			if Truthy(cond) {
				trace.record("case %d matched", i)
				return Eval(clause.Body, env, trace)
			}
			trace.record("case %d failed", i)
		}
		return Eval(e.Default, env, trace)

	case model.HCall:
		args := make([]Value, len(e.Args))
		for i, a := range e.Args {
			v, err := Eval(a, env, trace)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		fn, ok := builtins[e.Fn]
		if !ok {
			return nil, fmt.Errorf("matchc: unknown function %q", e.Fn)
		}
		return fn(args)

	case model.HFail:
		return nil, WrapNoMatch(trace.breadcrumbsOrNil())

	case model.HVector:
		items := make([]Value, len(e.Elems))
		for i, el := range e.Elems {
			v, err := Eval(el, env, trace)
			if err != nil {
				return nil, err
			}
			items[i] = v
		}
		return VecValue{Kind: "vector", Items: items}, nil

	case model.HMapExpr:
		vals := make(map[string]Value, len(e.Keys))
		for i, k := range e.Keys {
			v, err := Eval(e.Vals[i], env, trace)
			if err != nil {
				return nil, err
			}
			vals[k] = v
		}
		return MapValue{Keys: append([]string(nil), e.Keys...), Vals: vals}, nil

	default:
		return nil, fmt.Errorf("matchc: unhandled host expression %T", expr)
	}
}

func (t *Trace) breadcrumbsOrNil() []string {
	if t == nil {
		return nil
	}
	return t.Breadcrumbs
}

// FromNative lifts a Go literal value (as carried by HLiteral, itself
// produced from int64/float64/string/bool/nil/model.Symbol/model.EmptySeq
// surface literals) into a Value.
func FromNative(v any) Value {
	switch x := v.(type) {
	case nil:
		return NilValue{}
	case bool:
		return BoolValue{V: x}
	case int:
		return IntValue{V: int64(x)}
	case int64:
		return IntValue{V: x}
	case float64:
		return FloatValue{V: x}
	case string:
		return StrValue{V: x}
	case model.Symbol:
		return SymValue{V: x.Name}
	case model.EmptySeq:
		return SeqValue{}
	case Value:
		return x
	default:
		return StrValue{V: fmt.Sprintf("%v", x)}
	}
}
