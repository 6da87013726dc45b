package matchc

import "github.com/maranget/matchc/internal/runtime"

// toGo converts an evaluated runtime.Value back into a plain Go value,
// so callers of Program.Eval never need to import internal/runtime.
func toGo(v runtime.Value) any {
	switch x := v.(type) {
	case runtime.NilValue:
		return nil
	case runtime.BoolValue:
		return x.V
	case runtime.IntValue:
		return x.V
	case runtime.FloatValue:
		return x.V
	case runtime.StrValue:
		return x.V
	case runtime.SymValue:
		return x.V
	case runtime.SeqValue:
		out := make([]any, len(x.Items))
		for i, item := range x.Items {
			out[i] = toGo(item)
		}
		return out
	case runtime.VecValue:
		out := make([]any, len(x.Items))
		for i, item := range x.Items {
			out[i] = toGo(item)
		}
		return out
	case runtime.MapValue:
		out := make(map[string]any, len(x.Vals))
		for k, val := range x.Vals {
			out[k] = toGo(val)
		}
		return out
	default:
		return v
	}
}
