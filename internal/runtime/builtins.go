package runtime

import (
	"fmt"

	"github.com/maranget/matchc/internal/model"
)

// builtins is the fixed table of functions an HCall can name: the
// per-pattern-variant tests lower.go emits (eq, seq?, map?, vector-kind?,
// vec-len-eq, keyset-eq, and, seq-first, seq-rest, vec-nth, vec-slice,
// vec-slice-from, map-lookup, coerce-vec) plus the small set of
// arithmetic/predicate helpers spec §8's literal scenarios exercise
// (mod, even?, odd?, div3?, str).
var builtins = map[string]func(args []Value) (Value, error){
	"eq": func(args []Value) (Value, error) {
		return BoolValue{V: Equal(args[0], args[1])}, nil
	},
	"and": func(args []Value) (Value, error) {
		for _, a := range args {
			if !Truthy(a) {
				return BoolValue{V: false}, nil
			}
		}
		return BoolValue{V: true}, nil
	},
	"seq?": func(args []Value) (Value, error) {
		_, ok := args[0].(SeqValue)
		return BoolValue{V: ok}, nil
	},
	"map?": func(args []Value) (Value, error) {
		_, ok := args[0].(Lookup)
		return BoolValue{V: ok}, nil
	},
	"vector-kind?": func(args []Value) (Value, error) {
		v, ok := args[0].(VecValue)
		if !ok {
			return BoolValue{V: false}, nil
		}
		kind, _ := args[1].(StrValue)
		return BoolValue{V: string(v.Kind) == kind.V}, nil
	},
	"vec-len-eq": func(args []Value) (Value, error) {
		v, ok := args[0].(VecValue)
		if !ok {
			return BoolValue{V: false}, nil
		}
		n, _ := args[1].(IntValue)
		return BoolValue{V: int64(len(v.Items)) == n.V}, nil
	},
	"keyset-eq": func(args []Value) (Value, error) {
		m, ok := args[0].(MapValue)
		if !ok {
			return BoolValue{V: false}, nil
		}
		want := map[string]bool{}
		for _, a := range args[1:] {
			s, _ := a.(StrValue)
			want[s.V] = true
		}
		got := m.KeySet()
		if len(got) != len(want) {
			return BoolValue{V: false}, nil
		}
		for k := range want {
			if !got[k] {
				return BoolValue{V: false}, nil
			}
		}
		return BoolValue{V: true}, nil
	},
	"seq-first": func(args []Value) (Value, error) {
		s, ok := args[0].(SeqValue)
		if !ok || s.IsEmpty() {
			return NilValue{}, nil
		}
		return s.Items[0], nil
	},
	"seq-rest": func(args []Value) (Value, error) {
		s, ok := args[0].(SeqValue)
		if !ok || s.IsEmpty() {
			return SeqValue{}, nil
		}
		return SeqValue{Items: s.Items[1:]}, nil
	},
	"vec-nth": func(args []Value) (Value, error) {
		v, ok := args[0].(VecValue)
		idx, _ := args[1].(IntValue)
		if !ok || idx.V < 0 || int(idx.V) >= len(v.Items) {
			return NilValue{}, nil
		}
		return v.Items[idx.V], nil
	},
	"vec-slice": func(args []Value) (Value, error) {
		v, ok := args[0].(VecValue)
		if !ok {
			return VecValue{}, nil
		}
		lo, _ := args[1].(IntValue)
		hi, _ := args[2].(IntValue)
		return VecValue{Kind: v.Kind, Items: append([]Value(nil), v.Items[lo.V:hi.V]...)}, nil
	},
	"vec-slice-from": func(args []Value) (Value, error) {
		v, ok := args[0].(VecValue)
		if !ok {
			return VecValue{}, nil
		}
		lo, _ := args[1].(IntValue)
		return VecValue{Kind: v.Kind, Items: append([]Value(nil), v.Items[lo.V:]...)}, nil
	},
	"coerce-vec": func(args []Value) (Value, error) {
		kind, _ := args[1].(StrValue)
		return CoerceValue(args[0], model.VectorKind(kind.V))
	},
	"map-lookup": func(args []Value) (Value, error) {
		l, ok := args[0].(Lookup)
		key, _ := args[1].(StrValue)
		if !ok {
			return NilValue{}, nil
		}
		v, found := l.Lookup(key.V)
		if !found {
			return NilValue{}, nil
		}
		return v, nil
	},
	"mod": func(args []Value) (Value, error) {
		a, b, err := twoInts(args)
		if err != nil {
			return nil, err
		}
		if b == 0 {
			return nil, fmt.Errorf("matchc: mod by zero")
		}
		return IntValue{V: a % b}, nil
	},
	"even?": func(args []Value) (Value, error) {
		n, err := oneInt(args)
		if err != nil {
			return nil, err
		}
		return BoolValue{V: n%2 == 0}, nil
	},
	"odd?": func(args []Value) (Value, error) {
		n, err := oneInt(args)
		if err != nil {
			return nil, err
		}
		return BoolValue{V: n%2 != 0}, nil
	},
	"div3?": func(args []Value) (Value, error) {
		n, err := oneInt(args)
		if err != nil {
			return nil, err
		}
		return BoolValue{V: n%3 == 0}, nil
	},
	"str": func(args []Value) (Value, error) {
		return StrValue{V: fmt.Sprintf("%v", displayOf(args[0]))}, nil
	},
	"seq": func(args []Value) (Value, error) {
		return SeqValue{Items: append([]Value(nil), args...)}, nil
	},
}

func oneInt(args []Value) (int64, error) {
	n, ok := args[0].(IntValue)
	if !ok {
		return 0, fmt.Errorf("matchc: expected an int, got %T", args[0])
	}
	return n.V, nil
}

func twoInts(args []Value) (int64, int64, error) {
	a, err := oneInt(args[:1])
	if err != nil {
		return 0, 0, err
	}
	b, ok := args[1].(IntValue)
	if !ok {
		return 0, 0, fmt.Errorf("matchc: expected an int, got %T", args[1])
	}
	return a, b.V, nil
}

func displayOf(v Value) any {
	switch x := v.(type) {
	case IntValue:
		return x.V
	case FloatValue:
		return x.V
	case StrValue:
		return x.V
	case BoolValue:
		return x.V
	case SymValue:
		return x.V
	case NilValue:
		return nil
	default:
		return v
	}
}

// RegisterBuiltin installs a caller-supplied predicate or function under
// name, for embedders whose guard predicates reach beyond the built-in
// set above.
func RegisterBuiltin(name string, fn func(args []Value) (Value, error)) {
	builtins[name] = fn
}
