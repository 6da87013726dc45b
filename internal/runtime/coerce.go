package runtime

import (
	"fmt"
	"reflect"

	"github.com/spf13/cast"

	"github.com/maranget/matchc/internal/model"
)

// FromGo converts an arbitrary native Go value into a Value: the
// boundary pkg/matchc.Program.Eval crosses whenever a caller supplies
// concrete arguments to run a compiled match against.
func FromGo(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return NilValue{}, nil
	case Value:
		return x, nil
	case bool:
		return BoolValue{V: x}, nil
	case string:
		return StrValue{V: x}, nil
	case model.Symbol:
		return SymValue{V: x.Name}, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := cast.ToInt64E(v)
		if err != nil {
			return nil, fmt.Errorf("matchc: cannot convert %T to an int: %w", v, err)
		}
		return IntValue{V: n}, nil
	case reflect.Float32, reflect.Float64:
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return nil, fmt.Errorf("matchc: cannot convert %T to a float: %w", v, err)
		}
		return FloatValue{V: f}, nil
	case reflect.Slice, reflect.Array:
		items := make([]Value, rv.Len())
		for i := range items {
			item, err := FromGo(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			items[i] = item
		}
		return VecValue{Kind: "vector", Items: items}, nil
	case reflect.Map:
		keys := make([]string, 0, rv.Len())
		vals := make(map[string]Value, rv.Len())
		for _, k := range rv.MapKeys() {
			ks, err := cast.ToStringE(k.Interface())
			if err != nil {
				return nil, fmt.Errorf("matchc: map key %v must cast to string: %w", k.Interface(), err)
			}
			vv, err := FromGo(rv.MapIndex(k).Interface())
			if err != nil {
				return nil, err
			}
			keys = append(keys, ks)
			vals[ks] = vv
		}
		return MapValue{Keys: keys, Vals: vals}, nil
	default:
		return nil, fmt.Errorf("matchc: cannot convert %T to a value", v)
	}
}

// CoerceVectorKind adapts a raw Go value into the representation a
// Vector pattern tagged with kind expects (spec §4.3.e's "coerce-bind"):
// a "bytes" vector coerces any slice or array of numeric-looking elements
// — a []float64, a []int32 — into a vector of ints
// via cast (a bare string is rejected),
// so a caller need not pre-convert a value to match it against a `bytes`
// vector pattern.
func CoerceVectorKind(v any, kind model.VectorKind) (Value, error) {
	if kind != "bytes" {
		return FromGo(v)
	}
	ints, err := cast.ToIntSliceE(v)
	if err != nil {
		return nil, fmt.Errorf("matchc: cannot coerce %T to a bytes vector: %w", v, err)
	}
	items := make([]Value, len(ints))
	for i, n := range ints {
		items[i] = IntValue{V: int64(n)}
	}
	return VecValue{Kind: kind, Items: items}, nil
}

// CoerceValue is CoerceVectorKind's post-evaluation counterpart: the
// coerce-bind the matrix compiler itself emits (spec §4.3.e) runs inside
// the decision tree, after the occurrence has already been evaluated to
// a Value, rather than once at the pkg/matchc call boundary.
func CoerceValue(v Value, kind model.VectorKind) (Value, error) {
	if kind != "bytes" {
		return v, nil
	}
	switch x := v.(type) {
	case VecValue:
		items := make([]Value, len(x.Items))
		for i, item := range x.Items {
			n, err := cast.ToInt64E(nativeOf(item))
			if err != nil {
				return nil, fmt.Errorf("matchc: cannot coerce vector element %v to bytes: %w", item, err)
			}
			items[i] = IntValue{V: n}
		}
		return VecValue{Kind: kind, Items: items}, nil
	case SeqValue:
		items := make([]Value, len(x.Items))
		for i, item := range x.Items {
			n, err := cast.ToInt64E(nativeOf(item))
			if err != nil {
				return nil, fmt.Errorf("matchc: cannot coerce seq element %v to bytes: %w", item, err)
			}
			items[i] = IntValue{V: n}
		}
		return VecValue{Kind: kind, Items: items}, nil
	case StrValue:
		items := make([]Value, len(x.V))
		for i := 0; i < len(x.V); i++ {
			items[i] = IntValue{V: int64(x.V[i])}
		}
		return VecValue{Kind: kind, Items: items}, nil
	default:
		return v, nil
	}
}

// nativeOf unwraps a scalar Value to the Go value cast needs to convert
// it; used by CoerceValue on already-evaluated elements.
func nativeOf(v Value) any {
	switch x := v.(type) {
	case IntValue:
		return x.V
	case FloatValue:
		return x.V
	case StrValue:
		return x.V
	case BoolValue:
		return x.V
	default:
		return nil
	}
}
