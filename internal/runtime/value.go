package runtime

import "github.com/maranget/matchc/internal/model"

// Value is the closed set of runtime values the evaluator operates over
// (spec design note 2's "value" side of the lookup protocol). It mirrors
// internal/model.Pattern's closed-variant discipline: new kinds are added
// here, never discovered dynamically.
type Value interface {
	valueNode()
}

// Lookup is the extensible projection protocol spec design note 2
// describes: "a single interface lookup(value, key) -> value|not-found
// that users can implement per value type". Map is the built-in
// implementation; an embedder's own Go type can satisfy it too.
type Lookup interface {
	Lookup(key string) (Value, bool)
}

type NilValue struct{}

func (NilValue) valueNode() {}

type BoolValue struct{ V bool }

func (BoolValue) valueNode() {}

type IntValue struct{ V int64 }

func (IntValue) valueNode() {}

type FloatValue struct{ V float64 }

func (FloatValue) valueNode() {}

type StrValue struct{ V string }

func (StrValue) valueNode() {}

// SymValue is a quoted-symbol value, distinct from a string the way
// internal/model.Symbol is distinct from a plain string literal pattern.
type SymValue struct{ V string }

func (SymValue) valueNode() {}

// SeqValue is a cons-cell shaped sequence: Head plus a lazily-irrelevant
// Tail slice (the whole tail materialized eagerly, since matchc targets
// an embedded interpreter, not a lazy-stream host).
type SeqValue struct{ Items []Value }

func (SeqValue) valueNode() {}

func (s SeqValue) IsEmpty() bool { return len(s.Items) == 0 }

// VecValue is an indexable value tagged with the vector-kind the pattern
// grammar's `(xs <kind> ...)` form names.
type VecValue struct {
	Kind  model.VectorKind
	Items []Value
}

func (VecValue) valueNode() {}

// MapValue is a lookup-capable value. Keys holds declaration order for a
// map built by an action expression, and Go's map iteration order for one
// converted by FromGo.
type MapValue struct {
	Keys []string
	Vals map[string]Value
}

func (MapValue) valueNode() {}

func (m MapValue) Lookup(key string) (Value, bool) {
	v, ok := m.Vals[key]
	return v, ok
}

// KeySet returns m's key set, unordered.
func (m MapValue) KeySet() map[string]bool {
	out := make(map[string]bool, len(m.Keys))
	for _, k := range m.Keys {
		out[k] = true
	}
	return out
}

// Truthy implements the host language's notion of truthiness for guard
// predicates and :when tests: only nil and false are falsy.
func Truthy(v Value) bool {
	switch t := v.(type) {
	case NilValue:
		return false
	case BoolValue:
		return t.V
	default:
		return true
	}
}

// Equal implements the value-level equality spec §3's Literal test and
// §4.4's "eq" builtin need.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case NilValue:
		_, ok := b.(NilValue)
		return ok
	case BoolValue:
		bv, ok := b.(BoolValue)
		return ok && av.V == bv.V
	case IntValue:
		switch bv := b.(type) {
		case IntValue:
			return av.V == bv.V
		case FloatValue:
			return float64(av.V) == bv.V
		}
		return false
	case FloatValue:
		switch bv := b.(type) {
		case IntValue:
			return av.V == float64(bv.V)
		case FloatValue:
			return av.V == bv.V
		}
		return false
	case StrValue:
		bv, ok := b.(StrValue)
		return ok && av.V == bv.V
	case SymValue:
		bv, ok := b.(SymValue)
		return ok && av.V == bv.V
	case SeqValue:
		bv, ok := b.(SeqValue)
		if !ok || len(av.Items) != len(bv.Items) {
			return false
		}
		for i := range av.Items {
			if !Equal(av.Items[i], bv.Items[i]) {
				return false
			}
		}
		return true
	case VecValue:
		bv, ok := b.(VecValue)
		if !ok || len(av.Items) != len(bv.Items) {
			return false
		}
		for i := range av.Items {
			if !Equal(av.Items[i], bv.Items[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
