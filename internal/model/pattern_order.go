package model

import (
	"fmt"
	"sort"
)

// Ord is the result of comparing two patterns under the total order used
// to group and sort a column's constructor set (spec §3).
type Ord int

const (
	Lt Ord = iota
	Eq
	Gt
	Incomparable
)

// Compare implements the total order from spec §3. Wildcard sorts as the
// greatest pattern; Literal sorts below every non-wildcard constructor;
// everything else defaults to Eq when the variants match (they are
// grouped as one constructor family) and Incomparable when they don't,
// except for the four variants (Literal, Guard, Or, MapCrash) that carry
// an explicit payload comparison.
func Compare(a, b Pattern) Ord {
	aw, aIsWild := a.(*Wildcard)
	bw, bIsWild := b.(*Wildcard)
	if aIsWild && bIsWild {
		_ = aw
		_ = bw
		return Eq
	}
	if aIsWild {
		return Gt
	}
	if bIsWild {
		return Lt
	}

	al, aIsLit := a.(*Literal)
	bl, bIsLit := b.(*Literal)
	if aIsLit && !bIsLit {
		return Lt
	}
	if !aIsLit && bIsLit {
		return Gt
	}
	if aIsLit && bIsLit {
		return compareLiteral(al, bl)
	}

	if ag, ok := a.(*Guard); ok {
		if bg, ok := b.(*Guard); ok {
			return compareGuard(ag, bg)
		}
		return Incomparable
	}
	if _, ok := b.(*Guard); ok {
		return Incomparable
	}

	if ao, ok := a.(*Or); ok {
		if bo, ok := b.(*Or); ok {
			return compareOr(ao, bo)
		}
		return Incomparable
	}
	if _, ok := b.(*Or); ok {
		return Incomparable
	}

	if amc, ok := a.(*MapCrash); ok {
		if bmc, ok := b.(*MapCrash); ok {
			return compareMapCrash(amc, bmc)
		}
		return Incomparable
	}
	if _, ok := b.(*MapCrash); ok {
		return Incomparable
	}

	// Remaining variants (Seq, Rest, MapPat, Vector): same-variant default.
	if sameVariant(a, b) {
		return Eq
	}
	return Incomparable
}

// Equal reports whether two patterns are pattern-equal under Compare,
// i.e. Compare(a, b) == Eq. Used for constructor deduplication and for
// "retain matching rows" during specialization.
func Equal(a, b Pattern) bool { return Compare(a, b) == Eq }

func sameVariant(a, b Pattern) bool {
	switch a.(type) {
	case *Seq:
		_, ok := b.(*Seq)
		return ok
	case *Rest:
		_, ok := b.(*Rest)
		return ok
	case *MapPat:
		_, ok := b.(*MapPat)
		return ok
	case *Vector:
		_, ok := b.(*Vector)
		return ok
	default:
		return false
	}
}

func compareLiteral(a, b *Literal) Ord {
	// A local literal's comparison value is only known at match time; two
	// local literals are the same constructor iff they read the same
	// variable, and a local literal never orders against a constant one.
	if a.Local || b.Local {
		if a.Local && b.Local && predicateKey(a.Expr) == predicateKey(b.Expr) {
			return Eq
		}
		return Incomparable
	}

	as, aSym := a.Const.(Symbol)
	bs, bSym := b.Const.(Symbol)
	switch {
	case aSym && bSym:
		switch {
		case as.Name == bs.Name:
			return Eq
		case as.Name < bs.Name:
			return Lt
		default:
			return Gt
		}
	case aSym && !bSym:
		return Gt
	case !aSym && bSym:
		return Lt
	}

	if a.Const == b.Const {
		return Eq
	}
	an, aOK := numericValue(a.Const)
	bn, bOK := numericValue(b.Const)
	if aOK && bOK {
		switch {
		case an < bn:
			return Lt
		case an > bn:
			return Gt
		default:
			return Eq
		}
	}
	as2, aStr := a.Const.(string)
	bs2, bStr := b.Const.(string)
	if aStr && bStr {
		switch {
		case as2 == bs2:
			return Eq
		case as2 < bs2:
			return Lt
		default:
			return Gt
		}
	}
	ab, aBool := a.Const.(bool)
	bb, bBool := b.Const.(bool)
	if aBool && bBool {
		switch {
		case ab == bb:
			return Eq
		case !ab && bb:
			return Lt
		default:
			return Gt
		}
	}
	return Incomparable
}

func numericValue(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// predicateKey renders a predicate expression into a canonical string so
// that guard predicate *sets* (order-independent) can be compared for
// equality, per spec §3's "equal iff their predicate sets are equal".
func predicateKey(e HostExpr) string { return fmt.Sprintf("%#v", e) }

func predicateSetKey(preds []HostExpr) string {
	keys := make([]string, len(preds))
	for i, p := range preds {
		keys[i] = predicateKey(p)
	}
	sort.Strings(keys)
	out := ""
	for _, k := range keys {
		out += k + ";"
	}
	return out
}

func compareGuard(a, b *Guard) Ord {
	if predicateSetKey(a.Predicates) == predicateSetKey(b.Predicates) {
		return Eq
	}
	return Incomparable
}

func compareOr(a, b *Or) Ord {
	if len(a.Alternatives) != len(b.Alternatives) {
		return Incomparable
	}
	for i := range a.Alternatives {
		if !Equal(a.Alternatives[i], b.Alternatives[i]) {
			return Incomparable
		}
	}
	return Eq
}

func keySetKey(keys []string) string {
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)
	out := ""
	for _, k := range sorted {
		out += k + ","
	}
	return out
}

func compareMapCrash(a, b *MapCrash) Ord {
	if keySetKey(a.Keys) == keySetKey(b.Keys) {
		return Eq
	}
	return Incomparable
}

// SortConstructors sorts a deduplicated constructor set per the total
// order, breaking ties (Eq/Incomparable comparisons that are not Lt) by
// original insertion order — a stable sort over "less than" alone.
func SortConstructors(cs []Pattern) {
	sort.SliceStable(cs, func(i, j int) bool {
		return Compare(cs[i], cs[j]) == Lt
	})
}
