package compiler

import "github.com/maranget/matchc/internal/model"

// Lower implements spec §4.4: turns a decision DAG into the abstract
// host-expression tree internal/runtime knows how to evaluate.
func Lower(n model.Node) model.HostExpr {
	switch v := n.(type) {
	case *model.Leaf:
		return letWrap(v.Bindings, v.Action)
	case *model.Fail:
		return model.HFail{Message: "no match found"}
	case *model.Bind:
		return model.HLet{Bindings: v.Bindings, Body: Lower(v.Inner)}
	case *model.Switch:
		return lowerSwitch(v)
	default:
		return model.HFail{Message: "no match found"}
	}
}

func letWrap(bindings []model.Binding, body model.HostExpr) model.HostExpr {
	filtered := make([]model.Binding, 0, len(bindings))
	for _, b := range bindings {
		if b.Name == "_" || b.Name == "" {
			continue
		}
		filtered = append(filtered, b)
	}
	if len(filtered) == 0 {
		return body
	}
	return model.HLet{Bindings: filtered, Body: body}
}

func lowerSwitch(sw *model.Switch) model.HostExpr {
	clauses := make([]model.HCondClause, len(sw.Cases))
	for i, c := range sw.Cases {
		clauses[i] = model.HCondClause{Test: testFor(c.Pattern, sw.Occurrence), Body: Lower(c.Child)}
	}
	body := model.HostExpr(model.HCond{Clauses: clauses, Default: Lower(sw.Default)})

	if sw.CoerceKind != "" {
		body = model.HLet{
			Bindings: []model.Binding{{
				Name: sw.Occurrence.Name,
				Expr: model.HCall{Fn: "coerce-vec", Args: []model.HostExpr{
					model.HName{Name: sw.Occurrence.Name},
					model.HLiteral{Value: string(sw.CoerceKind)},
				}},
			}},
			Body: body,
		}
	}

	if sw.Occurrence.NeedsBind() {
		return model.HLet{
			Bindings: []model.Binding{{Name: sw.Occurrence.Name, Expr: sw.Occurrence.BindExpr}},
			Body:     body,
		}
	}
	return body
}

// testFor produces the boolean host expression that decides whether
// occurrence occ matches constructor pattern p (spec §4.4's per-variant
// test contract).
func testFor(p model.Pattern, occ *model.Occurrence) model.HostExpr {
	occVal := model.HName{Name: occ.Name}
	switch v := p.(type) {
	case *model.Literal:
		val := model.HostExpr(model.HLiteral{Value: v.Const})
		if v.Local {
			val = v.Expr
		}
		return model.HCall{Fn: "eq", Args: []model.HostExpr{occVal, val}}
	case *model.Seq:
		return model.HCall{Fn: "seq?", Args: []model.HostExpr{occVal}}
	case *model.MapPat:
		return model.HCall{Fn: "map?", Args: []model.HostExpr{occVal}}
	case *model.MapCrash:
		// The key-set test reads the parent map, not the value looked up
		// under this column's key.
		mapVal := model.HostExpr(occVal)
		if occ.Kind == model.OccMap {
			mapVal = model.HName{Name: occ.MapSym}
		}
		args := []model.HostExpr{mapVal}
		for _, k := range v.Keys {
			args = append(args, model.HLiteral{Value: k})
		}
		return model.HCall{Fn: "keyset-eq", Args: args}
	case *model.Vector:
		kindTest := model.HCall{Fn: "vector-kind?", Args: []model.HostExpr{occVal, model.HLiteral{Value: string(v.Kind)}}}
		if v.HasRest {
			return kindTest
		}
		sizeTest := model.HCall{Fn: "vec-len-eq", Args: []model.HostExpr{occVal, model.HLiteral{Value: int64(v.MinSize)}}}
		return model.HCall{Fn: "and", Args: []model.HostExpr{kindTest, sizeTest}}
	case *model.Guard:
		tests := make([]model.HostExpr, 0, len(v.Predicates)+1)
		tests = append(tests, testFor(v.Inner, occ))
		for _, pr := range v.Predicates {
			tests = append(tests, predicateTest(pr, occ))
		}
		return shortCircuitAnd(tests)
	default:
		return model.HLiteral{Value: true}
	}
}

// shortCircuitAnd builds a right-nested HIf cascade equivalent to a
// strict "and" but that only evaluates tests[i+1:] once tests[i] has
// already held. A Guard's predicates must never be evaluated once its
// inner pattern test has failed (spec §8 property 7): the strict "and"
// builtin evaluates every HCall argument before dispatching, which runs
// a predicate like even? even when the inner test already rejected the
// value, possibly raising a type error instead of just falling through.
func shortCircuitAnd(tests []model.HostExpr) model.HostExpr {
	if len(tests) == 0 {
		return model.HLiteral{Value: true}
	}
	result := tests[len(tests)-1]
	for i := len(tests) - 2; i >= 0; i-- {
		result = model.HIf{Cond: tests[i], Then: result, Else: model.HLiteral{Value: false}}
	}
	return result
}

// predicateTest turns a guard predicate expression into the host-level
// call that tests it: a bare identifier (`even?`) is applied to the
// occurrence; anything richer is assumed already fully formed and
// evaluated as-is.
func predicateTest(pred model.HostExpr, occ *model.Occurrence) model.HostExpr {
	if hn, ok := pred.(model.HName); ok {
		return model.HCall{Fn: hn.Name, Args: []model.HostExpr{model.HName{Name: occ.Name}}}
	}
	return pred
}
