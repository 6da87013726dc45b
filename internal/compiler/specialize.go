package compiler

import (
	"sort"

	"github.com/maranget/matchc/internal/model"
)

func isWildcardPattern(p model.Pattern) bool { _, ok := p.(*model.Wildcard); return ok }

// bindingsForDropped returns the bindings that consuming column 0's
// pattern contributes: its :as capture, and/or its named-wildcard name,
// each bound to the occurrence's own value (spec §4.3.a's drop-nth-bind).
func bindingsForDropped(p model.Pattern, occ *model.Occurrence) []model.Binding {
	var bs []model.Binding
	val := model.HName{Name: occ.Name}
	if name := p.As(); name != "" {
		bs = append(bs, model.Binding{Name: name, Expr: val})
	}
	if w, ok := p.(*model.Wildcard); ok && !w.IsDefault() {
		bs = append(bs, model.Binding{Name: w.Name, Expr: val})
	}
	return bs
}

func appendBindings(existing []model.Binding, extra []model.Binding) []model.Binding {
	if len(extra) == 0 {
		return existing
	}
	return append(append([]model.Binding(nil), existing...), extra...)
}

func dropFirst(row model.Row, occ *model.Occurrence) model.Row {
	return model.Row{
		Patterns: append([]model.Pattern(nil), row.Patterns[1:]...),
		Action:   row.Action,
		Bindings: appendBindings(row.Bindings, bindingsForDropped(row.Patterns[0], occ)),
	}
}

// expandOrsInColumn0 is the pre-pass of spec §4.2 case 3a: every Or
// pattern sitting in column 0 is expanded into one row per alternative
// until none remain.
func expandOrsInColumn0(m *model.Matrix) *model.Matrix {
	for {
		changed := false
		var rows []model.Row
		for _, row := range m.Rows {
			if or, ok := row.Patterns[0].(*model.Or); ok {
				changed = true
				for _, alt := range or.Alternatives {
					newPats := append([]model.Pattern(nil), row.Patterns...)
					newPats[0] = alt
					rows = append(rows, model.Row{Patterns: newPats, Action: row.Action, Bindings: row.Bindings})
				}
				continue
			}
			rows = append(rows, row)
		}
		m = &model.Matrix{Rows: rows, Occurrences: m.Occurrences}
		if !changed {
			return m
		}
	}
}

// specializeZeroArity implements spec §4.3.a for a zero-arity constructor
// (a Literal value, or a MapCrash key-set assertion): retain rows whose
// first pattern is pattern-equal to p or is a wildcard, then drop column
// 0. Used directly for MapCrash and as the Literal constructor's child
// matrix, and for any constructor without a dedicated rule. The default
// matrix is computed separately by DefaultMatrix.
func specializeZeroArity(m *model.Matrix, p model.Pattern) *model.Matrix {
	occ := m.Occurrences[0]
	var rows []model.Row
	for _, row := range m.Rows {
		first := row.Patterns[0]
		if isWildcardPattern(first) || model.Equal(first, p) {
			rows = append(rows, dropFirst(row, occ))
		}
	}
	return &model.Matrix{Rows: rows, Occurrences: append([]*model.Occurrence(nil), m.Occurrences[1:]...)}
}

// SpecializeLiteral builds the child matrix for a Literal constructor c.
func SpecializeLiteral(m *model.Matrix, c *model.Literal) *model.Matrix { return specializeZeroArity(m, c) }

// SpecializeMapCrash builds the child matrix for a MapCrash constructor c
// (spec §4.3.d). The spec's literal wording collapses the result to a
// single empty-width row; doing that unconditionally would discard
// sibling occurrence columns whenever more than one row survives, so this
// keeps dropping column 0 the ordinary way (correct for the general
// matrix, and indistinguishable from the spec's wording in the
// single-row case it describes) — see DESIGN.md.
func SpecializeMapCrash(m *model.Matrix, c *model.MapCrash) *model.Matrix { return specializeZeroArity(m, c) }

// DefaultMatrix computes the wildcard/default specialization used as the
// Switch's default branch (spec §4.2 case 3a, §4.3.a with p = wildcard):
// only rows whose first pattern is itself a wildcard survive.
func DefaultMatrix(m *model.Matrix) *model.Matrix {
	occ := m.Occurrences[0]
	var rows []model.Row
	for _, row := range m.Rows {
		if isWildcardPattern(row.Patterns[0]) {
			rows = append(rows, dropFirst(row, occ))
		}
	}
	return &model.Matrix{Rows: rows, Occurrences: append([]*model.Occurrence(nil), m.Occurrences[1:]...)}
}

// SpecializeSeq implements spec §4.3.b. Every Seq pattern compares equal
// to every other (the total order groups them as one constructor family —
// see pattern_order.go), so there is exactly one Seq constructor per
// column and this need not take one as a parameter.
func SpecializeSeq(ctx *CompileCtx, m *model.Matrix) *model.Matrix {
	occ := m.Occurrences[0]
	headOcc := &model.Occurrence{
		Name: ctx.Gensym("seq_head"), Kind: model.OccSeq, SeqRoot: occ.Name,
		BindExpr: model.HCall{Fn: "seq-first", Args: []model.HostExpr{model.HName{Name: occ.Name}}},
	}
	tailOcc := &model.Occurrence{
		Name: ctx.Gensym("seq_tail"), Kind: model.OccSeq, SeqRoot: occ.Name,
		BindExpr: model.HCall{Fn: "seq-rest", Args: []model.HostExpr{model.HName{Name: occ.Name}}},
	}

	var rows []model.Row
	for _, row := range m.Rows {
		first := row.Patterns[0]
		var head, tail model.Pattern
		switch v := first.(type) {
		case *model.Seq:
			if len(v.Patterns) == 0 {
				continue // invariant violation: empty Seq never matches
			}
			head = v.Patterns[0]
			rest := v.Patterns[1:]
			switch {
			case len(rest) == 0:
				tail = model.NewConstLiteral(v.Pos(), v.End(), model.EmptySeq{})
			case isRest(rest[0]):
				tail = rest[0].(*model.Rest).Inner
			default:
				tail = model.NewSeq(v.Pos(), v.End(), append([]model.Pattern(nil), rest...))
			}
		case *model.Wildcard:
			head = model.NewWildcard(v.Pos(), v.End(), "_")
			tail = model.NewWildcard(v.Pos(), v.End(), "_")
		default:
			continue
		}
		newPats := append([]model.Pattern{head, tail}, row.Patterns[1:]...)
		rows = append(rows, model.Row{
			Patterns: newPats,
			Action:   row.Action,
			Bindings: appendBindings(row.Bindings, bindingsForDropped(first, occ)),
		})
	}

	newOccs := append([]*model.Occurrence{headOcc, tailOcc}, m.Occurrences[1:]...)
	return &model.Matrix{Rows: rows, Occurrences: newOccs}
}

func isRest(p model.Pattern) bool { _, ok := p.(*model.Rest); return ok }

// SpecializeMap implements spec §4.3.c.
func SpecializeMap(ctx *CompileCtx, m *model.Matrix) *model.Matrix {
	occ := m.Occurrences[0]

	keySet := map[string]bool{}
	var retained []model.Row
	for _, row := range m.Rows {
		switch v := row.Patterns[0].(type) {
		case *model.MapPat:
			retained = append(retained, row)
			for _, k := range v.Keys {
				keySet[k] = true
			}
			for _, k := range v.Only {
				keySet[k] = true
			}
		case *model.Wildcard:
			retained = append(retained, row)
		}
	}
	keys := make([]string, 0, len(keySet))
	for k := range keySet {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	keyOccs := make([]*model.Occurrence, len(keys))
	for i, k := range keys {
		keyOccs[i] = &model.Occurrence{
			Name: ctx.Gensym("map_" + k), Kind: model.OccMap, MapSym: occ.Name, Key: k,
			BindExpr: model.HCall{Fn: "map-lookup", Args: []model.HostExpr{model.HName{Name: occ.Name}, model.HLiteral{Value: k}}},
		}
	}

	var rows []model.Row
	for _, row := range retained {
		first := row.Patterns[0]
		keyPats := make([]model.Pattern, len(keys))
		switch v := first.(type) {
		case *model.Wildcard:
			for i := range keys {
				keyPats[i] = model.NewWildcard(v.Pos(), v.End(), "_")
			}
		case *model.MapPat:
			onlySet := map[string]bool{}
			for _, k := range v.Only {
				onlySet[k] = true
			}
			for i, k := range keys {
				switch {
				case v.SubPats[k] != nil:
					keyPats[i] = v.SubPats[k]
				case v.Only != nil && onlySet[k]:
					keyPats[i] = model.NewWildcard(v.Pos(), v.End(), "_")
				case v.Only != nil:
					keyPats[i] = model.NewMapCrash(v.Pos(), v.End(), append([]string(nil), v.Only...))
				default:
					keyPats[i] = model.NewWildcard(v.Pos(), v.End(), "_")
				}
			}
		}
		newPats := append(append([]model.Pattern(nil), keyPats...), row.Patterns[1:]...)
		rows = append(rows, model.Row{
			Patterns: newPats,
			Action:   row.Action,
			Bindings: appendBindings(row.Bindings, bindingsForDropped(first, occ)),
		})
	}

	newOccs := append(append([]*model.Occurrence(nil), keyOccs...), m.Occurrences[1:]...)
	return &model.Matrix{Rows: rows, Occurrences: newOccs}
}

// SpecializeVector implements spec §4.3.e.
func SpecializeVector(ctx *CompileCtx, m *model.Matrix) *model.Matrix {
	occ := m.Occurrences[0]

	hasRest := false
	minSize := -1
	for _, row := range m.Rows {
		v, ok := row.Patterns[0].(*model.Vector)
		if !ok {
			continue
		}
		if v.HasRest {
			hasRest = true
		}
		if minSize == -1 || v.MinSize < minSize {
			minSize = v.MinSize
		}
	}
	if minSize == -1 {
		minSize = 0
	}

	if !hasRest {
		elemOccs := make([]*model.Occurrence, minSize)
		for i := 0; i < minSize; i++ {
			idx := i
			elemOccs[i] = &model.Occurrence{
				Name: ctx.Gensym("vec_elem"), Kind: model.OccVector, VecSym: occ.Name, Index: &idx,
				BindExpr: model.HCall{Fn: "vec-nth", Args: []model.HostExpr{model.HName{Name: occ.Name}, model.HLiteral{Value: idx}}},
			}
		}
		var rows []model.Row
		for _, row := range m.Rows {
			first := row.Patterns[0]
			elemPats := make([]model.Pattern, minSize)
			switch v := first.(type) {
			case *model.Wildcard:
				for i := range elemPats {
					elemPats[i] = model.NewWildcard(v.Pos(), v.End(), "_")
				}
			case *model.Vector:
				if v.HasRest || len(v.Patterns) != minSize {
					continue
				}
				copy(elemPats, v.Patterns)
			default:
				continue
			}
			newPats := append(append([]model.Pattern(nil), elemPats...), row.Patterns[1:]...)
			rows = append(rows, model.Row{
				Patterns: newPats,
				Action:   row.Action,
				Bindings: appendBindings(row.Bindings, bindingsForDropped(first, occ)),
			})
		}
		newOccs := append(append([]*model.Occurrence(nil), elemOccs...), m.Occurrences[1:]...)
		return &model.Matrix{Rows: rows, Occurrences: newOccs}
	}

	leftOcc := &model.Occurrence{
		Name: ctx.Gensym("vec_left"), Kind: model.OccVector, VecSym: occ.Name,
		BindExpr: model.HCall{Fn: "vec-slice", Args: []model.HostExpr{model.HName{Name: occ.Name}, model.HLiteral{Value: int64(0)}, model.HLiteral{Value: int64(minSize)}}},
	}
	rightOcc := &model.Occurrence{
		Name: ctx.Gensym("vec_right"), Kind: model.OccVector, VecSym: occ.Name,
		BindExpr: model.HCall{Fn: "vec-slice-from", Args: []model.HostExpr{model.HName{Name: occ.Name}, model.HLiteral{Value: int64(minSize)}}},
	}

	var rows []model.Row
	for _, row := range m.Rows {
		first := row.Patterns[0]
		var leftPat, rightPat model.Pattern
		switch v := first.(type) {
		case *model.Wildcard:
			leftPat = model.NewWildcard(v.Pos(), v.End(), "_")
			rightPat = model.NewWildcard(v.Pos(), v.End(), "_")
		case *model.Vector:
			prefixLen := len(v.Patterns)
			if v.HasRest {
				prefixLen--
			}
			if prefixLen < minSize {
				continue
			}
			leftPat = model.NewVector(v.Pos(), v.End(), append([]model.Pattern(nil), v.Patterns[:minSize]...), v.Kind, v.Offset, minSize, false)
			if v.HasRest {
				rightPat = v.Patterns[len(v.Patterns)-1].(*model.Rest).Inner
			} else {
				rightPat = model.NewVector(v.Pos(), v.End(), append([]model.Pattern(nil), v.Patterns[minSize:]...), v.Kind, 0, len(v.Patterns)-minSize, false)
			}
		default:
			continue
		}
		newPats := append([]model.Pattern{leftPat, rightPat}, row.Patterns[1:]...)
		rows = append(rows, model.Row{
			Patterns: newPats,
			Action:   row.Action,
			Bindings: appendBindings(row.Bindings, bindingsForDropped(first, occ)),
		})
	}
	newOccs := append([]*model.Occurrence{leftOcc, rightOcc}, m.Occurrences[1:]...)
	return &model.Matrix{Rows: rows, Occurrences: newOccs}
}

// SpecializeGuard implements spec §4.3.g: the matrix keeps its width
// (there is nothing to drop — the Guard's own test is emitted by the
// Switch case, see lower.go); a Guard row's first pattern becomes its
// inner pattern so the recursive compile continues to dispatch on that.
func SpecializeGuard(g *model.Guard, m *model.Matrix) *model.Matrix {
	var rows []model.Row
	for _, row := range m.Rows {
		switch v := row.Patterns[0].(type) {
		case *model.Guard:
			if model.Equal(v, g) {
				newPats := append([]model.Pattern{v.Inner}, row.Patterns[1:]...)
				rows = append(rows, model.Row{Patterns: newPats, Action: row.Action, Bindings: row.Bindings})
			}
		case *model.Wildcard:
			rows = append(rows, row)
		}
	}
	return &model.Matrix{Rows: rows, Occurrences: m.Occurrences}
}
